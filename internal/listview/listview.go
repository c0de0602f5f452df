package listview

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Unknown is the category assigned to entries with no recorded type.
const Unknown = "Unknown"

// CategoryAll disables category filtering.
const CategoryAll = "all"

// SortField selects which derived column orders the listing.
type SortField string

const (
	SortByDate     SortField = "date"
	SortByType     SortField = "type"
	SortByFileName SortField = "fileName"
	SortByID       SortField = "id"
	SortByDoctor   SortField = "doctorName"
)

// Direction orders ascending or descending.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Entry is one listable record with its derived text fields. Ref carries
// the underlying row so callers can map page items back to full records.
type Entry struct {
	ID         string
	Type       string
	FileName   string
	Date       string
	DoctorName string
	Ref        any
}

// State is the view state driving one listing. Transitions that change
// what is shown reset the page to 1.
type State struct {
	Search    string
	Category  string
	Sort      SortField
	Direction Direction
	PageSize  int
	Page      int
}

// Page is the rendered slice plus pagination counts. TotalFilteredCount
// is reported separately from TotalItems so an empty result under an
// active filter is distinguishable from an empty collection.
type Page struct {
	Items              []Entry
	TotalFilteredCount int
	TotalItems         int
	TotalPages         int
	Page               int
}

// NewState returns a view state on page 1 with no filters.
func NewState(sortField SortField, pageSize int) State {
	if pageSize < 1 {
		pageSize = 1
	}
	return State{
		Category:  CategoryAll,
		Sort:      sortField,
		Direction: Ascending,
		PageSize:  pageSize,
		Page:      1,
	}
}

// WithSearch sets the search term and resets to page 1.
func (s State) WithSearch(term string) State {
	s.Search = term
	s.Page = 1
	return s
}

// WithCategory sets the category filter and resets to page 1.
func (s State) WithCategory(category string) State {
	s.Category = category
	s.Page = 1
	return s
}

// WithSort sets the sort field and direction and resets to page 1.
func (s State) WithSort(field SortField, dir Direction) State {
	s.Sort = field
	s.Direction = dir
	s.Page = 1
	return s
}

// WithPageSize sets the page size and resets to page 1.
func (s State) WithPageSize(size int) State {
	if size < 1 {
		size = 1
	}
	s.PageSize = size
	s.Page = 1
	return s
}

// WithPage moves to the given page, clamped to [1, totalPages]. A zero
// totalPages clamps to page 1.
func (s State) WithPage(page, totalPages int) State {
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	s.Page = page
	return s
}

// Apply runs filter, search, stable sort and pagination over the entries.
// It never mutates its input.
func Apply(entries []Entry, s State) Page {
	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !matchesCategory(e, s.Category) {
			continue
		}
		if !matchesSearch(e, s.Search) {
			continue
		}
		filtered = append(filtered, e)
	}

	sortEntries(filtered, s.Sort, s.Direction)

	size := s.PageSize
	if size < 1 {
		size = 1
	}
	totalPages := 0
	if len(filtered) > 0 {
		totalPages = (len(filtered) + size - 1) / size
	}

	page := s.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	end := start + size
	items := []Entry{}
	if start < len(filtered) {
		if end > len(filtered) {
			end = len(filtered)
		}
		items = filtered[start:end]
	}

	return Page{
		Items:              items,
		TotalFilteredCount: len(filtered),
		TotalItems:         len(entries),
		TotalPages:         totalPages,
		Page:               page,
	}
}

// TypeOf normalizes an entry's category, mapping a missing type to Unknown.
func TypeOf(e Entry) string {
	t := strings.TrimSpace(e.Type)
	if t == "" {
		return Unknown
	}
	return t
}

func matchesCategory(e Entry, category string) bool {
	category = strings.TrimSpace(category)
	if category == "" || category == CategoryAll {
		return true
	}
	return TypeOf(e) == category
}

func matchesSearch(e Entry, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range searchFields(e) {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func searchFields(e Entry) []string {
	return []string{
		TypeOf(e),
		e.FileName,
		FormatDate(e.Date),
		e.ID,
		e.DoctorName,
	}
}

func sortEntries(entries []Entry, field SortField, dir Direction) {
	col := collate.New(language.English)
	less := func(a, b Entry) int {
		switch field {
		case SortByDate:
			at := parseDate(a.Date).UnixMilli()
			bt := parseDate(b.Date).UnixMilli()
			switch {
			case at < bt:
				return -1
			case at > bt:
				return 1
			default:
				return 0
			}
		case SortByType:
			return col.CompareString(TypeOf(a), TypeOf(b))
		case SortByFileName:
			return col.CompareString(a.FileName, b.FileName)
		case SortByID:
			return col.CompareString(a.ID, b.ID)
		case SortByDoctor:
			return col.CompareString(a.DoctorName, b.DoctorName)
		default:
			return 0
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		cmp := less(entries[i], entries[j])
		if dir == Descending {
			cmp = -cmp
		}
		return cmp < 0
	})
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate parses a stored date string. An unparsable or empty value
// sorts as the epoch.
func parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Unix(0, 0).UTC()
}

// FormatDate renders a stored date as "January 2, 2006" for display and
// search. An unparsable value renders as the epoch date.
func FormatDate(raw string) string {
	return parseDate(raw).Format("January 2, 2006")
}
