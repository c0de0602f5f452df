package listview

import (
	"net/url"
	"strconv"
	"strings"
)

// StateFromQuery builds a view state from listing query parameters:
// search, category, sortField, sortDir, pageSize, page. Unknown sort
// fields fall back to the given default; page is applied last so the
// reset-to-1 transitions do not clobber an explicit page request.
func StateFromQuery(values url.Values, defaultSort SortField, defaultPageSize int) State {
	state := NewState(defaultSort, defaultPageSize)

	if search := strings.TrimSpace(values.Get("search")); search != "" {
		state = state.WithSearch(search)
	}
	if category := strings.TrimSpace(values.Get("category")); category != "" {
		state = state.WithCategory(category)
	}

	sortField := state.Sort
	if requested := SortField(strings.TrimSpace(values.Get("sortField"))); requested != "" {
		switch requested {
		case SortByDate, SortByType, SortByFileName, SortByID, SortByDoctor:
			sortField = requested
		}
	}
	direction := Ascending
	if strings.EqualFold(strings.TrimSpace(values.Get("sortDir")), "desc") {
		direction = Descending
	}
	state = state.WithSort(sortField, direction)

	if raw := values.Get("pageSize"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			state = state.WithPageSize(size)
		}
	}
	if raw := values.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			state.Page = page
		}
	}
	return state
}
