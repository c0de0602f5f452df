package reports

import (
	"strings"
	"time"
)

// Report references the scan it was generated from and the stored report
// text. Rows are created only by the screening workflow and never
// updated.
type Report struct {
	ID        string    `json:"reportId"`
	PatientID string    `json:"patientId"`
	ScanID    string    `json:"imageId"`
	ReportURL string    `json:"reportUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// FormatDoctorName abbreviates a doctor's display name to "F. LastName".
// Single-word names pass through; an empty name renders as "N/A".
func FormatDoctorName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "N/A"
	}
	parts := strings.Fields(name)
	if len(parts) == 1 {
		return parts[0]
	}
	first := parts[0]
	last := parts[len(parts)-1]
	return string([]rune(first)[:1]) + ". " + last
}
