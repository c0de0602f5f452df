package reports

import (
	"time"

	"neuroscan-backend/internal/listview"
)

// ReportResponse is the outward-facing representation of a report row
// joined for listing.
type ReportResponse struct {
	ReportID   string    `json:"reportId"`
	PatientID  string    `json:"patientId"`
	ImageID    string    `json:"imageId"`
	ReportURL  string    `json:"reportUrl"`
	FileName   string    `json:"fileName"`
	ScanDate   time.Time `json:"scanDate"`
	DoctorName string    `json:"doctorName"`
}

// PageResponse carries one page of reports plus pagination counts.
type PageResponse struct {
	Items              []ReportResponse `json:"items"`
	TotalFilteredCount int              `json:"totalFilteredCount"`
	TotalItems         int              `json:"totalItems"`
	TotalPages         int              `json:"totalPages"`
	Page               int              `json:"page"`
}

func toResponse(view View) ReportResponse {
	return ReportResponse{
		ReportID:   view.Report.ID,
		PatientID:  view.Report.PatientID,
		ImageID:    view.Report.ScanID,
		ReportURL:  view.Report.ReportURL,
		FileName:   view.FileName,
		ScanDate:   view.ScanDate,
		DoctorName: view.DoctorName,
	}
}

func toPageResponse(page listview.Page) PageResponse {
	items := make([]ReportResponse, 0, len(page.Items))
	for _, entry := range page.Items {
		if view, ok := entry.Ref.(View); ok {
			items = append(items, toResponse(view))
		}
	}
	return PageResponse{
		Items:              items,
		TotalFilteredCount: page.TotalFilteredCount,
		TotalItems:         page.TotalItems,
		TotalPages:         page.TotalPages,
		Page:               page.Page,
	}
}
