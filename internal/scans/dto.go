package scans

import (
	"time"

	"neuroscan-backend/internal/listview"
)

// ScanResponse is the outward-facing representation of a scan.
type ScanResponse struct {
	ImageID   string    `json:"imageId"`
	PatientID string    `json:"patientId"`
	ImageType string    `json:"imageType"`
	FileName  string    `json:"fileName"`
	Date      time.Time `json:"date"`
	ImageURL  string    `json:"imageUrl"`
}

// PageResponse carries one page of scans plus pagination counts.
type PageResponse struct {
	Items              []ScanResponse `json:"items"`
	TotalFilteredCount int            `json:"totalFilteredCount"`
	TotalItems         int            `json:"totalItems"`
	TotalPages         int            `json:"totalPages"`
	Page               int            `json:"page"`
}

func toResponse(scan Scan) ScanResponse {
	return ScanResponse{
		ImageID:   scan.ID,
		PatientID: scan.PatientID,
		ImageType: scan.ImageType,
		FileName:  FileNameFromURL(scan.ImageURL),
		Date:      scan.Date,
		ImageURL:  scan.ImageURL,
	}
}

func toPageResponse(page listview.Page) PageResponse {
	items := make([]ScanResponse, 0, len(page.Items))
	for _, entry := range page.Items {
		if scan, ok := entry.Ref.(Scan); ok {
			items = append(items, toResponse(scan))
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
