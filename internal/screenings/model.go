package screenings

import (
	"neuroscan-backend/internal/inference"
	"neuroscan-backend/internal/reports"
	"neuroscan-backend/internal/scans"
)

// Workflow statuses surfaced to the caller.
const (
	StatusIdle    = "idle"
	StatusSaving  = "saving"
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the outcome of one screening run. On success it carries the
// two rows the workflow created, cross-referenced, plus the inference
// artifacts for display.
type Result struct {
	Status       string               `json:"status"`
	Scan         scans.Scan           `json:"scan"`
	Report       reports.Report       `json:"report"`
	Prediction   inference.Prediction `json:"prediction"`
	PreviewImage string               `json:"previewImage,omitempty"`
	HeatmapImage string               `json:"heatmapImage,omitempty"`
	ReportText   string               `json:"reportText,omitempty"`
}
