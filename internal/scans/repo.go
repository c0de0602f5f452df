package scans

import "context"

type Repo interface {
	// Create inserts the scan and returns the stored row, generated
	// identifier included.
	Create(ctx context.Context, scan Scan) (Scan, error)
	GetByID(ctx context.Context, id string) (Scan, error)
	// ListByPatient returns the patient's scans newest-first.
	ListByPatient(ctx context.Context, patientID string) ([]Scan, error)
	// LatestForPatient returns the most recent scan by date. Date-based
	// linkage can race a concurrent upload for the same patient; callers
	// must prefer the row returned by Create.
	LatestForPatient(ctx context.Context, patientID string) (Scan, error)
	Delete(ctx context.Context, id string) error
}
