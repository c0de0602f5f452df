package reports

import "context"

type Repo interface {
	// Create inserts the report and returns the stored row.
	Create(ctx context.Context, report Report) (Report, error)
	GetByID(ctx context.Context, id string) (Report, error)
	// ListByPatient returns the patient's reports newest-first.
	ListByPatient(ctx context.Context, patientID string) ([]Report, error)
}
