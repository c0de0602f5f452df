package reports

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"neuroscan-backend/internal/listview"
	"neuroscan-backend/internal/patients"
	"neuroscan-backend/internal/providers"
	"neuroscan-backend/internal/scans"
)

// View is a report joined with its scan date and the owning doctor's
// formatted name for listing.
type View struct {
	Report     Report    `json:"report"`
	FileName   string    `json:"fileName"`
	ScanDate   time.Time `json:"scanDate"`
	DoctorName string    `json:"doctorName"`
}

type Service struct {
	Repo      Repo
	Scans     scans.Repo
	Patients  patients.Repo
	Providers providers.Repo
}

func NewService(repo Repo, scanRepo scans.Repo, patientRepo patients.Repo, providerRepo providers.Repo) *Service {
	return &Service{Repo: repo, Scans: scanRepo, Patients: patientRepo, Providers: providerRepo}
}

// Create records a generated report. The referenced scan must belong to
// the same patient.
func (s *Service) Create(ctx context.Context, patientID, scanID, reportURL string) (Report, error) {
	if strings.TrimSpace(patientID) == "" || strings.TrimSpace(scanID) == "" {
		return Report{}, errors.New("patient id and scan id are required")
	}
	scan, err := s.Scans.GetByID(ctx, scanID)
	if err != nil {
		return Report{}, err
	}
	if scan.PatientID != patientID {
		return Report{}, errors.New("scan does not belong to this patient")
	}
	return s.Repo.Create(ctx, Report{
		ID:        uuid.NewString(),
		PatientID: patientID,
		ScanID:    scanID,
		ReportURL: reportURL,
		CreatedAt: time.Now().UTC(),
	})
}

// Get returns one report row.
func (s *Service) Get(ctx context.Context, id string) (Report, error) {
	if strings.TrimSpace(id) == "" {
		return Report{}, errors.New("report id is required")
	}
	return s.Repo.GetByID(ctx, id)
}

// ListPage joins the patient's reports with scan dates and the doctor's
// formatted name, then runs the listing pipeline.
func (s *Service) ListPage(ctx context.Context, patientID string, state listview.State) (listview.Page, error) {
	list, err := s.Repo.ListByPatient(ctx, patientID)
	if err != nil {
		return listview.Page{}, err
	}

	doctorName := s.doctorNameFor(ctx, patientID)

	entries := make([]listview.Entry, 0, len(list))
	for _, report := range list {
		view := View{Report: report, DoctorName: doctorName}
		view.FileName = scans.FileNameFromURL(report.ReportURL)
		if scan, err := s.Scans.GetByID(ctx, report.ScanID); err == nil {
			view.ScanDate = scan.Date
		}
		entries = append(entries, listview.Entry{
			ID:         report.ID,
			FileName:   view.FileName,
			Date:       view.ScanDate.UTC().Format(time.RFC3339),
			DoctorName: doctorName,
			Ref:        view,
		})
	}
	return listview.Apply(entries, state), nil
}

// doctorNameFor resolves the formatted name of the provider owning the
// patient. Lookup failures degrade to "N/A" rather than failing the
// listing.
func (s *Service) doctorNameFor(ctx context.Context, patientID string) string {
	patient, err := s.Patients.GetByID(ctx, patientID)
	if err != nil {
		return FormatDoctorName("")
	}
	provider, err := s.Providers.GetByID(ctx, patient.ProviderID)
	if err != nil {
		return FormatDoctorName("")
	}
	return FormatDoctorName(provider.Name)
}
