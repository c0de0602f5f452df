package screenings

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"neuroscan-backend/internal/inference"
	"neuroscan-backend/internal/patients"
	"neuroscan-backend/internal/providers"
	"neuroscan-backend/internal/reports"
	"neuroscan-backend/internal/scans"
	"neuroscan-backend/internal/shared/metrics"
	"neuroscan-backend/internal/shared/storage/object"
	"neuroscan-backend/internal/shared/telemetry"
	"neuroscan-backend/internal/shared/util"
	"neuroscan-backend/internal/usage"
)

// Service runs the screening workflow: inference, scan persistence and
// report generation as one strictly sequential chain.
type Service struct {
	Scans     *scans.Service
	Reports   *reports.Service
	Inference inference.Client
	Usage     *usage.Service
	Patients  patients.Repo
	Providers providers.Repo
	Store     object.ObjectStore
}

// Run executes the full screening chain for one uploaded scan file. Any
// failing step aborts the rest and surfaces a single terminal error;
// artifacts created by earlier steps are not cleaned up.
func (s *Service) Run(ctx context.Context, providerID, patientID, fileName string, file io.Reader) (Result, error) {
	if strings.TrimSpace(patientID) == "" {
		return Result{Status: StatusError}, errors.New("patient id is required")
	}

	patient, err := s.Patients.GetByID(ctx, patientID)
	if err != nil {
		return Result{Status: StatusError}, err
	}
	if patient.ProviderID != providerID {
		return Result{Status: StatusError}, patients.ErrNotFound
	}

	if s.Usage != nil {
		ok, _, err := s.Usage.CanConsume(ctx, providerID, 1)
		if err != nil {
			return Result{Status: StatusError}, err
		}
		if !ok {
			return Result{Status: StatusError}, usage.ErrLimitReached
		}
	}

	metrics.IncScreeningStarted()
	start := time.Now()
	if s.Usage != nil {
		if _, err := s.Usage.Consume(ctx, providerID, 1); err != nil {
			return s.fail(patientID, "usage", err)
		}
	}

	telemetry.Info("screening.start", map[string]any{
		"patient_id":  patientID,
		"provider_id": providerID,
		"file_name":   fileName,
	})

	// The file feeds both the inference call and the blob upload.
	buf, err := io.ReadAll(file)
	if err != nil {
		return s.fail(patientID, "read_file", err)
	}

	preprocessed, err := s.Inference.Preprocess(ctx, fileName, bytes.NewReader(buf))
	if err != nil {
		return s.fail(patientID, "preprocess", err)
	}
	prediction, err := s.Inference.Predict(ctx, preprocessed.FileHandle)
	if err != nil {
		return s.fail(patientID, "predict", err)
	}
	heatmap, err := s.Inference.GradCAM(ctx, preprocessed.FileHandle)
	if err != nil {
		return s.fail(patientID, "gradcam", err)
	}

	scan, err := s.Scans.Upload(ctx, patientID, fileName, bytes.NewReader(buf))
	if err != nil {
		return s.fail(patientID, "save_scan", err)
	}
	scanID := scan.ID
	if scanID == "" {
		// Date-based fallback linkage. Races a concurrent upload for the
		// same patient; the insert-returned identifier above is the
		// authoritative path.
		latest, err := s.Scans.Repo.LatestForPatient(ctx, patientID)
		if err != nil {
			return s.fail(patientID, "resolve_scan", err)
		}
		scanID = latest.ID
	}

	doctorName := s.doctorName(ctx, providerID)
	reportText, err := RenderReport(patient, doctorName, scan.Date, prediction)
	if err != nil {
		return s.fail(patientID, "render_report", err)
	}

	reportKey, err := reportStorageKey(patientID)
	if err != nil {
		return s.fail(patientID, "report_key", err)
	}
	if _, err := s.Store.SaveWithKey(ctx, reportKey, "text/plain; charset=utf-8", strings.NewReader(reportText)); err != nil {
		return s.fail(patientID, "save_report_blob", err)
	}

	report, err := s.Reports.Create(ctx, patientID, scanID, s.Store.PublicURL(reportKey))
	if err != nil {
		return s.fail(patientID, "save_report_row", err)
	}

	metrics.IncScreeningCompleted()
	metrics.ObserveScreeningDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	telemetry.Info("screening.complete", map[string]any{
		"patient_id":      patientID,
		"scan_id":         scanID,
		"report_id":       report.ID,
		"predicted_class": prediction.PredictedClass,
	})

	return Result{
		Status:       StatusSuccess,
		Scan:         scan,
		Report:       report,
		Prediction:   prediction,
		PreviewImage: preprocessed.PreviewImage,
		HeatmapImage: heatmap.HeatmapImage,
		ReportText:   reportText,
	}, nil
}

// Allowance reports the provider's screening allowance for the current
// period.
func (s *Service) Allowance(ctx context.Context, providerID string) (usage.Usage, error) {
	if s.Usage == nil {
		return usage.Usage{}, errors.New("usage tracking not configured")
	}
	return s.Usage.EnsurePeriod(ctx, providerID)
}

func (s *Service) fail(patientID, step string, err error) (Result, error) {
	metrics.IncScreeningFailed()
	telemetry.Error("screening.failed", map[string]any{
		"patient_id": patientID,
		"step":       step,
		"error":      err.Error(),
	})
	return Result{Status: StatusError}, fmt.Errorf("%s: %w", step, err)
}

func (s *Service) doctorName(ctx context.Context, providerID string) string {
	provider, err := s.Providers.GetByID(ctx, providerID)
	if err != nil {
		return reports.FormatDoctorName("")
	}
	return reports.FormatDoctorName(provider.Name)
}

func reportStorageKey(patientID string) (string, error) {
	name, err := util.SanitizeFileName("screening_report.txt")
	if err != nil {
		return "", err
	}
	ownerKey := util.HashOwnerKey(patientID)
	return fmt.Sprintf("reports/%s/%d_%s", ownerKey, time.Now().UTC().UnixMilli(), name), nil
}
