package scans

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"neuroscan-backend/internal/listview"
	"neuroscan-backend/internal/shared/storage/object"
	"neuroscan-backend/internal/shared/util"
)

type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

func NewService(store object.ObjectStore, repo Repo) *Service {
	return &Service{Store: store, Repo: repo}
}

// Upload stores the scan blob under a timestamp-qualified, patient-keyed
// path, then records the row. The returned scan carries the identifier
// the store generated, so callers can link follow-up records to this
// exact upload.
func (s *Service) Upload(ctx context.Context, patientID, fileName string, r io.Reader) (Scan, error) {
	if strings.TrimSpace(patientID) == "" {
		return Scan{}, errors.New("patient id is required")
	}
	if strings.TrimSpace(fileName) == "" {
		return Scan{}, ErrInvalidInput
	}

	key, err := storageKey("scans", patientID, fileName)
	if err != nil {
		return Scan{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	contentType := "application/octet-stream"
	if TypeFromFileName(fileName) == TypeNIfTIGZ {
		contentType = "application/gzip"
	}
	if _, err := s.Store.SaveWithKey(ctx, key, contentType, r); err != nil {
		return Scan{}, fmt.Errorf("upload scan blob: %w", err)
	}

	return s.Repo.Create(ctx, Scan{
		ID:        uuid.NewString(),
		PatientID: patientID,
		ImageType: TypeFromFileName(fileName),
		Date:      time.Now().UTC(),
		ImageURL:  s.Store.PublicURL(key),
	})
}

// Get returns one scan row.
func (s *Service) Get(ctx context.Context, id string) (Scan, error) {
	if strings.TrimSpace(id) == "" {
		return Scan{}, errors.New("scan id is required")
	}
	return s.Repo.GetByID(ctx, id)
}

// ListPage fetches the patient's scans and runs the listing pipeline
// over them.
func (s *Service) ListPage(ctx context.Context, patientID string, state listview.State) (listview.Page, error) {
	list, err := s.Repo.ListByPatient(ctx, patientID)
	if err != nil {
		return listview.Page{}, err
	}
	entries := make([]listview.Entry, 0, len(list))
	for _, scan := range list {
		entries = append(entries, ToEntry(scan))
	}
	return listview.Apply(entries, state), nil
}

// Delete removes the scan row. The stored blob is left in place, matching
// the record-first deletion order of the portal.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("scan id is required")
	}
	return s.Repo.Delete(ctx, id)
}

// ToEntry derives the listing fields for one scan.
func ToEntry(scan Scan) listview.Entry {
	return listview.Entry{
		ID:       scan.ID,
		Type:     scan.ImageType,
		FileName: FileNameFromURL(scan.ImageURL),
		Date:     scan.Date.UTC().Format(time.RFC3339),
		Ref:      scan,
	}
}

func storageKey(prefix, ownerID, fileName string) (string, error) {
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", err
	}
	ownerKey := util.HashOwnerKey(ownerID)
	return fmt.Sprintf("%s/%s/%d_%s", prefix, ownerKey, time.Now().UTC().UnixMilli(), sanitized), nil
}
