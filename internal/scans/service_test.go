package scans

import (
	"context"
	"strings"
	"testing"

	"neuroscan-backend/internal/listview"
	"neuroscan-backend/internal/shared/storage/object/local"
)

func TestTypeFromFileName(t *testing.T) {
	cases := map[string]string{
		"brain.nii.gz":  TypeNIfTIGZ,
		"BRAIN.NII.GZ":  TypeNIfTIGZ,
		"brain.nii":     TypeNIfTI,
		"scan_0042.nii": TypeNIfTI,
		"no-extension":  TypeNIfTI,
	}
	for name, want := range cases {
		if got := TypeFromFileName(name); got != want {
			t.Errorf("%s: expected %s, got %s", name, want, got)
		}
	}
}

func TestFileNameFromURL(t *testing.T) {
	cases := map[string]string{
		"http://localhost:8080/api/v1/files/scans/abc/1700_brain.nii.gz": "1700_brain.nii.gz",
		"https://bucket.s3.us-east-1.amazonaws.com/scans/abc/brain%20scan.nii": "brain scan.nii",
		"plain-name.nii": "plain-name.nii",
	}
	for raw, want := range cases {
		if got := FileNameFromURL(raw); got != want {
			t.Errorf("%s: expected %q, got %q", raw, want, got)
		}
	}
}

func TestUploadStoresBlobAndRow(t *testing.T) {
	store := local.New(t.TempDir(), "http://localhost:8080")
	svc := NewService(store, NewMemoryRepo())
	ctx := context.Background()

	scan, err := svc.Upload(ctx, "pat-1", "baseline.nii.gz", strings.NewReader("fake nifti bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if scan.ID == "" {
		t.Fatalf("expected generated scan id")
	}
	if scan.ImageType != TypeNIfTIGZ {
		t.Fatalf("expected NIfTI-GZ, got %s", scan.ImageType)
	}
	if !strings.Contains(scan.ImageURL, "/api/v1/files/scans/") {
		t.Fatalf("unexpected url: %s", scan.ImageURL)
	}
	if !strings.HasSuffix(scan.ImageURL, "_baseline.nii.gz") {
		t.Fatalf("expected timestamp-prefixed name in url: %s", scan.ImageURL)
	}

	stored, err := svc.Get(ctx, scan.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.ImageURL != scan.ImageURL {
		t.Fatalf("row not persisted: %+v", stored)
	}
}

func TestUploadRejectsEmptyFileName(t *testing.T) {
	store := local.New(t.TempDir(), "http://localhost:8080")
	svc := NewService(store, NewMemoryRepo())

	if _, err := svc.Upload(context.Background(), "pat-1", "  ", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error for empty file name")
	}
}

func TestListPageAppliesPipeline(t *testing.T) {
	store := local.New(t.TempDir(), "http://localhost:8080")
	svc := NewService(store, NewMemoryRepo())
	ctx := context.Background()

	for _, name := range []string{"a.nii", "b.nii.gz", "c.nii.gz", "d.nii", "e.nii.gz"} {
		if _, err := svc.Upload(ctx, "pat-1", name, strings.NewReader("data")); err != nil {
			t.Fatalf("upload %s: %v", name, err)
		}
	}

	state := listview.NewState(listview.SortByFileName, 10).WithCategory(TypeNIfTIGZ)
	page, err := svc.ListPage(ctx, "pat-1", state)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalFilteredCount != 3 {
		t.Fatalf("expected 3 NIfTI-GZ scans, got %d", page.TotalFilteredCount)
	}
	if page.TotalItems != 5 {
		t.Fatalf("expected 5 total scans, got %d", page.TotalItems)
	}
}

func TestDeleteRemovesRow(t *testing.T) {
	store := local.New(t.TempDir(), "http://localhost:8080")
	svc := NewService(store, NewMemoryRepo())
	ctx := context.Background()

	scan, err := svc.Upload(ctx, "pat-1", "baseline.nii", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if err := svc.Delete(ctx, scan.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, scan.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
