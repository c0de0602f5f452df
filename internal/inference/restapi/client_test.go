package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"neuroscan-backend/internal/inference"
)

func TestPreprocessSendsMultipartAndParsesHandle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/preprocess/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			file.Close()
			if header.Filename != "baseline.nii.gz" {
				t.Errorf("unexpected file name %s", header.Filename)
			}
		}
		if got := r.FormValue("model"); got != "adni-effnet:v1" {
			t.Errorf("unexpected model %s", got)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"preview_image": "base64png",
			"file_handle":   "handle-1",
		})
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "adni-effnet:v1")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	result, err := client.Preprocess(context.Background(), "baseline.nii.gz", strings.NewReader("nifti"))
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if result.FileHandle != "handle-1" || result.PreviewImage != "base64png" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestPredictRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"predicted_class": inference.ClassMCI,
			"probability":     0.82,
			"features":        map[string]string{"hippocampal_volume": "reduced"},
		})
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "adni-effnet:v1")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	prediction, err := client.Predict(context.Background(), "handle-1")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
	if prediction.PredictedClass != inference.ClassMCI || prediction.Probability != 0.82 {
		t.Fatalf("unexpected prediction: %+v", prediction)
	}
	if prediction.Features["hippocampal_volume"] != "reduced" {
		t.Fatalf("features not parsed: %+v", prediction.Features)
	}
}

func TestPredictRejectsUnknownClass(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"predicted_class": "UNKNOWN",
			"probability":     0.5,
		})
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := client.Predict(context.Background(), "handle-1"); err == nil {
		t.Fatalf("expected error for unknown class")
	}
}

func TestPredictSurfacesErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "stale file handle"})
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.Predict(context.Background(), "handle-1")
	if err == nil || !strings.Contains(err.Error(), "stale file handle") {
		t.Fatalf("expected envelope message, got %v", err)
	}
}

func TestGradCAMParsesHeatmap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gradcam/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["file_handle"] != "handle-1" {
			t.Errorf("unexpected handle %s", req["file_handle"])
		}
		json.NewEncoder(w).Encode(map[string]string{"heatmap_image": "base64heatmap"})
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	result, err := client.GradCAM(context.Background(), "handle-1")
	if err != nil {
		t.Fatalf("GradCAM: %v", err)
	}
	if result.HeatmapImage != "base64heatmap" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient("  ", "model"); err == nil {
		t.Fatalf("expected error for empty base url")
	}
}
