package inference

import (
	"context"
	"errors"
	"io"
)

// Predicted classes returned by the model.
const (
	ClassAD  = "AD"
	ClassCN  = "CN"
	ClassMCI = "MCI"
)

// ClassLabel expands a predicted class to its clinical reading.
func ClassLabel(class string) string {
	switch class {
	case ClassAD:
		return "Alzheimer's Disease"
	case ClassCN:
		return "Cognitively Normal"
	case ClassMCI:
		return "Mild Cognitive Impairment"
	default:
		return class
	}
}

// PreprocessResult carries the normalized preview and the server-side
// handle used by the follow-up predict and gradcam calls.
type PreprocessResult struct {
	PreviewImage string
	FileHandle   string
}

// Prediction is the model's classification of a preprocessed scan.
type Prediction struct {
	PredictedClass string
	Probability    float64
	Features       map[string]string
}

// GradCAMResult carries the attention heatmap for a prediction.
type GradCAMResult struct {
	HeatmapImage string
}

// Client abstracts the external inference service.
type Client interface {
	Preprocess(ctx context.Context, fileName string, file io.Reader) (PreprocessResult, error)
	Predict(ctx context.Context, fileHandle string) (Prediction, error)
	GradCAM(ctx context.Context, fileHandle string) (GradCAMResult, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("inference service not configured")

// PlaceholderClient is a stub implementation until a base URL is
// configured.
type PlaceholderClient struct{}

func (PlaceholderClient) Preprocess(ctx context.Context, fileName string, file io.Reader) (PreprocessResult, error) {
	return PreprocessResult{}, ErrNotConfigured
}

func (PlaceholderClient) Predict(ctx context.Context, fileHandle string) (Prediction, error) {
	return Prediction{}, ErrNotConfigured
}

func (PlaceholderClient) GradCAM(ctx context.Context, fileHandle string) (GradCAMResult, error) {
	return GradCAMResult{}, ErrNotConfigured
}
