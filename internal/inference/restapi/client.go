package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"neuroscan-backend/internal/inference"
)

const retryBaseDelay = 300 * time.Millisecond

// Client implements inference.Client against the model service's REST
// endpoints: /preprocess/, /predict/ and /gradcam/.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient constructs a client for the inference service. The request
// timeout is read from INFERENCE_TIMEOUT_SECONDS (default 120s).
func NewClient(baseURL, model string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("INFERENCE_BASE_URL is required")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("INFERENCE_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		baseURL: baseURL,
		model:   strings.TrimSpace(model),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type errorEnvelope struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func (e errorEnvelope) message() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Detail
}

type preprocessResponse struct {
	PreviewImage string `json:"preview_image"`
	FileHandle   string `json:"file_handle"`
	errorEnvelope
}

type predictResponse struct {
	PredictedClass string            `json:"predicted_class"`
	Probability    float64           `json:"probability"`
	Features       map[string]string `json:"features"`
	errorEnvelope
}

type gradcamResponse struct {
	HeatmapImage string `json:"heatmap_image"`
	errorEnvelope
}

// Preprocess uploads the raw scan as multipart form data. The call is
// not retried: the reader is consumed by the first attempt.
func (c *Client) Preprocess(ctx context.Context, fileName string, file io.Reader) (inference.PreprocessResult, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return inference.PreprocessResult{}, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return inference.PreprocessResult{}, fmt.Errorf("buffer scan: %w", err)
	}
	if c.model != "" {
		if err := writer.WriteField("model", c.model); err != nil {
			return inference.PreprocessResult{}, err
		}
	}
	if err := writer.Close(); err != nil {
		return inference.PreprocessResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/preprocess/", body)
	if err != nil {
		return inference.PreprocessResult{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var parsed preprocessResponse
	if err := c.do(req, &parsed); err != nil {
		return inference.PreprocessResult{}, err
	}
	if msg := parsed.message(); msg != "" {
		return inference.PreprocessResult{}, fmt.Errorf("inference error: %s", msg)
	}
	if parsed.FileHandle == "" {
		return inference.PreprocessResult{}, fmt.Errorf("inference response missing file handle")
	}
	return inference.PreprocessResult{
		PreviewImage: parsed.PreviewImage,
		FileHandle:   parsed.FileHandle,
	}, nil
}

// Predict classifies a preprocessed scan. Transient failures are retried
// once.
func (c *Client) Predict(ctx context.Context, fileHandle string) (inference.Prediction, error) {
	var parsed predictResponse
	if err := c.postJSONWithRetry(ctx, "/predict/", fileHandle, &parsed); err != nil {
		return inference.Prediction{}, err
	}
	if msg := parsed.message(); msg != "" {
		return inference.Prediction{}, fmt.Errorf("inference error: %s", msg)
	}
	switch parsed.PredictedClass {
	case inference.ClassAD, inference.ClassCN, inference.ClassMCI:
	default:
		return inference.Prediction{}, fmt.Errorf("inference returned unknown class %q", parsed.PredictedClass)
	}
	if parsed.Probability < 0 || parsed.Probability > 1 {
		return inference.Prediction{}, fmt.Errorf("inference probability out of range: %f", parsed.Probability)
	}
	return inference.Prediction{
		PredictedClass: parsed.PredictedClass,
		Probability:    parsed.Probability,
		Features:       parsed.Features,
	}, nil
}

// GradCAM fetches the attention heatmap. Transient failures are retried
// once.
func (c *Client) GradCAM(ctx context.Context, fileHandle string) (inference.GradCAMResult, error) {
	var parsed gradcamResponse
	if err := c.postJSONWithRetry(ctx, "/gradcam/", fileHandle, &parsed); err != nil {
		return inference.GradCAMResult{}, err
	}
	if msg := parsed.message(); msg != "" {
		return inference.GradCAMResult{}, fmt.Errorf("inference error: %s", msg)
	}
	return inference.GradCAMResult{HeatmapImage: parsed.HeatmapImage}, nil
}

func (c *Client) postJSONWithRetry(ctx context.Context, path, fileHandle string, out any) error {
	err := c.postJSON(ctx, path, fileHandle, out)
	if err == nil || !shouldRetry(err) {
		return err
	}

	select {
	case <-time.After(retryBaseDelay):
	case <-ctx.Done():
		return ctx.Err()
	}
	return c.postJSON(ctx, path, fileHandle, out)
}

func (c *Client) postJSON(ctx context.Context, path, fileHandle string, out any) error {
	payload, err := json.Marshal(map[string]string{
		"file_handle": fileHandle,
		"model":       c.model,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return fmt.Errorf("inference request timeout: %w", err)
		}
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 500 {
		return fmt.Errorf("inference http status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("inference response parse: %w", err)
	}
	if resp.StatusCode >= 400 {
		if env, ok := out.(interface{ message() string }); ok && env.message() != "" {
			return fmt.Errorf("inference error: %s", env.message())
		}
		return fmt.Errorf("inference http status %d", resp.StatusCode)
	}
	return nil
}

func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") {
		return true
	}
	if strings.Contains(msg, "timeout") {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}

var _ inference.Client = (*Client)(nil)
