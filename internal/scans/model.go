package scans

import (
	"net/url"
	"strings"
	"time"
)

// Image types recorded on upload.
const (
	TypeNIfTI   = "NIfTI"
	TypeNIfTIGZ = "NIfTI-GZ"
)

// Scan is one uploaded MRI volume. Immutable after creation except for
// deletion.
type Scan struct {
	ID        string    `json:"imageId"`
	PatientID string    `json:"patientId"`
	ImageType string    `json:"imageType"`
	Date      time.Time `json:"date"`
	ImageURL  string    `json:"imageUrl"`
}

// TypeFromFileName derives the recorded image type from the uploaded
// file's extension.
func TypeFromFileName(fileName string) string {
	if strings.HasSuffix(strings.ToLower(fileName), ".nii.gz") {
		return TypeNIfTIGZ
	}
	return TypeNIfTI
}

// FileNameFromURL extracts the display file name, the trailing path
// segment of the stored URL.
func FileNameFromURL(raw string) string {
	trimmed := strings.TrimRight(raw, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return trimmed
	}
	segment := trimmed[idx+1:]
	if unescaped, err := url.PathUnescape(segment); err == nil {
		return unescaped
	}
	return segment
}
