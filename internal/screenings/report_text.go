package screenings

import (
	"fmt"
	"sort"
	"strings"
	"text/template"
	"time"

	"neuroscan-backend/internal/inference"
	"neuroscan-backend/internal/patients"
)

var reportTemplate = template.Must(template.New("report").Parse(`ALZHEIMER'S SCREENING REPORT
============================

Patient:    {{.PatientName}}
Age:        {{.Age}}
Gender:     {{.Gender}}
Scan date:  {{.ScanDate}}
Referring:  {{.DoctorName}}

RESULT
------
Classification: {{.ClassLabel}} ({{.Class}})
Confidence:     {{.Confidence}}

{{if .Features}}FINDINGS
--------
{{range .Features}}- {{.}}
{{end}}{{end}}This report was generated from an automated MRI screening and must be
reviewed by a qualified clinician before any diagnosis is made.
`))

type reportData struct {
	PatientName string
	Age         int
	Gender      string
	ScanDate    string
	DoctorName  string
	Class       string
	ClassLabel  string
	Confidence  string
	Features    []string
}

// RenderReport assembles the stored report text from the patient
// identity and the inference result. Feature lines are emitted in a
// stable order.
func RenderReport(patient patients.Patient, doctorName string, scanDate time.Time, prediction inference.Prediction) (string, error) {
	features := make([]string, 0, len(prediction.Features))
	for name, value := range prediction.Features {
		features = append(features, fmt.Sprintf("%s: %s", name, value))
	}
	sort.Strings(features)

	data := reportData{
		PatientName: patient.Name,
		Age:         patient.Age,
		Gender:      patient.Gender,
		ScanDate:    scanDate.Format("January 2, 2006"),
		DoctorName:  doctorName,
		Class:       prediction.PredictedClass,
		ClassLabel:  inference.ClassLabel(prediction.PredictedClass),
		Confidence:  fmt.Sprintf("%.1f%%", prediction.Probability*100),
		Features:    features,
	}

	var sb strings.Builder
	if err := reportTemplate.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
