package screenings

import (
	"strings"
	"testing"
	"time"

	"neuroscan-backend/internal/inference"
	"neuroscan-backend/internal/patients"
)

func TestRenderReportIncludesIdentityAndResult(t *testing.T) {
	patient := patients.Patient{
		Name:   "Elena Vasquez",
		Age:    67,
		Gender: patients.GenderFemale,
	}
	prediction := inference.Prediction{
		PredictedClass: inference.ClassMCI,
		Probability:    0.825,
		Features: map[string]string{
			"hippocampal_volume": "reduced",
			"cortical_thickness": "thinned",
		},
	}
	scanDate := time.Date(2026, time.February, 10, 9, 30, 0, 0, time.UTC)

	text, err := RenderReport(patient, "J. Smith", scanDate, prediction)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		"Elena Vasquez",
		"67",
		"Female",
		"February 10, 2026",
		"J. Smith",
		"Mild Cognitive Impairment (MCI)",
		"82.5%",
		"cortical_thickness: thinned",
		"hippocampal_volume: reduced",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q:\n%s", want, text)
		}
	}

	// Feature lines come out sorted by name.
	if strings.Index(text, "cortical_thickness") > strings.Index(text, "hippocampal_volume") {
		t.Errorf("features not in stable order:\n%s", text)
	}
}

func TestRenderReportOmitsEmptyFeatures(t *testing.T) {
	text, err := RenderReport(patients.Patient{Name: "X", Age: 70, Gender: patients.GenderMale}, "N/A",
		time.Now(), inference.Prediction{PredictedClass: inference.ClassCN, Probability: 0.99})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(text, "FINDINGS") {
		t.Fatalf("expected no findings section:\n%s", text)
	}
}
