package reports

import "testing"

func TestFormatDoctorName(t *testing.T) {
	cases := map[string]string{
		"John Smith":        "J. Smith",
		"Maria Gray-Lopez":  "M. Gray-Lopez",
		"Anil Kumar Sharma": "A. Sharma",
		"Prince":            "Prince",
		"  ":                "N/A",
		"":                  "N/A",
	}
	for in, want := range cases {
		if got := FormatDoctorName(in); got != want {
			t.Errorf("%q: expected %q, got %q", in, want, got)
		}
	}
}
