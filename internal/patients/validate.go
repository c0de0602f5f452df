package patients

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validate rejects a patient before any remote call is made.
func validate(p Patient) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if p.Age < 1 || p.Age > 120 {
		return fmt.Errorf("%w: age must be between 1 and 120", ErrInvalidInput)
	}
	if p.Gender != GenderMale && p.Gender != GenderFemale {
		return fmt.Errorf("%w: gender must be Male or Female", ErrInvalidInput)
	}
	if p.Email != "" && !emailPattern.MatchString(p.Email) {
		return fmt.Errorf("%w: email is not valid", ErrInvalidInput)
	}
	return nil
}
