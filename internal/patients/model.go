package patients

// Patient is one roster entry owned by a healthcare provider.
type Patient struct {
	ID         string `json:"patientId"`
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	ProviderID string `json:"providerId"`
}
