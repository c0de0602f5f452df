package providers

// Provider is a registered doctor. Email is the join key to the
// authenticated account's profile.
type Provider struct {
	ID             string `json:"providerId"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialization string `json:"specialization"`
}
