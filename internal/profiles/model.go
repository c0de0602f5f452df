package profiles

import "time"

// Portal roles stored in user_type.
const (
	UserTypeDoctor  = "doctor"
	UserTypePatient = "patient"
)

// Profile links an authenticated account to its portal role. first_login
// stays true until the doctor completes the provider registration form.
type Profile struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	UserType   string    `json:"userType"`
	FirstLogin bool      `json:"firstLogin"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
