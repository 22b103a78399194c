package types

import "time"

// Profile is a locally stored identity a user selects to act as author
// and editor. Profiles are created on first entry of a name, never
// mutated, and never deleted by the application. Identity is advisory,
// not a security boundary.
type Profile struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
