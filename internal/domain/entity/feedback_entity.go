package entity

import "time"

// Feedback is a public submission; it is not tied to a registered account.
// Rating is optional, hence the pointer.
type Feedback struct {
	ID        string
	Name      string
	Email     string
	Message   string
	Rating    *int
	CreatedAt time.Time
}
