package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Passwords are stored as bcrypt hashes in Password and never serialized
// outward. TrialEndDate is fixed at registration (creation time + trial
// period) and never recomputed; IsPremium only ever transitions false→true.
type User struct {
	ID                  string
	Email               string
	Password            string
	Name                string
	Age                 int
	Weight              float64
	Height              float64
	Goals               string
	DietaryRestrictions string
	WorkoutType         string
	CurrentActivities   string
	IsPremium           bool
	TrialEndDate        time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Workout location types accepted by the profile.
const (
	WorkoutTypeGym     = "academia"
	WorkoutTypeHome    = "casa"
	WorkoutTypeOutdoor = "ar_livre"
)
