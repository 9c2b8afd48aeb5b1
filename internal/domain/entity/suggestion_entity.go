package entity

import "time"

// Suggestion kinds. A suggestion record is owned by exactly one user and is
// immutable once created, except for deletion.
const (
	SuggestionWorkout   = "workout"
	SuggestionNutrition = "nutrition"
)

// Suggestion is an AI-generated workout or nutrition plan for a user.
type Suggestion struct {
	ID         string
	UserID     string
	Kind       string
	Suggestion string
	CreatedAt  time.Time
}
