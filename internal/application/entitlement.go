package application

import (
	"errors"
	"time"

	"github.com/fitlifeai/fitlife-backend/internal/domain/entity"
)

// ErrTrialExpired is returned when a non-premium user requests a premium
// feature after the trial window. Callers must surface it explicitly (403),
// never degrade silently.
var ErrTrialExpired = errors.New("trial expired")

// Evaluator decides whether a user may use premium features. It is a pure
// function of the user record and the clock; Now is injectable so tests can
// advance time instead of waiting out a seven-day trial.
type Evaluator struct {
	Now func() time.Time
}

func NewEvaluator() *Evaluator {
	return &Evaluator{Now: time.Now}
}

// CanUsePremiumFeature reports whether the user is premium or still inside
// the trial window. The trial end is normalized to UTC here, once, so no call
// site ever compares a wall-clock reading against an offset-less timestamp.
func (e *Evaluator) CanUsePremiumFeature(u *entity.User) bool {
	if u.IsPremium {
		return true
	}
	now := e.Now().UTC()
	return !now.After(NormalizeUTC(u.TrialEndDate))
}

// NormalizeUTC converts a timestamp to UTC without changing the instant.
// timestamptz columns decode as a correct instant anchored to the process
// zone, and offset-less column values already decode anchored to UTC, so a
// plain conversion covers both.
func NormalizeUTC(t time.Time) time.Time {
	return t.UTC()
}
