package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fitlifeai/fitlife-backend/internal/domain/entity"
)

func evaluatorAt(t time.Time) *Evaluator {
	return &Evaluator{Now: func() time.Time { return t }}
}

func TestCanUsePremiumFeature(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		user entity.User
		want bool
	}{
		{
			name: "premium user always allowed",
			user: entity.User{IsPremium: true, TrialEndDate: now.Add(-30 * 24 * time.Hour)},
			want: true,
		},
		{
			name: "inside trial window",
			user: entity.User{TrialEndDate: now.Add(24 * time.Hour)},
			want: true,
		},
		{
			name: "exactly at trial end",
			user: entity.User{TrialEndDate: now},
			want: true,
		},
		{
			name: "one second past trial end",
			user: entity.User{TrialEndDate: now.Add(-time.Second)},
			want: false,
		},
		{
			name: "trial long expired",
			user: entity.User{TrialEndDate: now.Add(-10 * 24 * time.Hour)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := evaluatorAt(now)
			assert.Equal(t, tt.want, e.CanUsePremiumFeature(&tt.user))
		})
	}
}

func TestCanUsePremiumFeatureNonUTCProcessZone(t *testing.T) {
	// timestamptz values decode as correct instants anchored to the process
	// zone; evaluation must not shift them by the local offset
	restore := time.Local
	time.Local = time.FixedZone("BRT", -3*60*60)
	defer func() { time.Local = restore }()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	e := evaluatorAt(now)

	u := &entity.User{TrialEndDate: now.Add(time.Hour).In(time.Local)}
	assert.True(t, e.CanUsePremiumFeature(u), "an hour of trial left must not be denied")

	u = &entity.User{TrialEndDate: now.Add(-time.Second).In(time.Local)}
	assert.False(t, e.CanUsePremiumFeature(u))
}

func TestNormalizeUTC(t *testing.T) {
	offset := time.FixedZone("BRT", -3*60*60)
	in := time.Date(2025, 1, 2, 3, 0, 0, 0, offset)
	got := NormalizeUTC(in)
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, got.Equal(in))

	utc := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, utc, NormalizeUTC(utc))
}
