package repository

import "github.com/fitlifeai/fitlife-backend/internal/domain/entity"

// FeedbackRepository defines storage for public feedback submissions.
type FeedbackRepository interface {
	Create(f *entity.Feedback) error
}
