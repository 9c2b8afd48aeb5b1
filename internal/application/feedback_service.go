package application

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fitlifeai/fitlife-backend/internal/domain/entity"
	repo "github.com/fitlifeai/fitlife-backend/internal/domain/repository"
)

// FeedbackService persists free-form feedback. Submission is open to
// anonymous visitors, so no user lookup happens here.
type FeedbackService struct {
	Repo   repo.FeedbackRepository
	Logger *logrus.Logger
}

func NewFeedbackService(r repo.FeedbackRepository, logger *logrus.Logger) *FeedbackService {
	return &FeedbackService{Repo: r, Logger: logger}
}

type FeedbackInput struct {
	Name    string `json:"name" binding:"omitempty,max=120"`
	Email   string `json:"email" binding:"omitempty,email"`
	Message string `json:"message" binding:"required,min=3,max=4000"`
	Rating  *int   `json:"rating" binding:"omitempty,min=1,max=5"`
}

func (s *FeedbackService) Submit(in FeedbackInput) (*entity.Feedback, error) {
	f := &entity.Feedback{
		ID:      uuid.NewString(),
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Message: strings.TrimSpace(in.Message),
		Rating:  in.Rating,
	}
	if err := s.Repo.Create(f); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("feedback_id", f.ID).Info("feedback received")
	}
	return f, nil
}
