package repository

import "github.com/fitlifeai/fitlife-backend/internal/domain/entity"

// SuggestionRepository defines storage for AI suggestion records.
// Every read and delete is scoped by the owning user id; there is no way to
// touch another user's records through this interface.
type SuggestionRepository interface {
	Create(s *entity.Suggestion) error
	ListByUser(userID, kind string, limit int) ([]*entity.Suggestion, error)
	DeleteOwned(id, userID string) error
	DeleteByUser(userID string) error
}
