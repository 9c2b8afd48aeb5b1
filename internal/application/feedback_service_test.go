package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitFeedback(t *testing.T) {
	repo := &fakeFeedbackRepo{}
	svc := NewFeedbackService(repo, nil)

	rating := 4
	f, err := svc.Submit(FeedbackInput{
		Name:    "  Ana  ",
		Email:   "ana@example.com",
		Message: "  App muito bom, mas quero mais treinos.  ",
		Rating:  &rating,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, f.ID)
	assert.Equal(t, "Ana", f.Name)
	assert.Equal(t, "App muito bom, mas quero mais treinos.", f.Message)
	require.NotNil(t, f.Rating)
	assert.Equal(t, 4, *f.Rating)
	require.Len(t, repo.items, 1)
}

func TestSubmitFeedbackAnonymous(t *testing.T) {
	repo := &fakeFeedbackRepo{}
	svc := NewFeedbackService(repo, nil)

	f, err := svc.Submit(FeedbackInput{Message: "sem cadastro"})
	require.NoError(t, err)
	assert.Empty(t, f.Email)
	assert.Nil(t, f.Rating)
}
