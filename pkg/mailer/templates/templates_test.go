package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDeleteConfirmation(t *testing.T) {
	subject, text, html, err := Render("delete_confirmation", map[string]any{
		"Name":  "Ana",
		"Token": "abc123",
	})
	require.NoError(t, err)

	assert.Contains(t, subject, "exclusão")
	assert.Contains(t, text, "Ana")
	assert.Contains(t, text, "abc123")
	assert.Contains(t, html, "<strong>abc123</strong>")
}

func TestRenderPremiumWelcome(t *testing.T) {
	subject, text, html, err := Render("premium_welcome", nil)
	require.NoError(t, err)

	assert.Contains(t, subject, "Premium")
	assert.NotEmpty(t, text)
	assert.NotEmpty(t, html)
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.Error(t, err)
}
