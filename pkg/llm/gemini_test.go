package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	var gotPath, gotKey string
	var gotReq generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{
					{"text": "Treino A: "},
					{"text": "agachamento 3x12"},
				}}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("test-key", "gemini-2.0-flash").WithBaseURL(srv.URL)
	out, err := c.Generate(context.Background(), "você é um personal trainer", "monte um treino")
	require.NoError(t, err)

	assert.Equal(t, "Treino A: agachamento 3x12", out)
	assert.Equal(t, "/models/gemini-2.0-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	require.NotNil(t, gotReq.SystemInstruction)
	assert.Equal(t, "você é um personal trainer", gotReq.SystemInstruction.Parts[0].Text)
	require.Len(t, gotReq.Contents, 1)
	assert.Equal(t, "user", gotReq.Contents[0].Role)
	assert.Equal(t, "monte um treino", gotReq.Contents[0].Parts[0].Text)
}

func TestGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 429, "message": "quota exceeded"},
		})
	}))
	defer srv.Close()

	c := NewClient("test-key", "gemini-2.0-flash").WithBaseURL(srv.URL)
	_, err := c.Generate(context.Background(), "sys", "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGenerateEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	c := NewClient("test-key", "gemini-2.0-flash").WithBaseURL(srv.URL)
	_, err := c.Generate(context.Background(), "sys", "prompt")
	assert.Error(t, err)
}

func TestGenerateMissingAPIKey(t *testing.T) {
	c := NewClient("", "gemini-2.0-flash")
	_, err := c.Generate(context.Background(), "sys", "prompt")
	assert.Error(t, err)
}
