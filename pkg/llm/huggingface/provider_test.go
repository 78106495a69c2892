package huggingface

import (
	"ai-storefront-be/pkg/llm"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHuggingFaceProvider_Chat(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer hf-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"laptop, notebook"}}]}`))
	}))
	defer srv.Close()

	p := NewHuggingFaceProvider("hf-key", srv.URL, "qwen")

	t.Run("temperature omitted by default", func(t *testing.T) {
		out, err := p.Generate(context.Background(), "expand: laptop")
		require.NoError(t, err)
		assert.Equal(t, "laptop, notebook", out)
		assert.Equal(t, "qwen", captured.Model)
		assert.Equal(t, 800, captured.MaxTokens)
		assert.Nil(t, captured.Temperature)
	})

	t.Run("explicit zero temperature is sent", func(t *testing.T) {
		_, err := p.Generate(context.Background(), "x", llm.WithTemperature(0), llm.WithModel("other"))
		require.NoError(t, err)
		require.NotNil(t, captured.Temperature)
		assert.Equal(t, 0.0, *captured.Temperature)
		assert.Equal(t, "other", captured.Model)
	})
}

func TestHuggingFaceProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "http error", status: http.StatusUnauthorized, body: `{"error":"bad token"}`},
		{name: "api error field", status: http.StatusOK, body: `{"choices":[],"error":{"message":"overloaded"}}`},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantErr: llm.ErrEmptyCompletion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHuggingFaceProvider("", srv.URL, "m").Generate(context.Background(), "hi")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestHuggingFaceProvider_EmptyContentIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":""}}]}`))
	}))
	defer srv.Close()

	out, err := NewHuggingFaceProvider("", srv.URL, "m").Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Empty(t, out)
}
