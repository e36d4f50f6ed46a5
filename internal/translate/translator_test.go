package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTranslateCallsProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req translateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Hello", req.Text)
		assert.Equal(t, "en", req.Source)
		assert.Equal(t, "ar", req.Target)

		json.NewEncoder(w).Encode(translateResponse{TranslatedText: "مرحبا"})
	}))
	defer server.Close()

	client := &Client{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		HTTPClient: server.Client(),
		Logger:     zap.NewNop(),
	}

	translated, err := client.Translate(context.Background(), "Hello", "en", "ar")
	require.NoError(t, err)
	assert.Equal(t, "مرحبا", translated)
}

func TestTranslateSkipsSameLanguage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("provider must not be called when source and target match")
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, HTTPClient: server.Client(), Logger: zap.NewNop()}

	translated, err := client.Translate(context.Background(), "Hello", "en", "en")
	require.NoError(t, err)
	assert.Equal(t, "Hello", translated)

	translated, err = client.Translate(context.Background(), "", "en", "ar")
	require.NoError(t, err)
	assert.Empty(t, translated)
}

func TestTranslateProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, HTTPClient: server.Client(), Logger: zap.NewNop()}

	_, err := client.Translate(context.Background(), "Hello", "en", "ar")
	assert.Error(t, err)
}
