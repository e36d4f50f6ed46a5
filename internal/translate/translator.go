// Package translate wraps the external text-translation provider behind a
// small interface so the content repository can be exercised without the
// real service.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Tufan17/timhoty-backend-sub004/pkg/config"
	"go.uber.org/zap"
)

// Translator produces a localized rendering of text for a target language.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Client calls the translation provider over HTTP.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates a translation client from configuration.
func NewClient(cfg *config.TranslatorConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     logger,
	}
}

type translateRequest struct {
	Text   string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate requests a translation of text into targetLang. The source
// text is returned unchanged when source and target match, saving a
// provider round trip.
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if sourceLang == targetLang || text == "" {
		return text, nil
	}

	payload, err := json.Marshal(translateRequest{Text: text, Source: sourceLang, Target: targetLang})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/translate", c.BaseURL), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Error("Translation request failed",
			zap.String("target_lang", targetLang),
			zap.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		c.Logger.Error("Translation provider returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("target_lang", targetLang))
		return "", fmt.Errorf("translation provider returned status %d", resp.StatusCode)
	}

	var result translateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	return result.TranslatedText, nil
}
