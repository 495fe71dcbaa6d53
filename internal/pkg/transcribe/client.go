// Package transcribe wraps a hosted OpenAI-compatible speech-to-text API
// (POST {base_url}/audio/transcriptions, multipart form upload).
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-transcribe"
)

// Config holds transcription client settings.
type Config struct {
	APIKey  string // access token (required)
	Model   string // default: gpt-4o-transcribe
	BaseURL string // default: https://api.openai.com/v1
}

// ConfigFromEnv creates a Config from environment variables.
// Supported variables:
//   - TRANSCRIBE_API_KEY: access token (required)
//   - TRANSCRIBE_MODEL: model name (optional)
//   - TRANSCRIBE_BASE_URL: API base URL (optional)
func ConfigFromEnv() Config {
	return Config{
		APIKey:  os.Getenv("TRANSCRIBE_API_KEY"),
		Model:   os.Getenv("TRANSCRIBE_MODEL"),
		BaseURL: os.Getenv("TRANSCRIBE_BASE_URL"),
	}
}

// Client calls the hosted speech-to-text API. Implements
// booktools.Transcriber.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a transcription client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("transcription API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}, nil
}

// transcriptionResponse is the JSON body returned by the remote service.
type transcriptionResponse struct {
	Text  string `json:"text"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Transcribe uploads the audio stream and returns the transcript text.
// No retry; remote failures surface with the underlying message.
func (c *Client) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("failed to read audio data: %w", err)
	}
	if err := writer.WriteField("model", c.model); err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}

	url := c.baseURL + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read transcription response: %w", err)
	}

	var result transcriptionResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("unexpected transcription response (status %d): %s", resp.StatusCode, truncateForError(data))
	}

	if resp.StatusCode != http.StatusOK {
		msg := truncateForError(data)
		if result.Error != nil {
			msg = result.Error.Message
		}
		return "", fmt.Errorf("transcription service returned status %d: %s", resp.StatusCode, msg)
	}

	if result.Text == "" {
		return "", fmt.Errorf("transcription service returned an empty transcript")
	}

	return result.Text, nil
}

func truncateForError(data []byte) string {
	const max = 200
	s := string(data)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
