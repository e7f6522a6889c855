package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultEndpoint is the Anthropic Messages API.
const DefaultEndpoint = "https://api.anthropic.com/v1/messages"

// Config is resolved once at startup and passed to NewClient.
type Config struct {
	Endpoint       string
	APIKey         string
	Model          string
	MaxTokens      int
	Temperature    float64
	MaxInputTokens int // 0 disables truncation.
	Timeout        time.Duration
}

// Client summarizes article text with the Anthropic Messages API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	Stats      *LLMStats
}

func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 300
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		Stats: NewLLMStats(time.Hour),
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.cfg.Model
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Summarize returns a one-paragraph summary of articleText written in the
// same language as the input. titleHint, when set, is passed to the model
// as context. If the first summary comes back in the wrong language the
// request is repeated once with the language forced.
func (c *Client) Summarize(ctx context.Context, articleText, titleHint string) (string, error) {
	text := TruncateTokens(articleText, c.cfg.MaxInputTokens)
	lang := DetectLanguage(text)

	raw, err := c.complete(ctx, BuildPrompt(text, titleHint, ""))
	if err != nil {
		return "", err
	}
	summary := CleanSummary(raw)
	if DetectLanguage(summary) == lang {
		return summary, nil
	}

	raw, err = c.complete(ctx, BuildPrompt(text, titleHint, lang))
	if err != nil {
		// Keep the first summary rather than failing the article.
		return summary, nil
	}
	return CleanSummary(raw), nil
}

func (c *Client) complete(ctx context.Context, prompt string) (text string, err error) {
	start := time.Now()
	defer func() {
		c.Stats.Record(time.Since(start).Milliseconds(), err == nil)
		observe(time.Since(start), err)
	}()

	reqBody := anthropicRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.cfg.APIKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", &SummarizationError{Message: "transport failure", Retryable: true, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &SummarizationError{Message: "read response", Retryable: true, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", &SummarizationError{
			StatusCode: resp.StatusCode,
			Message:    "authentication failed: the API key is invalid or missing",
		}
	case resp.StatusCode == http.StatusForbidden:
		return "", &SummarizationError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("access denied to model %q: set ANTHROPIC_MODEL to a model available to this account", c.cfg.Model),
		}
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", &SummarizationError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
			Retryable:  true,
		}
	case resp.StatusCode != http.StatusOK:
		return "", &SummarizationError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", &SummarizationError{StatusCode: resp.StatusCode, Message: "decode response", Err: err}
	}
	if apiResp.Error != nil {
		return "", &SummarizationError{
			StatusCode: resp.StatusCode,
			Message:    apiResp.Error.Type + ": " + apiResp.Error.Message,
		}
	}
	if len(apiResp.Content) == 0 {
		return "", &SummarizationError{StatusCode: resp.StatusCode, Message: "empty response"}
	}
	return apiResp.Content[0].Text, nil
}

// SummarizationError reports a transport, auth or quota failure of the
// summarization service.
type SummarizationError struct {
	StatusCode int
	Message    string
	Retryable  bool
	Err        error
}

func (e *SummarizationError) Error() string {
	msg := truncate(e.Message, 200)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("summarization failed (status %d): %s", e.StatusCode, msg)
	}
	return "summarization failed: " + msg
}

func (e *SummarizationError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is a transient summarization failure.
func IsRetryable(err error) bool {
	var se *SummarizationError
	return errors.As(err, &se) && se.Retryable
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
