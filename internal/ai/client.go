package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/fitforge-app/fitforge/internal/config"
	"github.com/fitforge-app/fitforge/internal/metrics"
)

// ProviderError wraps a failed or unusable model-provider response. Message
// is safe to show callers; the raw provider payload goes only to logs.
type ProviderError struct {
	Message string
	cause   error
}

func (e *ProviderError) Error() string { return e.Message }
func (e *ProviderError) Unwrap() error { return e.cause }

// Client issues chat-completion calls to the configured provider.
type Client struct {
	api         *openai.Client
	model       string
	visionModel string
	temperature float32
	timeout     time.Duration
}

func NewClient(cfg config.AIConfig) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = cfg.BaseURL
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		api:         openai.NewClientWithConfig(apiCfg),
		model:       cfg.Model,
		visionModel: cfg.VisionModel,
		temperature: float32(cfg.Temperature),
		timeout:     cfg.Timeout,
	}
}

// Complete sends one system message and one user message (multi-part when an
// image is attached) and returns the raw text completion.
func (c *Client) Complete(ctx context.Context, system, user, imageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	model := c.model
	userMsg := openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: user,
	}
	action := "text"

	if imageURL != "" {
		model = c.visionModel
		action = "vision"
		userMsg = openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: user},
				{
					Type:     openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{URL: imageURL, Detail: openai.ImageURLDetailAuto},
				},
			},
		}
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			userMsg,
		},
	})
	metrics.ModelCallDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())

	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			slog.Error("model provider returned error",
				"status", apiErr.HTTPStatusCode, "type", apiErr.Type, "error", apiErr.Message)
		} else {
			slog.Error("model provider call failed", "error", err)
		}
		return "", &ProviderError{Message: "the AI service is temporarily unavailable", cause: err}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		slog.Error("model provider returned no completion", "model", model, "id", resp.ID)
		return "", &ProviderError{Message: "the AI service returned an empty response", cause: fmt.Errorf("no choices in response %s", resp.ID)}
	}

	return resp.Choices[0].Message.Content, nil
}
