package chatgpt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/yanqian/perf-summaries/pkg/metrics"
)

const defaultModel = openai.GPT3Dot5Turbo

// ErrNoChoices is returned when the provider answers without any completion.
var ErrNoChoices = errors.New("chatgpt returned no choices")

// Config holds the OpenAI connection settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	// Timeout bounds each HTTP call. Zero leaves the library default.
	Timeout time.Duration
}

// Client performs single-turn chat completions against an OpenAI-compatible API.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	metrics     *metrics.Recorder
	logger      *slog.Logger
}

// NewClient constructs a ChatGPT client.
func NewClient(cfg Config, recorder *metrics.Recorder, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("chatgpt api key cannot be empty")
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		api:         openai.NewClientWithConfig(clientCfg),
		model:       model,
		temperature: cfg.Temperature,
		metrics:     recorder,
		logger:      logger.With("component", "llm.chatgpt", "model", model),
	}, nil
}

// Model returns the model identifier sent with every request.
func (c *Client) Model() string {
	return c.model
}

// Complete sends a system and a user message and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.ObserveCompletion(elapsed, metrics.TokenUsage{}, err)
		return "", fmt.Errorf("chat completion: %w", err)
	}

	usage := metrics.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	if len(resp.Choices) == 0 {
		c.metrics.ObserveCompletion(elapsed, usage, ErrNoChoices)
		return "", ErrNoChoices
	}
	c.metrics.ObserveCompletion(elapsed, usage, nil)

	content := resp.Choices[0].Message.Content
	c.logger.Debug("chatgpt response received", "duration_ms", elapsed.Milliseconds(), "total_tokens", usage.TotalTokens)
	return content, nil
}
