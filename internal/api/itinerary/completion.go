package itinerary

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/peakbaguio/peak-baguio/config"
	"github.com/peakbaguio/peak-baguio/internal/types"
)

// CompletionClient produces the itinerary prose for a prompt.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

var _ CompletionClient = (*OpenAICompletionClient)(nil)

// OpenAICompletionClient calls an OpenAI-compatible chat-completions endpoint
// once per generation. Model, token budget and temperature are fixed by
// configuration, not by the caller.
type OpenAICompletionClient struct {
	client  *openai.Client
	model   string
	maxTok  int
	temp    float32
	timeout time.Duration
}

func NewOpenAICompletionClient(cfg config.CompletionConfig) *OpenAICompletionClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAICompletionClient{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		maxTok:  cfg.MaxTokens,
		temp:    float32(cfg.Temperature),
		timeout: cfg.Timeout,
	}
}

func (c *OpenAICompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   c.maxTok,
		Temperature: c.temp,
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", types.ErrEmptyCompletion
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", types.ErrEmptyCompletion
	}
	return content, nil
}
