// Package huggingface provides a text-generation client for the Hugging Face router.
// Uses the OpenAI-compatible chat completions endpoint.
package huggingface

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// Hugging Face router OpenAI-compatible endpoint
	DefaultEndpoint = "https://router.huggingface.co/v1"

	// Sampling parameters used for article generation
	DefaultMaxTokens   = 1800
	DefaultTemperature = 0.8
	DefaultTopP        = 0.9
)

// SystemPrompt frames every generation request.
const SystemPrompt = "Você é um redator especialista em Pokémon, escrevendo artigos em português do Brasil, com texto natural, fluido e sem mencionar que é uma IA."

// Config holds the configuration for the Hugging Face client.
type Config struct {
	APIKey   string
	Endpoint string
	Model    string
}

// Client wraps the OpenAI SDK configured for the Hugging Face router.
type Client struct {
	client *openai.Client
	model  string
	apiKey string
}

// NewClient creates a new Hugging Face client. A client without model or key
// is valid and always returns no content.
func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = strings.TrimRight(cfg.Endpoint, "/")

	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
		apiKey: cfg.APIKey,
	}
}

// Enabled reports whether both the model id and the API key are configured.
func (c *Client) Enabled() bool {
	return c.model != "" && c.apiKey != ""
}

// Model returns the configured model id.
func (c *Client) Model() string {
	return c.model
}

// Generate sends prompt to the model and returns the generated text.
// Any failure is logged and reported as an empty string; no retries are made.
func (c *Client) Generate(ctx context.Context, prompt string) string {
	if !c.Enabled() {
		log.Warn().Msg("HF_MODEL or HF_API_KEY not configured, using local fallback content")
		return ""
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
		TopP:        DefaultTopP,
		Stream:      false,
	}

	log.Debug().
		Str("model", c.model).
		Int("prompt_chars", len(prompt)).
		Msg("Sending chat request to Hugging Face router")

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		logFailure(err)
		return ""
	}

	if len(resp.Choices) == 0 {
		log.Error().Str("model", c.model).Msg("Hugging Face response has no choices")
		return ""
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		log.Error().Str("model", c.model).Msg("Hugging Face response has empty content")
		return ""
	}

	log.Debug().
		Str("finish_reason", string(resp.Choices[0].FinishReason)).
		Int("total_tokens", resp.Usage.TotalTokens).
		Msg("Hugging Face generation complete")

	return content
}

func logFailure(err error) {
	var apiErr *openai.APIError
	var reqErr *openai.RequestError

	switch {
	case errors.As(err, &apiErr):
		log.Error().
			Int("status", apiErr.HTTPStatusCode).
			Str("detail", apiErr.Message).
			Msg("Hugging Face router returned an error")
	case errors.As(err, &reqErr):
		log.Error().
			Int("status", reqErr.HTTPStatusCode).
			Err(reqErr.Err).
			Msg("Hugging Face router request failed")
	default:
		log.Error().Err(err).Msg("Hugging Face router call failed")
	}
}
