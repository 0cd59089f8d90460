// Package openai provides the transcript summarizer backed by the OpenAI
// chat completions API.
package openai

import (
	"context"
	"fmt"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"
)

// Summarizer turns raw transcript text into a short handoff summary.
type Summarizer interface {
	Summarize(ctx context.Context, transcriptText string) (string, error)
}

const systemPrompt = "You are an assistant that summarizes calls"

const promptTemplate = "You are a helpful assistant. Summarize the following call transcript into a concise actionable summary for another agent. Bullet points and key facts only.\n\nTranscript:\n%s"

// Client implements Summarizer using the OpenAI API.
type Client struct {
	client      oai.Client
	model       string
	maxTokens   int64
	temperature float64
}

// Option is a functional option for Client.
type Option func(*[]option.RequestOption)

// WithBaseURL overrides the default OpenAI API base URL.
func WithBaseURL(url string) Option {
	return func(reqOpts *[]option.RequestOption) {
		*reqOpts = append(*reqOpts, option.WithBaseURL(url))
	}
}

// WithMaxRetries overrides the SDK's default retry count.
func WithMaxRetries(n int) Option {
	return func(reqOpts *[]option.RequestOption) {
		*reqOpts = append(*reqOpts, option.WithMaxRetries(n))
	}
}

// NewClient constructs a summarizer client. Generation is bounded and
// low-temperature so repeated calls on the same transcript stay close to
// deterministic.
func NewClient(apiKey, model string, maxTokens int, temperature float64, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: apiKey must not be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("openai: model must not be empty")
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	for _, o := range opts {
		o(&reqOpts)
	}

	return &Client{
		client:      oai.NewClient(reqOpts...),
		model:       model,
		maxTokens:   int64(maxTokens),
		temperature: temperature,
	}, nil
}

// Summarize implements Summarizer.
func (c *Client) Summarize(ctx context.Context, transcriptText string) (string, error) {
	params := oai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(systemPrompt),
			oai.UserMessage(fmt.Sprintf(promptTemplate, transcriptText)),
		},
		MaxTokens:   param.NewOpt(c.maxTokens),
		Temperature: param.NewOpt(c.temperature),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
