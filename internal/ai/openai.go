package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/keshon/aisling/pkg/retrylimit"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

// OpenAIConfig describes an OpenAI-compatible chat-completions endpoint (OpenRouter by default).
type OpenAIConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	MaxAttempts int
}

type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type OpenAIProvider struct {
	client  chatClient
	cfg     OpenAIConfig
	limiter *retrylimit.AdaptiveLimiter
	log     zerolog.Logger
}

func NewOpenAIProvider(cfg OpenAIConfig, log zerolog.Logger) *OpenAIProvider {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return newOpenAIProvider(openai.NewClientWithConfig(clientCfg), cfg, log)
}

func newOpenAIProvider(client chatClient, cfg OpenAIConfig, log zerolog.Logger) *OpenAIProvider {
	return &OpenAIProvider{
		client:  client,
		cfg:     cfg,
		limiter: retrylimit.NewAdaptiveLimiter(2, 1, 5, 1, 0.5),
		log:     log,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, messages []Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       p.cfg.Model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	retry := retrylimit.DefaultConfig()
	if p.cfg.MaxAttempts > 0 {
		retry.MaxAttempts = p.cfg.MaxAttempts
	}
	retry.OnRetry = func(attempt int, err error) {
		p.log.Warn().Err(err).Int("attempt", attempt).Float64("rps", p.limiter.CurrentLimit()).Msg("completion failed, retrying")
	}

	var reply string
	err := retrylimit.Do(ctx, p.limiter, retry, func(ctx context.Context) error {
		resp, err := p.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return classify(err)
		}
		if len(resp.Choices) == 0 {
			return ErrEmptyCompletion
		}
		reply = cleanReply(resp.Choices[0].Message.Content)
		if reply == "" {
			return ErrEmptyCompletion
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("chat completion (%s): %w", p.cfg.Model, err)
	}

	p.log.Debug().Str("model", p.cfg.Model).Int("messages", len(messages)).Str("reply", truncate(reply, 120)).Msg("completion received")
	return reply, nil
}

type statusError struct {
	code int
	err  error
}

func (e *statusError) Error() string   { return e.err.Error() }
func (e *statusError) Unwrap() error   { return e.err }
func (e *statusError) StatusCode() int { return e.code }

// classify exposes the HTTP status of go-openai errors to the retry policy.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &statusError{code: apiErr.HTTPStatusCode, err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &statusError{code: reqErr.HTTPStatusCode, err: err}
	}
	return err
}
