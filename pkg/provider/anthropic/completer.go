package anthropic

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jlindh/studiocast/pkg/provider"

	"github.com/anthropics/anthropic-sdk-go"
)

var _ provider.Completer = (*Completer)(nil)

type Completer struct {
	*Config
	messages anthropic.MessageService
}

func NewCompleter(url, model string, options ...Option) (*Completer, error) {
	cfg := &Config{
		url:   url,
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Completer{
		Config:   cfg,
		messages: anthropic.NewMessageService(cfg.Options()...),
	}, nil
}

func (c *Completer) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	if options == nil {
		options = new(provider.CompleteOptions)
	}

	req := c.convertMessageRequest(messages, options)

	message, err := c.messages.New(ctx, *req)

	if err != nil {
		return nil, convertError(err)
	}

	result := &provider.Completion{
		ID:    message.ID,
		Model: c.model,

		Reason: toCompletionReason(message.StopReason),

		Message: &provider.Message{
			Role: provider.MessageRoleAssistant,
		},

		Usage: toUsage(message.Usage),
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			result.Message.Content = append(result.Message.Content, provider.TextContent(block.Text))
		}
	}

	return result, nil
}

func (c *Completer) convertMessageRequest(input []provider.Message, options *provider.CompleteOptions) *anthropic.MessageNewParams {
	maxTokens := int64(4096)

	if options.MaxTokens != nil {
		maxTokens = int64(*options.MaxTokens)
	}

	req := &anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxTokens,
	}

	for _, m := range input {
		switch m.Role {
		case provider.MessageRoleSystem:
			req.System = append(req.System, anthropic.TextBlockParam{Text: m.Text()})

		case provider.MessageRoleAssistant:
			req.Messages = append(req.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Text())))

		default:
			req.Messages = append(req.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Text())))
		}
	}

	if options.Temperature != nil {
		req.Temperature = anthropic.Float(float64(*options.Temperature))
	}

	if len(options.Stop) > 0 {
		req.StopSequences = options.Stop
	}

	return req
}

func convertError(err error) error {
	var apierr *anthropic.Error

	if !errors.As(err, &apierr) {
		return provider.NewTransientError(err.Error())
	}

	if apierr.StatusCode == http.StatusTooManyRequests {
		var retryAfter time.Duration

		if apierr.Response != nil {
			if val, err := http.ParseTime(apierr.Response.Header.Get("Retry-After")); err == nil {
				retryAfter = time.Until(val)
			}
		}

		return provider.NewRateLimitError(apierr.Error(), retryAfter)
	}

	return provider.NewFatalError(apierr.Error())
}

func toCompletionReason(val anthropic.StopReason) provider.CompletionReason {
	switch val {
	case anthropic.StopReasonMaxTokens:
		return provider.CompletionReasonLength

	case anthropic.StopReasonRefusal:
		return provider.CompletionReasonFilter

	default:
		return provider.CompletionReasonStop
	}
}

func toUsage(usage anthropic.Usage) *provider.Usage {
	return &provider.Usage{
		InputTokens:  int(usage.InputTokens),
		OutputTokens: int(usage.OutputTokens),
	}
}
