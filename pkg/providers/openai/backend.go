package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/mynaparrot/plugnmeet-tutor/pkg/dialogue"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/azure"
	"github.com/openai/openai-go/v3/option"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Endpoint    string
	ApiKey      string
	ApiVersion  string
	Deployment  string
	Temperature float64
	MaxTokens   int64
	Timeout     time.Duration
}

// Backend is a dialogue.CompletionBackend on an Azure OpenAI chat deployment.
type Backend struct {
	client openai.Client
	opts   Options
	logger *logrus.Entry
}

// NewBackend builds the client. Extra request options are appended after the
// Azure ones.
func NewBackend(opts Options, log *logrus.Entry, extra ...option.RequestOption) (*Backend, error) {
	if opts.Endpoint == "" || opts.ApiKey == "" || opts.Deployment == "" {
		return nil, fmt.Errorf("azure openai requires an endpoint, an api key and a deployment")
	}

	reqOpts := []option.RequestOption{
		azure.WithEndpoint(opts.Endpoint, opts.ApiVersion),
		azure.WithAPIKey(opts.ApiKey),
	}
	reqOpts = append(reqOpts, extra...)

	return &Backend{
		client: openai.NewClient(reqOpts...),
		opts:   opts,
		logger: log.WithFields(logrus.Fields{"provider": "azure_openai", "deployment": opts.Deployment}),
	}, nil
}

func (b *Backend) Complete(ctx context.Context, conversation []dialogue.Turn) (string, error) {
	if b.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.opts.Timeout)
		defer cancel()
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(b.opts.Deployment),
		Messages: toChatMessages(conversation),
	}
	if b.opts.Temperature > 0 {
		params.Temperature = openai.Float(b.opts.Temperature)
	}
	if b.opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(b.opts.MaxTokens)
	}

	start := time.Now()
	resp, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	b.logger.WithFields(logrus.Fields{
		"took":             time.Since(start).String(),
		"promptTokens":     resp.Usage.PromptTokens,
		"completionTokens": resp.Usage.CompletionTokens,
		"finishReason":     resp.Choices[0].FinishReason,
	}).Debugln("chat completion finished")

	return resp.Choices[0].Message.Content, nil
}

func toChatMessages(turns []dialogue.Turn) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case dialogue.RoleSystem:
			messages = append(messages, openai.SystemMessage(t.Text))
		case dialogue.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(t.Text))
		default:
			messages = append(messages, openai.UserMessage(t.Text))
		}
	}
	return messages
}
