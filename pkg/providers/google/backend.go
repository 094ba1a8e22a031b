package google

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mynaparrot/plugnmeet-tutor/pkg/dialogue"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

type Options struct {
	ApiKey      string
	Model       string
	Temperature float64
	MaxTokens   int64
	Timeout     time.Duration
}

// Backend is a dialogue.CompletionBackend on the Gemini API.
type Backend struct {
	client *genai.Client
	opts   Options
	logger *logrus.Entry
}

func NewBackend(ctx context.Context, opts Options, log *logrus.Entry) (*Backend, error) {
	if opts.ApiKey == "" {
		return nil, fmt.Errorf("google provider requires api_key")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.ApiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Backend{
		client: client,
		opts:   opts,
		logger: log.WithFields(logrus.Fields{"provider": "google", "model": opts.Model}),
	}, nil
}

func (b *Backend) Complete(ctx context.Context, conversation []dialogue.Turn) (string, error) {
	if b.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.opts.Timeout)
		defer cancel()
	}

	system, contents := toGenaiContent(conversation)
	cnf := &genai.GenerateContentConfig{
		SystemInstruction: system,
	}
	if b.opts.Temperature > 0 {
		cnf.Temperature = genai.Ptr(float32(b.opts.Temperature))
	}
	if b.opts.MaxTokens > 0 {
		cnf.MaxOutputTokens = int32(b.opts.MaxTokens)
	}

	resp, err := b.client.Models.GenerateContent(ctx, b.opts.Model, contents, cnf)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := responseText(resp)
	if resp.UsageMetadata != nil {
		b.logger.WithFields(logrus.Fields{
			"promptTokens":     resp.UsageMetadata.PromptTokenCount,
			"completionTokens": resp.UsageMetadata.CandidatesTokenCount,
		}).Debugln("content generated")
	}
	return text, nil
}

// toGenaiContent splits off the system Turn as the system instruction and
// maps the rest to user and model contents.
func toGenaiContent(turns []dialogue.Turn) (*genai.Content, []*genai.Content) {
	var system *genai.Content
	contents := make([]*genai.Content, 0, len(turns))

	for _, t := range turns {
		switch t.Role {
		case dialogue.RoleSystem:
			system = &genai.Content{
				Parts: []*genai.Part{genai.NewPartFromText(t.Text)},
			}
		case dialogue.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(t.Text, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(t.Text, genai.RoleUser))
		}
	}
	return system, contents
}

func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			sb.WriteString(part.Text)
		}
		// only the first candidate is used
		break
	}
	return sb.String()
}
