package elevenlabs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/mynaparrot/plugnmeet-tutor/pkg/session"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL  = "https://api.elevenlabs.io"
	defaultRetryMax = 2
	apiKeyHeader    = "xi-api-key"
)

// AudioPlayer plays mono 16 bit PCM and blocks until it is done.
type AudioPlayer interface {
	Play(ctx context.Context, r io.Reader, sampleRate int) error
}

type Options struct {
	ApiKey       string
	VoiceID      string
	ModelID      string
	OutputFormat string
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// RetryMax of 0 uses the default, a negative value disables retries.
	RetryMax int
}

type speechRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Synthesizer speaks text with the ElevenLabs streaming endpoint.
type Synthesizer struct {
	opts       Options
	sampleRate int
	client     *retryablehttp.Client
	player     AudioPlayer
	logger     *logrus.Entry
}

func NewSynthesizer(opts Options, player AudioPlayer, logger *logrus.Entry) (*Synthesizer, error) {
	sampleRate, err := SampleRate(opts.OutputFormat)
	if err != nil {
		return nil, err
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.RetryMax == 0 {
		opts.RetryMax = defaultRetryMax
	}
	log := logger.WithField("provider", "elevenlabs")

	client := retryablehttp.NewClient()
	client.RetryMax = max(opts.RetryMax, 0)
	client.Logger = &leveledLogger{log: log}

	return &Synthesizer{
		opts:       opts,
		sampleRate: sampleRate,
		client:     client,
		player:     player,
		logger:     log,
	}, nil
}

// SampleRate extracts the rate from an output format like "pcm_24000".
func SampleRate(outputFormat string) (int, error) {
	rate, ok := strings.CutPrefix(outputFormat, "pcm_")
	if !ok {
		return 0, fmt.Errorf("unsupported output format %q, only pcm_<rate> can be played", outputFormat)
	}
	n, err := strconv.Atoi(rate)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid sample rate in output format %q", outputFormat)
	}
	return n, nil
}

// Speak implements session.SpeechOutput.
func (s *Synthesizer) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	body, err := s.stream(ctx, text)
	if err != nil {
		return fmt.Errorf("%w: %w", session.ErrSynthesisFailure, err)
	}
	defer body.Close()

	if err := s.player.Play(ctx, body, s.sampleRate); err != nil {
		return fmt.Errorf("%w: playback: %w", session.ErrSynthesisFailure, err)
	}
	return nil
}

func (s *Synthesizer) stream(ctx context.Context, text string) (io.ReadCloser, error) {
	u, err := url.Parse(s.opts.BaseURL)
	if err != nil {
		return nil, err
	}
	u = u.JoinPath("v1", "text-to-speech", s.opts.VoiceID, "stream")
	q := u.Query()
	q.Set("output_format", s.opts.OutputFormat)
	u.RawQuery = q.Encode()

	payload, err := json.Marshal(&speechRequest{Text: text, ModelID: s.opts.ModelID})
	if err != nil {
		return nil, err
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set(apiKeyHeader, s.opts.ApiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/pcm")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		_ = res.Body.Close()
		return nil, fmt.Errorf("http response code: %d, msg: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}

	s.logger.WithField("voice", s.opts.VoiceID).Debugln("receiving audio stream")
	return res.Body, nil
}

// leveledLogger forwards retryablehttp logs to logrus.
type leveledLogger struct {
	log *logrus.Entry
}

func (l *leveledLogger) fields(kv []interface{}) *logrus.Entry {
	e := l.log
	for i := 0; i+1 < len(kv); i += 2 {
		e = e.WithField(fmt.Sprint(kv[i]), kv[i+1])
	}
	return e
}

func (l *leveledLogger) Error(msg string, kv ...interface{}) { l.fields(kv).Errorln(msg) }
func (l *leveledLogger) Info(msg string, kv ...interface{})  { l.fields(kv).Debugln(msg) }
func (l *leveledLogger) Debug(msg string, kv ...interface{}) { l.fields(kv).Debugln(msg) }
func (l *leveledLogger) Warn(msg string, kv ...interface{})  { l.fields(kv).Warnln(msg) }
