package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

type AppConfig struct {
	Logger   *logrus.Logger `yaml:"-"`
	NatsConn *nats.Conn     `yaml:"-"`
	// Settings holds the required credentials, read from the environment only.
	Settings *Settings `yaml:"-"`
	// GoogleApiKey is only needed when completion.provider is "google".
	GoogleApiKey string `yaml:"-"`

	RootWorkingDir string         `yaml:"-"`
	LogSettings    LogSettings    `yaml:"log_settings"`
	Tutor          TutorInfo      `yaml:"tutor"`
	Completion     CompletionInfo `yaml:"completion"`
	Synthesis      SynthesisInfo  `yaml:"synthesis"`
	NatsInfo       NatsInfo       `yaml:"nats_info"`
}

type LogSettings struct {
	LogFile    string  `yaml:"log_file"`
	MaxSize    int     `yaml:"max_size"`
	MaxBackups int     `yaml:"max_backups"`
	MaxAge     int     `yaml:"max_age"`
	LogLevel   *string `yaml:"log_level"`
}

type TutorInfo struct {
	Persona             string   `yaml:"persona"`
	RecognitionLanguage string   `yaml:"recognition_language"`
	ExitPhrases         []string `yaml:"exit_phrases"`
	// MaxExchanges bounds how many previous user/assistant exchanges are sent
	// with each request. 0 sends the whole conversation.
	MaxExchanges int `yaml:"max_exchanges"`
}

type CompletionInfo struct {
	Provider    string        `yaml:"provider"`
	ApiVersion  string        `yaml:"api_version"`
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int64         `yaml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout"`
	GoogleModel string        `yaml:"google_model"`
}

type SynthesisInfo struct {
	Provider     string `yaml:"provider"`
	VoiceId      string `yaml:"voice_id"`
	ModelId      string `yaml:"model_id"`
	OutputFormat string `yaml:"output_format"`
	// Player is the system audio player used for ElevenLabs audio.
	// Empty means the first one found on PATH.
	Player     string `yaml:"player"`
	AzureVoice string `yaml:"azure_voice"`
}

type NatsInfo struct {
	NatsUrls []string `yaml:"nats_urls"`
	User     string   `yaml:"user"`
	Password string   `yaml:"password"`
	Nkey     *string  `yaml:"nkey"`
	Subject  string   `yaml:"subject"`
}

// Enabled reports whether turn events should be published.
func (n NatsInfo) Enabled() bool {
	return len(n.NatsUrls) > 0
}

// New applies defaults to a freshly read configuration and validates it.
func New(appCnf *AppConfig) (*AppConfig, error) {
	if appCnf.Tutor.Persona == "" {
		appCnf.Tutor.Persona = DefaultPersona
	}
	if appCnf.Tutor.RecognitionLanguage == "" {
		appCnf.Tutor.RecognitionLanguage = DefaultRecognitionLanguage
	}
	if len(appCnf.Tutor.ExitPhrases) == 0 {
		appCnf.Tutor.ExitPhrases = []string{"exit", "quit"}
	}
	if appCnf.Tutor.MaxExchanges < 0 {
		appCnf.Tutor.MaxExchanges = 0
	}

	if appCnf.Completion.Provider == "" {
		appCnf.Completion.Provider = CompletionProviderAzureOpenAI
	}
	if appCnf.Completion.ApiVersion == "" {
		appCnf.Completion.ApiVersion = DefaultAzureOpenAIApiVersion
	}
	if appCnf.Completion.Temperature == 0 {
		appCnf.Completion.Temperature = DefaultTemperature
	}
	if appCnf.Completion.MaxTokens == 0 {
		appCnf.Completion.MaxTokens = DefaultMaxTokens
	}
	if appCnf.Completion.Timeout <= 0 {
		appCnf.Completion.Timeout = DefaultCompletionTimeout
	}
	if appCnf.Completion.GoogleModel == "" {
		appCnf.Completion.GoogleModel = DefaultGoogleModel
	}

	if appCnf.Synthesis.Provider == "" {
		appCnf.Synthesis.Provider = SynthesisProviderElevenLabs
	}
	if appCnf.Synthesis.VoiceId == "" {
		appCnf.Synthesis.VoiceId = DefaultElevenLabsVoiceId
	}
	if appCnf.Synthesis.ModelId == "" {
		appCnf.Synthesis.ModelId = DefaultElevenLabsModelId
	}
	if appCnf.Synthesis.OutputFormat == "" {
		appCnf.Synthesis.OutputFormat = DefaultElevenLabsOutputFormat
	}
	if appCnf.Synthesis.AzureVoice == "" {
		appCnf.Synthesis.AzureVoice = DefaultAzureVoice
	}

	if appCnf.NatsInfo.Subject == "" {
		appCnf.NatsInfo.Subject = DefaultTurnSubject
	}

	if err := appCnf.Validate(); err != nil {
		return nil, err
	}
	return appCnf, nil
}

// Validate checks the provider selections and their provider specific requirements.
func (a *AppConfig) Validate() error {
	switch a.Completion.Provider {
	case CompletionProviderAzureOpenAI:
	case CompletionProviderGoogle:
		if a.GoogleApiKey == "" {
			return fmt.Errorf("%s must be set when completion provider is %q", EnvGoogleApiKey, CompletionProviderGoogle)
		}
	default:
		return fmt.Errorf("unknown completion provider: %s", a.Completion.Provider)
	}

	switch a.Synthesis.Provider {
	case SynthesisProviderElevenLabs:
		if !strings.HasPrefix(a.Synthesis.OutputFormat, "pcm_") {
			return fmt.Errorf("elevenlabs output_format must be a pcm format, got %q", a.Synthesis.OutputFormat)
		}
	case SynthesisProviderAzure:
	default:
		return fmt.Errorf("unknown synthesis provider: %s", a.Synthesis.Provider)
	}

	for _, p := range a.Tutor.ExitPhrases {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("exit phrases must not be blank")
		}
	}
	return nil
}
