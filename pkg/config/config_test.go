package config

import (
	"errors"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

const testConfigYaml = `
log_settings:
  log_level: debug
tutor:
  persona: "You are a tutor."
  recognition_language: en-US
  max_exchanges: 4
completion:
  provider: azure_openai
  temperature: 0.2
  timeout: 15s
synthesis:
  provider: azure
  azure_voice: en-US-JennyNeural
nats_info:
  nats_urls:
    - nats://127.0.0.1:4222
`

func envLookup(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func fullEnv() map[string]string {
	return map[string]string{
		EnvAzureOpenAIApiKey:     "model-key",
		EnvAzureOpenAIEndpoint:   "https://example.openai.azure.com",
		EnvAzureOpenAIDeployment: "gpt-4o",
		EnvAzureSpeechKey:        "speech-key",
		EnvAzureSpeechEndpoint:   "https://eastus.api.cognitive.microsoft.com",
		EnvElevenLabsApiKey:      "eleven-key",
	}
}

func TestLoadSettings(t *testing.T) {
	s, err := LoadSettings(envLookup(fullEnv()))
	if err != nil {
		t.Fatal(err)
	}
	if s.ModelDeployment != "gpt-4o" || s.SpeechKey != "speech-key" || s.SynthesisApiKey != "eleven-key" {
		t.Errorf("unexpected settings %+v", s)
	}
	if s.ModelEndpoint != "https://example.openai.azure.com" || s.ModelApiKey != "model-key" {
		t.Errorf("unexpected model settings %+v", s)
	}
}

func TestLoadSettings_ReportsEveryMissing(t *testing.T) {
	env := fullEnv()
	delete(env, EnvAzureSpeechKey)
	delete(env, EnvAzureOpenAIApiKey)
	env[EnvElevenLabsApiKey] = "   "

	s, err := LoadSettings(envLookup(env))
	if s != nil {
		t.Error("expected nil settings")
	}

	var missing *MissingSettingsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingSettingsError, got %v", err)
	}

	expected := []string{EnvAzureOpenAIApiKey, EnvAzureSpeechKey, EnvElevenLabsApiKey}
	if len(missing.Names) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, missing.Names)
	}
	for i, n := range expected {
		if missing.Names[i] != n {
			t.Errorf("position %d: expected %s, got %s", i, n, missing.Names[i])
		}
	}

	report := missing.Report()
	want := MissingSettingsHeader + "\n" +
		"  - AZURE_OPENAI_API_KEY\n" +
		"  - AZURE_SPEECH_KEY\n" +
		"  - ELEVENLABS_API_KEY\n" +
		MissingSettingsFooter
	if report != want {
		t.Errorf("unexpected report:\n%s", report)
	}
}

func TestLoadSettings_NothingSet(t *testing.T) {
	_, err := LoadSettings(envLookup(map[string]string{}))

	var missing *MissingSettingsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingSettingsError, got %v", err)
	}
	if len(missing.Names) != len(RequiredSettings) {
		t.Errorf("expected all %d settings reported, got %d", len(RequiredSettings), len(missing.Names))
	}
}

func TestNew_Defaults(t *testing.T) {
	appCnf, err := New(new(AppConfig))
	if err != nil {
		t.Fatal(err)
	}

	if appCnf.Tutor.Persona != DefaultPersona {
		t.Error("expected default persona")
	}
	if appCnf.Tutor.RecognitionLanguage != "ar-EG" {
		t.Errorf("unexpected language %s", appCnf.Tutor.RecognitionLanguage)
	}
	if len(appCnf.Tutor.ExitPhrases) != 2 || appCnf.Tutor.ExitPhrases[0] != "exit" || appCnf.Tutor.ExitPhrases[1] != "quit" {
		t.Errorf("unexpected exit phrases %v", appCnf.Tutor.ExitPhrases)
	}
	if appCnf.Completion.Provider != CompletionProviderAzureOpenAI {
		t.Errorf("unexpected completion provider %s", appCnf.Completion.Provider)
	}
	if appCnf.Completion.Temperature != 0.7 || appCnf.Completion.MaxTokens != 1000 {
		t.Errorf("unexpected completion settings %+v", appCnf.Completion)
	}
	if appCnf.Synthesis.Provider != SynthesisProviderElevenLabs || appCnf.Synthesis.VoiceId != DefaultElevenLabsVoiceId {
		t.Errorf("unexpected synthesis settings %+v", appCnf.Synthesis)
	}
	if appCnf.NatsInfo.Enabled() {
		t.Error("nats should be disabled by default")
	}
}

func TestNew_FromYaml(t *testing.T) {
	appCnf := new(AppConfig)
	err := yaml.Unmarshal([]byte(testConfigYaml), appCnf)
	if err != nil {
		t.Fatal(err)
	}

	appCnf, err = New(appCnf)
	if err != nil {
		t.Fatal(err)
	}

	if appCnf.Tutor.Persona != "You are a tutor." {
		t.Errorf("unexpected persona %q", appCnf.Tutor.Persona)
	}
	if appCnf.Tutor.MaxExchanges != 4 {
		t.Errorf("unexpected max exchanges %d", appCnf.Tutor.MaxExchanges)
	}
	if appCnf.Completion.Timeout != 15*time.Second {
		t.Errorf("unexpected timeout %s", appCnf.Completion.Timeout)
	}
	if appCnf.Completion.Temperature != 0.2 {
		t.Errorf("unexpected temperature %v", appCnf.Completion.Temperature)
	}
	if appCnf.Synthesis.AzureVoice != "en-US-JennyNeural" {
		t.Errorf("unexpected voice %s", appCnf.Synthesis.AzureVoice)
	}
	if appCnf.LogSettings.LogLevel == nil || *appCnf.LogSettings.LogLevel != "debug" {
		t.Error("expected debug log level")
	}
	if !appCnf.NatsInfo.Enabled() || appCnf.NatsInfo.Subject != DefaultTurnSubject {
		t.Errorf("unexpected nats settings %+v", appCnf.NatsInfo)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(a *AppConfig)
		wantErr bool
	}{
		{name: "defaults", modify: func(a *AppConfig) {}},
		{name: "unknown completion", modify: func(a *AppConfig) { a.Completion.Provider = "foo" }, wantErr: true},
		{name: "google without key", modify: func(a *AppConfig) { a.Completion.Provider = CompletionProviderGoogle }, wantErr: true},
		{name: "google with key", modify: func(a *AppConfig) {
			a.Completion.Provider = CompletionProviderGoogle
			a.GoogleApiKey = "g-key"
		}},
		{name: "unknown synthesis", modify: func(a *AppConfig) { a.Synthesis.Provider = "foo" }, wantErr: true},
		{name: "mp3 output", modify: func(a *AppConfig) { a.Synthesis.OutputFormat = "mp3_44100_128" }, wantErr: true},
		{name: "blank exit phrase", modify: func(a *AppConfig) { a.Tutor.ExitPhrases = []string{"exit", " "} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appCnf, err := New(new(AppConfig))
			if err != nil {
				t.Fatal(err)
			}
			tt.modify(appCnf)
			err = appCnf.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("wantErr %v, got %v", tt.wantErr, err)
			}
		})
	}
}
