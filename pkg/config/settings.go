package config

import (
	"fmt"
	"strings"
)

// Settings holds the credentials and endpoints every session needs.
// It is created once at startup and only read afterwards.
type Settings struct {
	ModelEndpoint   string
	ModelApiKey     string
	ModelDeployment string
	SpeechKey       string
	SpeechEndpoint  string
	SynthesisApiKey string
}

// RequiredSettings lists the environment variables in the order they are reported.
var RequiredSettings = []string{
	EnvAzureOpenAIApiKey,
	EnvAzureOpenAIEndpoint,
	EnvAzureOpenAIDeployment,
	EnvAzureSpeechKey,
	EnvAzureSpeechEndpoint,
	EnvElevenLabsApiKey,
}

// MissingSettingsError reports every required setting that was absent.
type MissingSettingsError struct {
	Names []string
}

func (e *MissingSettingsError) Error() string {
	return fmt.Sprintf("missing required settings: %s", strings.Join(e.Names, ", "))
}

// Report renders the message shown to the user before the process exits.
func (e *MissingSettingsError) Report() string {
	var b strings.Builder
	b.WriteString(MissingSettingsHeader)
	b.WriteString("\n")
	for _, n := range e.Names {
		b.WriteString("  - ")
		b.WriteString(n)
		b.WriteString("\n")
	}
	b.WriteString(MissingSettingsFooter)
	return b.String()
}

// LoadSettings reads all required settings through lookup, normally os.LookupEnv.
// Blank values count as missing.
func LoadSettings(lookup func(string) (string, bool)) (*Settings, error) {
	values := make(map[string]string, len(RequiredSettings))
	var missing []string

	for _, name := range RequiredSettings {
		v, ok := lookup(name)
		v = strings.TrimSpace(v)
		if !ok || v == "" {
			missing = append(missing, name)
			continue
		}
		values[name] = v
	}

	if len(missing) > 0 {
		return nil, &MissingSettingsError{Names: missing}
	}

	return &Settings{
		ModelEndpoint:   values[EnvAzureOpenAIEndpoint],
		ModelApiKey:     values[EnvAzureOpenAIApiKey],
		ModelDeployment: values[EnvAzureOpenAIDeployment],
		SpeechKey:       values[EnvAzureSpeechKey],
		SpeechEndpoint:  values[EnvAzureSpeechEndpoint],
		SynthesisApiKey: values[EnvElevenLabsApiKey],
	}, nil
}
