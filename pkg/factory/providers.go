package factory

import (
	"context"
	"fmt"
	"os"

	"github.com/mynaparrot/plugnmeet-tutor/pkg/config"
	"github.com/mynaparrot/plugnmeet-tutor/pkg/dialogue"
	"github.com/mynaparrot/plugnmeet-tutor/pkg/media"
	"github.com/mynaparrot/plugnmeet-tutor/pkg/providers/azure"
	"github.com/mynaparrot/plugnmeet-tutor/pkg/providers/elevenlabs"
	"github.com/mynaparrot/plugnmeet-tutor/pkg/providers/google"
	"github.com/mynaparrot/plugnmeet-tutor/pkg/providers/openai"
	natsservice "github.com/mynaparrot/plugnmeet-tutor/pkg/services/nats"
	"github.com/mynaparrot/plugnmeet-tutor/pkg/session"
	"github.com/sirupsen/logrus"
)

func provideLogger(app *config.AppConfig) *logrus.Entry {
	return logrus.NewEntry(app.Logger)
}

func provideSpeechInput(app *config.AppConfig, log *logrus.Entry) (session.SpeechInput, func(), error) {
	r, err := azure.NewRecognizer(app.Settings.SpeechKey, app.Settings.SpeechEndpoint, app.Tutor.RecognitionLanguage, log)
	if err != nil {
		return nil, nil, err
	}
	return r, r.Close, nil
}

func provideSpeechOutput(app *config.AppConfig, log *logrus.Entry) (session.SpeechOutput, func(), error) {
	switch app.Synthesis.Provider {
	case config.SynthesisProviderAzure:
		s, err := azure.NewSynthesizer(app.Settings.SpeechKey, app.Settings.SpeechEndpoint, app.Tutor.RecognitionLanguage, app.Synthesis.AzureVoice, log)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.SynthesisProviderElevenLabs:
		player, err := media.NewPlayer(app.Synthesis.Player, log)
		if err != nil {
			return nil, nil, err
		}
		s, err := elevenlabs.NewSynthesizer(elevenlabs.Options{
			ApiKey:       app.Settings.SynthesisApiKey,
			VoiceID:      app.Synthesis.VoiceId,
			ModelID:      app.Synthesis.ModelId,
			OutputFormat: app.Synthesis.OutputFormat,
		}, player, log)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown synthesis provider: %s", app.Synthesis.Provider)
	}
}

func provideCompletionBackend(ctx context.Context, app *config.AppConfig, log *logrus.Entry) (dialogue.CompletionBackend, error) {
	c := app.Completion
	switch c.Provider {
	case config.CompletionProviderGoogle:
		return google.NewBackend(ctx, google.Options{
			ApiKey:      app.GoogleApiKey,
			Model:       c.GoogleModel,
			Temperature: c.Temperature,
			MaxTokens:   c.MaxTokens,
			Timeout:     c.Timeout,
		}, log)
	case config.CompletionProviderAzureOpenAI:
		return openai.NewBackend(openai.Options{
			Endpoint:    app.Settings.ModelEndpoint,
			ApiKey:      app.Settings.ModelApiKey,
			ApiVersion:  c.ApiVersion,
			Deployment:  app.Settings.ModelDeployment,
			Temperature: c.Temperature,
			MaxTokens:   c.MaxTokens,
			Timeout:     c.Timeout,
		}, log)
	default:
		return nil, fmt.Errorf("unknown completion provider: %s", c.Provider)
	}
}

func provideWindow(app *config.AppConfig) dialogue.Window {
	return dialogue.KeepLastExchanges(app.Tutor.MaxExchanges)
}

// provideTurnObserver returns a nil interface when NATS is not connected.
func provideTurnObserver(app *config.AppConfig, log *logrus.Entry) session.TurnObserver {
	if app.NatsConn == nil {
		return nil
	}
	p := natsservice.NewTurnPublisher(app.NatsConn, app.NatsInfo.Subject, log)
	log.WithField("subject", p.Subject()).Infoln("publishing exchanges to NATS")
	return p
}

func provideLoop(input session.SpeechInput, output session.SpeechOutput, engine *dialogue.Engine, observer session.TurnObserver, app *config.AppConfig, log *logrus.Entry) *session.Loop {
	return session.NewLoop(input, output, engine, session.Options{
		Persona:     app.Tutor.Persona,
		ExitPhrases: app.Tutor.ExitPhrases,
		Observer:    observer,
		Console:     os.Stdout,
	}, log)
}
