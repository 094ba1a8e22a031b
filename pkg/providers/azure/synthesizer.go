package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Microsoft/cognitive-services-speech-sdk-go/audio"
	"github.com/Microsoft/cognitive-services-speech-sdk-go/common"
	"github.com/Microsoft/cognitive-services-speech-sdk-go/speech"
	"github.com/mynaparrot/plugnmeet-tutor/pkg/session"
	"github.com/sirupsen/logrus"
)

// Synthesizer speaks through the default speaker with an Azure neural voice.
type Synthesizer struct {
	conf        *speech.SpeechConfig
	audioConf   *audio.AudioConfig
	synthesizer *speech.SpeechSynthesizer
	log         *logrus.Entry
}

func NewSynthesizer(key, endpoint, language, voice string, log *logrus.Entry) (*Synthesizer, error) {
	if key == "" || endpoint == "" {
		return nil, fmt.Errorf("azure speech requires a subscription key and an endpoint")
	}

	conf, err := newSpeechConfig(key, endpoint)
	if err != nil {
		return nil, err
	}
	if err = conf.SetSpeechSynthesisLanguage(language); err != nil {
		conf.Close()
		return nil, fmt.Errorf("failed to set synthesis language: %w", err)
	}
	if voice != "" {
		if err = conf.SetSpeechSynthesisVoiceName(voice); err != nil {
			conf.Close()
			return nil, fmt.Errorf("failed to set synthesis voice: %w", err)
		}
	}

	audioConf, err := audio.NewAudioConfigFromDefaultSpeakerOutput()
	if err != nil {
		conf.Close()
		return nil, fmt.Errorf("could not open default speaker: %w", err)
	}

	synthesizer, err := speech.NewSpeechSynthesizerFromConfig(conf, audioConf)
	if err != nil {
		audioConf.Close()
		conf.Close()
		return nil, fmt.Errorf("failed to create speech synthesizer: %w", err)
	}

	return &Synthesizer{
		conf:        conf,
		audioConf:   audioConf,
		synthesizer: synthesizer,
		log:         log.WithFields(logrus.Fields{"provider": "azure", "service": "synthesizer", "voice": voice}),
	}, nil
}

// Speak implements session.SpeechOutput. It returns when the audio has been played.
func (s *Synthesizer) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	task := s.synthesizer.SpeakTextAsync(text)
	var outcome speech.SpeechSynthesisOutcome
	select {
	case outcome = <-task:
	case <-ctx.Done():
		go func() {
			o := <-task
			o.Close()
		}()
		return fmt.Errorf("%w: %w", session.ErrSynthesisFailure, ctx.Err())
	}
	defer outcome.Close()

	if outcome.Error != nil {
		return fmt.Errorf("%w: %w", session.ErrSynthesisFailure, outcome.Error)
	}
	if outcome.Result.Reason != common.SynthesizingAudioCompleted {
		details, err := speech.NewCancellationDetailsFromSpeechSynthesisResult(outcome.Result)
		if err != nil {
			return fmt.Errorf("%w: reason=%s", session.ErrSynthesisFailure, outcome.Result.Reason.String())
		}
		return fmt.Errorf("%w: reason=%s, details=%s", session.ErrSynthesisFailure, outcome.Result.Reason.String(), details.ErrorDetails)
	}

	s.log.Debugln("utterance played")
	return nil
}

func (s *Synthesizer) Close() {
	s.synthesizer.Close()
	s.audioConf.Close()
	s.conf.Close()
}
