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

// Recognizer captures single utterances from the default microphone.
type Recognizer struct {
	conf       *speech.SpeechConfig
	audioConf  *audio.AudioConfig
	recognizer *speech.SpeechRecognizer
	log        *logrus.Entry
}

func NewRecognizer(key, endpoint, language string, log *logrus.Entry) (*Recognizer, error) {
	if key == "" || endpoint == "" {
		return nil, fmt.Errorf("azure speech requires a subscription key and an endpoint")
	}

	conf, err := newSpeechConfig(key, endpoint)
	if err != nil {
		return nil, err
	}
	if err = conf.SetSpeechRecognitionLanguage(language); err != nil {
		conf.Close()
		return nil, fmt.Errorf("failed to set recognition language: %w", err)
	}

	audioConf, err := audio.NewAudioConfigFromDefaultMicrophoneInput()
	if err != nil {
		conf.Close()
		return nil, fmt.Errorf("could not open default microphone: %w", err)
	}

	recognizer, err := speech.NewSpeechRecognizerFromConfig(conf, audioConf)
	if err != nil {
		audioConf.Close()
		conf.Close()
		return nil, fmt.Errorf("failed to create speech recognizer: %w", err)
	}

	return &Recognizer{
		conf:       conf,
		audioConf:  audioConf,
		recognizer: recognizer,
		log:        log.WithFields(logrus.Fields{"provider": "azure", "service": "recognizer", "language": language}),
	}, nil
}

// Listen implements session.SpeechInput with one RecognizeOnceAsync call.
func (r *Recognizer) Listen(ctx context.Context) (string, error) {
	task := r.recognizer.RecognizeOnceAsync()

	var outcome speech.SpeechRecognitionOutcome
	select {
	case outcome = <-task:
	case <-ctx.Done():
		// the SDK still delivers the outcome, release it once it arrives
		go func() {
			o := <-task
			o.Close()
		}()
		return "", ctx.Err()
	}
	defer outcome.Close()

	if outcome.Error != nil {
		return "", fmt.Errorf("%w: %w", session.ErrRecognitionCanceled, outcome.Error)
	}

	switch outcome.Result.Reason {
	case common.RecognizedSpeech:
		text := strings.TrimSpace(outcome.Result.Text)
		if text == "" {
			return "", session.ErrNoSpeechDetected
		}
		return text, nil
	case common.NoMatch:
		return "", session.ErrNoSpeechDetected
	case common.Canceled:
		details := canceledDetails(outcome.Result.Properties)
		r.log.WithField("details", details).Debugln("recognition canceled")
		return "", fmt.Errorf("%w: %s", session.ErrRecognitionCanceled, details)
	default:
		return "", fmt.Errorf("%w: unexpected reason %s", session.ErrRecognitionCanceled, outcome.Result.Reason.String())
	}
}

func (r *Recognizer) Close() {
	r.recognizer.Close()
	r.audioConf.Close()
	r.conf.Close()
}

// canceledDetails reads the cancellation text the service stored on the result.
func canceledDetails(props *common.PropertyCollection) string {
	if props == nil {
		return "no details"
	}
	if details := props.GetProperty(common.CancellationDetailsReasonDetailedText, ""); details != "" {
		return details
	}
	if details := props.GetProperty(common.SpeechServiceResponseJSONErrorDetails, ""); details != "" {
		return details
	}
	return "no details"
}

func newSpeechConfig(key, endpoint string) (*speech.SpeechConfig, error) {
	conf, err := speech.NewSpeechConfigFromEndpointWithSubscription(endpoint, key)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure speech config: %w", err)
	}
	return conf, nil
}
