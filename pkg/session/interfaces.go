package session

import (
	"context"
	"errors"

	"github.com/mynaparrot/plugnmeet-tutor/pkg/dialogue"
)

var (
	ErrNoSpeechDetected    = errors.New("no speech could be recognized")
	ErrRecognitionCanceled = errors.New("speech recognition was canceled")
	ErrSynthesisFailure    = errors.New("speech synthesis failed")
	ErrSessionTerminated   = errors.New("session already terminated")
)

// SpeechInput captures one utterance per call. Implementations return
// ErrNoSpeechDetected or an error wrapping ErrRecognitionCanceled when nothing
// usable was heard.
type SpeechInput interface {
	Listen(ctx context.Context) (string, error)
}

// SpeechOutput speaks text and blocks until playback has finished.
// Errors should wrap ErrSynthesisFailure.
type SpeechOutput interface {
	Speak(ctx context.Context, text string) error
}

// TurnObserver is told about every exchange once it has been recorded.
type TurnObserver interface {
	OnExchange(ctx context.Context, user, assistant dialogue.Turn) error
}
