package session

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/mynaparrot/plugnmeet-tutor/pkg/dialogue"
	"github.com/sirupsen/logrus"
)

var DefaultExitPhrases = []string{"exit", "quit"}

type Options struct {
	Persona     string
	ExitPhrases []string
	// Observer is optional.
	Observer TurnObserver
	// Console receives the learner facing notices. nil discards them.
	Console io.Writer
}

// Loop runs one tutoring session: listen, think, speak, repeat.
// A Loop is not safe for concurrent use.
type Loop struct {
	input    SpeechInput
	output   SpeechOutput
	engine   *dialogue.Engine
	observer TurnObserver
	phrases  []string
	console  *Console
	logger   *logrus.Entry

	history dialogue.History
	state   State
	pending string
	reply   string
}

func NewLoop(input SpeechInput, output SpeechOutput, engine *dialogue.Engine, opts Options, logger *logrus.Entry) *Loop {
	phrases := opts.ExitPhrases
	if len(phrases) == 0 {
		phrases = DefaultExitPhrases
	}
	out := opts.Console
	if out == nil {
		out = io.Discard
	}

	return &Loop{
		input:    input,
		output:   output,
		engine:   engine,
		observer: opts.Observer,
		phrases:  phrases,
		console:  NewConsole(out),
		logger:   logger.WithField("component", "session"),
		history:  dialogue.Initialize(opts.Persona),
		state:    StateListening,
	}
}

// Run drives the loop until an exit phrase is heard or ctx is cancelled.
// Both end the session normally and return nil. Collaborator errors are
// reported and the loop keeps listening.
func (l *Loop) Run(ctx context.Context) error {
	if l.state == StateTerminated {
		return ErrSessionTerminated
	}

	l.console.Welcome(l.phrases)
	l.logger.Infoln("session started")

	for {
		if ctx.Err() != nil {
			l.logger.WithField("state", l.state.String()).Infoln("session interrupted")
			l.state = StateTerminated
			l.console.Goodbye()
			break
		}

		l.step(ctx)
		if l.state == StateTerminated {
			break
		}
	}

	l.logger.WithField("exchanges", l.history.Exchanges()).Infoln("session ended")
	return nil
}

// History returns the conversation recorded so far.
func (l *Loop) History() dialogue.History {
	return l.history
}

func (l *Loop) State() State {
	return l.state
}

func (l *Loop) step(ctx context.Context) {
	switch l.state {
	case StateListening:
		l.listen(ctx)
	case StateThinking:
		l.think(ctx)
	case StateSpeaking:
		l.speak(ctx)
	}
}

func (l *Loop) listen(ctx context.Context) {
	l.console.Listening()

	text, err := l.input.Listen(ctx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		log := l.logger.WithError(err)
		switch {
		case errors.Is(err, ErrNoSpeechDetected):
			log.Debugln("no speech recognized")
		case errors.Is(err, ErrRecognitionCanceled):
			log.Warnln("speech recognition canceled")
		default:
			log.Errorln("speech recognition failed")
		}
		l.console.NothingHeard()
		return
	}

	if strings.TrimSpace(text) == "" {
		l.console.NothingHeard()
		return
	}
	if IsExitPhrase(text, l.phrases) {
		l.console.Goodbye()
		l.state = StateTerminated
		return
	}

	l.console.Heard(text)
	l.pending = text
	l.state = StateThinking
}

func (l *Loop) think(ctx context.Context) {
	l.console.Thinking()

	reply, next, err := l.engine.Advance(ctx, l.history, l.pending)
	l.pending = ""
	if err != nil {
		l.state = StateListening
		if ctx.Err() != nil {
			return
		}
		var cf *dialogue.CompletionFailure
		if errors.As(err, &cf) {
			l.logger.WithError(cf.Cause).Errorln("completion backend failed")
		} else {
			l.logger.WithError(err).Errorln("could not advance dialogue")
		}
		l.console.CompletionFailed()
		return
	}

	l.history = next
	l.reply = reply
	l.state = StateSpeaking
}

func (l *Loop) notify(ctx context.Context) {
	if l.observer == nil {
		return
	}
	turns := l.history.Turns()
	user, assistant := turns[len(turns)-2], turns[len(turns)-1]
	if err := l.observer.OnExchange(ctx, user, assistant); err != nil {
		l.logger.WithError(err).Warnln("turn observer failed")
	}
}

func (l *Loop) speak(ctx context.Context) {
	l.console.Reply(l.reply)

	// the current utterance is finished even when the session is interrupted
	ctx = context.WithoutCancel(ctx)
	l.notify(ctx)
	err := l.output.Speak(ctx, l.reply)
	l.reply = ""
	l.state = StateListening
	if err != nil {
		l.logger.WithError(err).Errorln("speech synthesis failed")
		l.console.SynthesisFailed()
	}
}
