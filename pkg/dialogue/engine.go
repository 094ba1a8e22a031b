package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyUtterance = errors.New("user text must not be empty")
	ErrEmptyReply     = errors.New("completion backend returned an empty reply")
)

// CompletionBackend produces the assistant reply for a conversation.
// The last Turn of conversation is the new user Turn. Complete blocks until
// the whole reply is available.
type CompletionBackend interface {
	Complete(ctx context.Context, conversation []Turn) (string, error)
}

// CompletionFailure is returned by Advance when the backend could not answer.
// The history returned alongside it is the one that was passed in.
type CompletionFailure struct {
	Cause error
}

func (e *CompletionFailure) Error() string {
	return fmt.Sprintf("completion failed: %v", e.Cause)
}

func (e *CompletionFailure) Unwrap() error {
	return e.Cause
}

// Engine binds a completion backend and the Window used to build each request.
// It holds no conversation state.
type Engine struct {
	backend CompletionBackend
	window  Window
}

func NewEngine(backend CompletionBackend, window Window) *Engine {
	if window == nil {
		window = KeepAll
	}
	return &Engine{
		backend: backend,
		window:  window,
	}
}

// Advance records one exchange. See the package level Advance.
func (e *Engine) Advance(ctx context.Context, history History, userText string) (string, History, error) {
	return advance(ctx, history, userText, e.backend, e.window)
}

// Advance sends history plus userText to backend and returns the reply and a
// new History with the user Turn and the assistant Turn appended, in that order.
// On error the input history is returned unchanged.
func Advance(ctx context.Context, history History, userText string, backend CompletionBackend) (string, History, error) {
	return advance(ctx, history, userText, backend, KeepAll)
}

func advance(ctx context.Context, history History, userText string, backend CompletionBackend, window Window) (string, History, error) {
	if strings.TrimSpace(userText) == "" {
		return "", history, ErrEmptyUtterance
	}

	userTurn := Turn{Role: RoleUser, Text: userText}
	conversation := history.withTurns(userTurn).turns

	reply, err := backend.Complete(ctx, window(conversation))
	if err != nil {
		return "", history, &CompletionFailure{Cause: err}
	}
	if strings.TrimSpace(reply) == "" {
		return "", history, &CompletionFailure{Cause: ErrEmptyReply}
	}

	return reply, history.withTurns(userTurn, Turn{Role: RoleAssistant, Text: reply}), nil
}
