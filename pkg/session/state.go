package session

import "strings"

type State int

const (
	StateListening State = iota
	StateThinking
	StateSpeaking
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateListening:
		return "LISTENING"
	case StateThinking:
		return "THINKING"
	case StateSpeaking:
		return "SPEAKING"
	case StateTerminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

// IsExitPhrase reports whether text, once trimmed, equals one of phrases
// ignoring case. "exit now" is not an exit phrase.
func IsExitPhrase(text string, phrases []string) bool {
	text = strings.TrimSpace(text)
	for _, p := range phrases {
		if strings.EqualFold(text, strings.TrimSpace(p)) {
			return true
		}
	}
	return false
}
