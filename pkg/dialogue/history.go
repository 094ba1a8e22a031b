// Package dialogue keeps the state of one tutoring conversation and advances
// it one exchange at a time.
package dialogue

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged utterance. Text is kept exactly as received.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// History is the ordered record of a conversation. The first Turn is always
// the system persona. History is a value: operations that extend it return a
// new History and leave the receiver untouched.
type History struct {
	turns []Turn
}

// Initialize starts a conversation with persona as its only Turn.
func Initialize(persona string) History {
	return History{turns: []Turn{{Role: RoleSystem, Text: persona}}}
}

// Turns returns a copy of every Turn in order.
func (h History) Turns() []Turn {
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

func (h History) Len() int {
	return len(h.turns)
}

// Persona returns the text of the system Turn, or "" for a zero History.
func (h History) Persona() string {
	if len(h.turns) == 0 {
		return ""
	}
	return h.turns[0].Text
}

// Last returns the most recent Turn.
func (h History) Last() (Turn, bool) {
	if len(h.turns) == 0 {
		return Turn{}, false
	}
	return h.turns[len(h.turns)-1], true
}

// Exchanges returns the number of completed user/assistant pairs.
func (h History) Exchanges() int {
	if len(h.turns) == 0 {
		return 0
	}
	return (len(h.turns) - 1) / 2
}

func (h History) Equal(o History) bool {
	if len(h.turns) != len(o.turns) {
		return false
	}
	for i := range h.turns {
		if h.turns[i] != o.turns[i] {
			return false
		}
	}
	return true
}

// withTurns returns a new History holding h followed by extra.
// The backing array is never shared with h.
func (h History) withTurns(extra ...Turn) History {
	turns := make([]Turn, len(h.turns), len(h.turns)+len(extra))
	copy(turns, h.turns)
	return History{turns: append(turns, extra...)}
}
