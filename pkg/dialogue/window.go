package dialogue

// Window chooses which Turns of the stored history are sent to the
// completion backend. It never changes the stored history itself.
// The returned slice must keep the system Turn first.
type Window func(turns []Turn) []Turn

// KeepAll sends the whole conversation.
func KeepAll(turns []Turn) []Turn {
	return turns
}

// KeepLastExchanges sends the system Turn plus the last k user/assistant
// exchanges and the pending user Turn. k <= 0 behaves like KeepAll.
func KeepLastExchanges(k int) Window {
	if k <= 0 {
		return KeepAll
	}

	return func(turns []Turn) []Turn {
		if len(turns) == 0 {
			return turns
		}
		keep := 2 * k
		if turns[len(turns)-1].Role == RoleUser {
			// the pending user Turn is always sent
			keep++
		}
		rest := turns[1:]
		if len(rest) <= keep {
			return turns
		}

		out := make([]Turn, 0, keep+1)
		out = append(out, turns[0])
		return append(out, rest[len(rest)-keep:]...)
	}
}
