package dialogue

import "testing"

func TestKeepLastExchanges(t *testing.T) {
	sys := Turn{Role: RoleSystem, Text: "P"}
	u := func(s string) Turn { return Turn{Role: RoleUser, Text: s} }
	a := func(s string) Turn { return Turn{Role: RoleAssistant, Text: s} }

	conversation := []Turn{sys, u("1"), a("1"), u("2"), a("2"), u("3")}

	tests := []struct {
		name string
		k    int
		want []Turn
	}{
		{name: "zero keeps all", k: 0, want: conversation},
		{name: "negative keeps all", k: -3, want: conversation},
		{name: "one", k: 1, want: []Turn{sys, u("2"), a("2"), u("3")}},
		{name: "two", k: 2, want: conversation},
		{name: "more than available", k: 10, want: conversation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTurns(t, KeepLastExchanges(tt.k)(conversation), tt.want)
		})
	}
}

func TestKeepLastExchanges_StoredHistory(t *testing.T) {
	sys := Turn{Role: RoleSystem, Text: "P"}
	conversation := []Turn{
		sys,
		{Role: RoleUser, Text: "1"}, {Role: RoleAssistant, Text: "1"},
		{Role: RoleUser, Text: "2"}, {Role: RoleAssistant, Text: "2"},
	}

	assertTurns(t, KeepLastExchanges(1)(conversation), []Turn{sys, conversation[3], conversation[4]})
}

func TestKeepLastExchanges_Empty(t *testing.T) {
	if got := KeepLastExchanges(2)(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
}
