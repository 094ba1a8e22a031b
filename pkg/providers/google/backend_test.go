package google

import (
	"context"
	"io"
	"testing"

	"github.com/mynaparrot/plugnmeet-tutor/pkg/dialogue"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

func TestToGenaiContent(t *testing.T) {
	system, contents := toGenaiContent([]dialogue.Turn{
		{Role: dialogue.RoleSystem, Text: "You are a tutor."},
		{Role: dialogue.RoleUser, Text: "A"},
		{Role: dialogue.RoleAssistant, Text: "reply to A"},
		{Role: dialogue.RoleUser, Text: "B"},
	})

	if system == nil || len(system.Parts) != 1 || system.Parts[0].Text != "You are a tutor." {
		t.Fatalf("unexpected system instruction %+v", system)
	}

	want := []struct {
		role string
		text string
	}{
		{role: string(genai.RoleUser), text: "A"},
		{role: string(genai.RoleModel), text: "reply to A"},
		{role: string(genai.RoleUser), text: "B"},
	}
	if len(contents) != len(want) {
		t.Fatalf("expected %d contents, got %d", len(want), len(contents))
	}
	for i, w := range want {
		if contents[i].Role != w.role || contents[i].Parts[0].Text != w.text {
			t.Errorf("content %d: expected %s %q, got %s %q", i, w.role, w.text, contents[i].Role, contents[i].Parts[0].Text)
		}
	}
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "Hi "}, {Text: "there!"}}}},
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "ignored"}}}},
		},
	}
	if got := responseText(resp); got != "Hi there!" {
		t.Errorf("unexpected text %q", got)
	}
	if got := responseText(&genai.GenerateContentResponse{}); got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
}

func TestNewBackend_RequiresKey(t *testing.T) {
	l := logrus.New()
	l.SetOutput(io.Discard)
	if _, err := NewBackend(context.Background(), Options{Model: "gemini-2.0-flash"}, logrus.NewEntry(l)); err == nil {
		t.Error("expected an error without api key")
	}
}
