package session

import (
	"fmt"
	"io"
	"strings"
)

const separator = "=================================================="

// Console prints the conversation and the loop notices for the learner.
// It is separate from logging, which goes to the logger's output.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func (c *Console) Welcome(exitPhrases []string) {
	quoted := make([]string, len(exitPhrases))
	for i, p := range exitPhrases {
		quoted[i] = "'" + p + "'"
	}

	c.printf("\n%s\n", separator)
	c.printf("Welcome to your language tutor chat!\n")
	c.printf("%s\n", separator)
	c.printf("Say something in Arabic to begin the conversation.\n")
	c.printf("The system will automatically listen for your voice input.\n")
	c.printf("Say %s to end the conversation.\n\n", strings.Join(quoted, " or "))
}

func (c *Console) Listening() {
	c.printf("\nListening for your voice input...\n")
}

func (c *Console) NothingHeard() {
	c.printf("\nNo speech detected. Please try again.\n")
}

func (c *Console) Heard(text string) {
	c.printf("\nYou: %s\n", text)
}

func (c *Console) Thinking() {
	c.printf("\nLanguage tutor is thinking...\n")
}

func (c *Console) Reply(text string) {
	c.printf("\nLanguage tutor: %s\n", text)
}

func (c *Console) CompletionFailed() {
	c.printf("\nSorry, the tutor could not answer right now. Please try again.\n")
}

func (c *Console) SynthesisFailed() {
	c.printf("\nSorry, the reply could not be played. You can read it above.\n")
}

func (c *Console) Goodbye() {
	c.printf("\nThank you for chatting! Goodbye.\n")
}
