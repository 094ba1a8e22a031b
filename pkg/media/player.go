package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

var ErrNoPlayer = errors.New("no audio player found, install ffplay, mpv, aplay or paplay")

type playerCommand struct {
	name string
	args []string
}

// every command reads a WAV stream from stdin
var knownPlayers = []playerCommand{
	{name: "ffplay", args: []string{"-nodisp", "-autoexit", "-loglevel", "error", "-i", "-"}},
	{name: "mpv", args: []string{"--no-terminal", "--no-video", "-"}},
	{name: "aplay", args: []string{"-q", "-"}},
	{name: "paplay", args: nil},
}

// Player plays mono PCM through an external command.
type Player struct {
	path   string
	args   []string
	logger *logrus.Entry
}

// NewPlayer resolves name to one of the known players. An empty name picks the
// first one found on PATH. A name that is not known is run with "-" as its
// only argument.
func NewPlayer(name string, logger *logrus.Entry) (*Player, error) {
	logger = logger.WithField("component", "player")

	if name == "" {
		for _, c := range knownPlayers {
			if path, err := exec.LookPath(c.name); err == nil {
				logger.Debugf("using audio player %s", path)
				return &Player{path: path, args: c.args, logger: logger}, nil
			}
		}
		return nil, ErrNoPlayer
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("audio player %q: %w", name, err)
	}
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	for _, c := range knownPlayers {
		if c.name == base {
			return &Player{path: path, args: c.args, logger: logger}, nil
		}
	}
	return &Player{path: path, args: []string{"-"}, logger: logger}, nil
}

func (p *Player) String() string {
	return p.path
}

// Play streams PCM from r to the player and returns once playback has ended.
func (p *Player) Play(ctx context.Context, r io.Reader, sampleRate int) error {
	cmd := exec.CommandContext(ctx, p.path, p.args...)
	stderr := new(bytes.Buffer)
	cmd.Stderr = stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", p.path, err)
	}

	copyErr := p.feed(stdin, r, sampleRate)
	waitErr := cmd.Wait()
	if waitErr != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", p.path, waitErr, msg)
		}
		return fmt.Errorf("%s: %w", p.path, waitErr)
	}
	return copyErr
}

func (p *Player) feed(stdin io.WriteCloser, r io.Reader, sampleRate int) error {
	defer stdin.Close()

	w, err := NewWAVWriter(stdin, uint32(sampleRate), 1)
	if err != nil {
		return err
	}
	n, err := io.Copy(w, r)
	if err != nil {
		return fmt.Errorf("streaming audio: %w", err)
	}
	p.logger.WithField("bytes", n).Debugln("audio handed to player")
	return w.Close()
}
