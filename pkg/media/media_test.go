package media

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestWAVWriter_Seekable(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w, err := NewWAVWriter(f, 24000, 1)
	if err != nil {
		t.Fatal(err)
	}
	pcm := make([]byte, 480)
	if _, err := w.Write(pcm); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != wavHeaderSize+480 {
		t.Fatalf("unexpected file size %d", len(data))
	}
	if string(data[:4]) != "RIFF" || string(data[8:12]) != "WAVE" || string(data[36:40]) != "data" {
		t.Error("invalid wav markers")
	}
	if got := binary.LittleEndian.Uint32(data[4:8]); got != 480+36 {
		t.Errorf("expected riff size %d, got %d", 480+36, got)
	}
	if got := binary.LittleEndian.Uint32(data[40:44]); got != 480 {
		t.Errorf("expected data size 480, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(data[24:28]); got != 24000 {
		t.Errorf("expected sample rate 24000, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(data[28:32]); got != 48000 {
		t.Errorf("expected byte rate 48000, got %d", got)
	}
}

func TestWAVWriter_Streaming(t *testing.T) {
	buf := new(bytes.Buffer)
	w, err := NewWAVWriter(buf, 16000, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	data := buf.Bytes()
	if len(data) != wavHeaderSize+4 {
		t.Fatalf("unexpected length %d", len(data))
	}
	if got := binary.LittleEndian.Uint32(data[40:44]); got != streamingSize {
		t.Errorf("expected streaming data size, got %#x", got)
	}
	if w.DataSize() != 4 {
		t.Errorf("expected 4 data bytes, got %d", w.DataSize())
	}
	if _, err := w.Write([]byte{5}); err != ErrWAVClosed {
		t.Errorf("expected ErrWAVClosed, got %v", err)
	}
}

func TestPlayer_Play(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	out := filepath.Join(t.TempDir(), "played.wav")
	p := &Player{path: "sh", args: []string{"-c", "cat > " + out}, logger: testLogger()}

	pcm := bytes.Repeat([]byte{0x10, 0x00}, 100)
	if err := p.Play(context.Background(), bytes.NewReader(pcm), 22050); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != wavHeaderSize+len(pcm) {
		t.Fatalf("unexpected length %d", len(data))
	}
	if !bytes.Equal(data[wavHeaderSize:], pcm) {
		t.Error("pcm payload was altered")
	}
}

func TestPlayer_Failure(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	p := &Player{path: "sh", args: []string{"-c", "cat > /dev/null; echo broken speaker >&2; exit 3"}, logger: testLogger()}

	err := p.Play(context.Background(), strings.NewReader("abcd"), 16000)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "broken speaker") {
		t.Errorf("expected stderr in error, got %v", err)
	}
}

func TestNewPlayer_Unknown(t *testing.T) {
	if _, err := NewPlayer("definitely-not-a-player-binary", testLogger()); err == nil {
		t.Error("expected an error for a missing player")
	}
}
