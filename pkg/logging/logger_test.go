package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mynaparrot/plugnmeet-tutor/pkg/config"
	"github.com/sirupsen/logrus"
)

func TestNewLogger_Level(t *testing.T) {
	level := "DEBUG"
	logger, err := NewLogger(&config.LogSettings{LogLevel: &level})
	if err != nil {
		t.Fatal(err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug level, got %s", logger.GetLevel())
	}

	invalid := "chatty"
	logger, err = NewLogger(&config.LogSettings{LogLevel: &invalid})
	if err != nil {
		t.Fatal(err)
	}
	if logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("expected fallback to info level, got %s", logger.GetLevel())
	}
}

func TestNewLogger_SourceField(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&config.LogSettings{}, &buf)
	if err != nil {
		t.Fatal(err)
	}

	logger.WithField("component", "test").Info("hello")

	out := buf.String()
	if !strings.Contains(out, `x_file_source="logger_test.go:`) {
		t.Errorf("expected source location in %q", out)
	}
	if !strings.Contains(out, "component=test") {
		t.Errorf("expected component field in %q", out)
	}
}

func TestNewLogger_File(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "tutor.log")

	var buf bytes.Buffer
	logger, err := newLogger(&config.LogSettings{LogFile: logFile, MaxSize: 1}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	logger.Warn("written to both")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "written to both") {
		t.Errorf("expected message in log file, got %q", string(data))
	}
	if !strings.Contains(buf.String(), "written to both") {
		t.Errorf("expected message on console, got %q", buf.String())
	}
}
