package logging

import (
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/DeRuina/timberjack"
	"github.com/mynaparrot/plugnmeet-tutor/pkg/config"
	"github.com/sirupsen/logrus"
)

// NewLogger creates and configures a new logrus.Logger based on the provided configuration.
// Logs go to stderr so they do not interleave with the conversation printed on stdout.
func NewLogger(cfg *config.LogSettings) (*logrus.Logger, error) {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg *config.LogSettings, console io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()

	// 1. Set Log Level
	logLevel := logrus.InfoLevel
	if cfg.LogLevel != nil && *cfg.LogLevel != "" {
		if lv, err := logrus.ParseLevel(strings.ToLower(*cfg.LogLevel)); err == nil {
			logLevel = lv
		}
	}
	logger.SetLevel(logLevel)

	// 2. Setup Output
	output := console
	if cfg.LogFile != "" {
		fileLogger := &timberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
		}
		output = io.MultiWriter(console, fileLogger)
		logrus.RegisterExitHandler(func() {
			_ = fileLogger.Close()
		})
	}
	logger.SetOutput(output)

	// 3. Set Formatter
	textFormatter := &logrus.TextFormatter{
		FullTimestamp: true,
		// Disable the default caller prettyfier to let our custom one take over.
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			return "", ""
		},
	}

	// 4. Wrap with our custom source formatter
	logger.SetFormatter(&SourceFormatter{
		Underlying: textFormatter,
	})

	// 5. Set Caller Reporting
	logger.SetReportCaller(true)

	if cfg.LogFile != "" {
		logger.Debugf("file logging enabled, writing to %s", cfg.LogFile)
	}

	return logger, nil
}
