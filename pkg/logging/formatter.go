package logging

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const sourceField = "x_file_source"

// SourceFormatter adds the short caller location (file.go:line) as a field
// and leaves the rendering to Underlying.
type SourceFormatter struct {
	Underlying logrus.Formatter
}

// Format renders a single log entry.
func (f *SourceFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry.HasCaller() {
		fileName := filepath.Base(entry.Caller.File)
		entry.Data[sourceField] = fmt.Sprintf("%s:%d", fileName, entry.Caller.Line)
	}

	return f.Underlying.Format(entry)
}
