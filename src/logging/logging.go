package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Recorder is the sink the simulation core writes its trace to.
type Recorder interface {
	Record(msg string)
}

type slogRecorder struct {
	logger *slog.Logger
}

func (r slogRecorder) Record(msg string) {
	r.logger.Debug(msg)
}

// NewRecorder records every message at debug level on logger.
func NewRecorder(logger *slog.Logger) Recorder {
	return slogRecorder{logger: logger}
}

type discard struct{}

func (discard) Record(string) {}

func Discard() Recorder {
	return discard{}
}

// InitLogger sets the default slog logger to write to the file at path with compact time and file:line source.
// The returned closer closes the log file.
func InitLogger(path string, debug bool) (io.Closer, error) {
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(newHandler(logFile, level)))
	return logFile, nil
}

func newHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format("15:04:05"))
				}
			}
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					file := source.File
					if lastSlash := strings.LastIndexByte(file, '/'); lastSlash >= 0 {
						file = file[lastSlash+1:]
					}
					a.Value = slog.StringValue(fmt.Sprintf("%s:%d", file, source.Line))
				}
			}
			return a
		},
	})
}
