package logging

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, slog.LevelDebug))
	logger.Info("hello", "floor", 2)

	out := buf.String()
	if !regexp.MustCompile(`time=\d{2}:\d{2}:\d{2} `).MatchString(out) {
		t.Errorf("time not compact: %q", out)
	}
	if !strings.Contains(out, "source=logging_test.go:") {
		t.Errorf("source not shortened: %q", out)
	}
	if !strings.Contains(out, "floor=2") {
		t.Errorf("attribute missing: %q", out)
	}
}

func TestRecorder(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(slog.New(newHandler(&buf, slog.LevelDebug)))
	rec.Record("car 0: reset")
	if !strings.Contains(buf.String(), `msg="car 0: reset"`) {
		t.Errorf("record missing: %q", buf.String())
	}

	buf.Reset()
	rec = NewRecorder(slog.New(newHandler(&buf, slog.LevelInfo)))
	rec.Record("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug record written at info level: %q", buf.String())
	}

	Discard().Record("nothing")
}

func TestInitLogger(t *testing.T) {
	defaultLogger := slog.Default()
	defer slog.SetDefault(defaultLogger)

	closer, err := InitLogger(filepath.Join(t.TempDir(), "test.log"), true)
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug level not enabled")
	}

	if _, err := InitLogger(filepath.Join(t.TempDir(), "missing", "test.log"), false); err == nil {
		t.Error("expected error for missing directory")
	}
}
