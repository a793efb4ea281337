package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitReadsEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	Init(&buf)

	if Log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", Log.GetLevel())
	}

	Log.WithField("session_id", "abc").Debug("hello")
	if !strings.Contains(buf.String(), `"session_id":"abc"`) {
		t.Errorf("expected JSON field in output, got %q", buf.String())
	}
}

func TestInitFallsBackToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "nonsense")
	t.Setenv("LOG_FORMAT", "")

	var buf bytes.Buffer
	Init(&buf)

	if Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", Log.GetLevel())
	}
}

func TestOpenFileEmptyPathDiscards(t *testing.T) {
	w, err := OpenFile("")
	if err != nil {
		t.Fatalf("OpenFile(\"\") error: %v", err)
	}
	if _, err := w.Write([]byte("dropped")); err != nil {
		t.Errorf("Write() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
