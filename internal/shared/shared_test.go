package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestShared(t *testing.T) {
	t.Run("NewLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output to contain message, got %q", buf.String())
		}
	})

	t.Run("SetLogLevel", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.ErrorLevel)
		logger.Info("suppressed")

		if strings.Contains(buf.String(), "suppressed") {
			t.Errorf("info message should be suppressed at error level")
		}
	})

	t.Run("GenerateID", func(t *testing.T) {
		a := GenerateID()
		b := GenerateID()

		if a == b {
			t.Error("generated IDs should be unique")
		}
		if len(a) != 36 {
			t.Errorf("expected uuid v4 format, got %q", a)
		}
	})
}
