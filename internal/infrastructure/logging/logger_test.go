package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Levels(t *testing.T) {
	log, err := NewLogger("")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if !log.Core().Enabled(zapcore.InfoLevel) || log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("default level should be info")
	}

	log, err = NewLogger("debug")
	if err != nil {
		t.Fatalf("NewLogger(debug): %v", err)
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug should be enabled")
	}

	if _, err := NewLogger("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
