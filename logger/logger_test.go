package logger

import (
	"strings"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected logging.Level
	}{
		{"debug", logging.DEBUG},
		{"info", logging.INFO},
		{"notice", logging.NOTICE},
		{"warn", logging.WARNING},
		{"error", logging.ERROR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl, err := ParseLevel(tt.name)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, lvl)
		})
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestGetLogsFiltersBySeverity(t *testing.T) {
	Debug("buffer-debug-line")
	Error("buffer-error-line")

	errorsOnly := strings.Join(GetLogs(50, "error"), "\n")
	assert.Contains(t, errorsOnly, "buffer-error-line")
	assert.NotContains(t, errorsOnly, "buffer-debug-line")

	all := strings.Join(GetLogs(50, "debug"), "\n")
	assert.Contains(t, all, "buffer-debug-line")
}

func TestGetLogsLimit(t *testing.T) {
	for i := 0; i < 5; i++ {
		Info("limited")
	}
	assert.Len(t, GetLogs(3, "info"), 3)
}
