package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitAndLevelString(t *testing.T) {
	cases := map[string]string{
		"debug":    "debug",
		"WARN":     "warn",
		"warning":  "warn",
		"Error":    "error",
		"fatal":    "fatal",
		"nonsense": "info",
		"":         "info",
	}
	for in, want := range cases {
		Init(in)
		require.Equal(t, want, LevelString(), "Init(%q)", in)
	}
}

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := logger
	logger = log.New(&buf, "", 0)
	t.Cleanup(func() {
		logger = orig
		Init("info")
	})
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	buf := captureOutput(t)

	Init("warn")
	Debugf("debug-msg")
	Infof("info-msg")
	Warnf("warn-msg")
	Errorf("error-msg")

	out := buf.String()
	require.NotContains(t, out, "debug-msg")
	require.NotContains(t, out, "info-msg")
	require.Contains(t, out, "warn-msg")
	require.Contains(t, out, "error-msg")
}

func TestSingleStringHelpers(t *testing.T) {
	buf := captureOutput(t)

	Init("debug")
	Debug("d")
	Info("i")
	Warn("w")
	Error("e")

	out := buf.String()
	require.Contains(t, out, "[DEBUG] d")
	require.Contains(t, out, "[INFO] i")
	require.Contains(t, out, "[WARN] w")
	require.Contains(t, out, "[ERROR] e")
}
