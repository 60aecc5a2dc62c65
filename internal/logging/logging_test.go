package logging

import (
	"bytes"
	"log"
	"testing"
)

func newBufLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Logger{out: log.New(&buf, "", 0), level: level}, &buf
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	l, buf := newBufLogger(LevelWarn)
	l.Debug("should not appear")
	l.Info("should not appear either")
	if buf.Len() > 0 {
		t.Errorf("expected no output below level, got: %s", buf.String())
	}
	l.Warn("this appears")
	if !bytes.Contains(buf.Bytes(), []byte("WARN: this appears")) {
		t.Errorf("expected warn output, got: %s", buf.String())
	}
}

func TestLogger_Error_AlwaysAppears(t *testing.T) {
	l, buf := newBufLogger(LevelError)
	l.Error("boom %d", 42)
	if !bytes.Contains(buf.Bytes(), []byte("ERROR: boom 42")) {
		t.Errorf("expected error output, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug": LevelDebug,
		"info":  LevelInfo,
		"warn":  LevelWarn,
		"error": LevelError,
		"":      LevelInfo,
		"huh":   LevelInfo,
	}
	for input, want := range cases {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
