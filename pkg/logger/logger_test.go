package logger

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
)

// capture redirects package output for one test.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := logger
	logger = log.New(&buf, "", 0)
	t.Cleanup(func() { logger = orig; Init("info") })
	return &buf
}

func TestInitNormalizesLevelNames(t *testing.T) {
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
		if got := LevelString(); got != want {
			t.Fatalf("Init(%q): LevelString() = %q, want %q", in, got, want)
		}
	}
	Init("info")
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)
	Init("warn")

	// the shapes the stores and engine actually log
	Debugf("startup: LOG_LEVEL=%s", "warn")
	Infof("Connected to Redis: %s:%s", "localhost", "6379")
	Warnf("baseline load failed, serving local rows only: %v", errors.New("down"))
	Errorf("detail write failed for %q: %v", "ada@x.test", errors.New("quota exceeded"))

	out := buf.String()
	if strings.Contains(out, "LOG_LEVEL") || strings.Contains(out, "Connected to Redis") {
		t.Fatalf("debug/info should be suppressed at warn level, got: %q", out)
	}
	if !strings.Contains(out, "baseline load failed, serving local rows only: down") {
		t.Fatalf("warn message missing: %q", out)
	}
	if !strings.Contains(out, `detail write failed for "ada@x.test": quota exceeded`) {
		t.Fatalf("error message missing: %q", out)
	}
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "[ERROR]") {
		t.Fatalf("level headers missing: %q", out)
	}
}

func TestPrintlnMapsToInfo(t *testing.T) {
	buf := capture(t)

	Init("warn")
	Println("hello")
	if strings.Contains(buf.String(), "hello") {
		t.Fatalf("Println should be suppressed at warn level")
	}

	Init("info")
	buf.Reset()
	Println("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("Println expected at info level, got: %q", buf.String())
	}
}
