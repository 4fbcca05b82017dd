package monitoring

import (
	"fmt"
	"testing"
)

func captureLogs(t *testing.T) *[]string {
	t.Helper()
	original := Logf
	t.Cleanup(func() {
		Logf = original
		SetVerbose(false)
	})
	var lines []string
	SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})
	return &lines
}

func TestSetLogger(t *testing.T) {
	lines := captureLogs(t)

	Logf("hello %d", 1)
	if len(*lines) != 1 || (*lines)[0] != "hello 1" {
		t.Fatalf("custom logger not used, got %v", *lines)
	}

	// nil installs a no-op; it must not panic or reach the old logger.
	SetLogger(nil)
	Logf("dropped")
	if len(*lines) != 1 {
		t.Errorf("no-op logger should not have triggered callback, got %v", *lines)
	}
}

func TestDebugf(t *testing.T) {
	lines := captureLogs(t)

	Debugf("quiet")
	if len(*lines) != 0 {
		t.Fatalf("Debugf logged while verbose disabled: %v", *lines)
	}

	SetVerbose(true)
	if !Verbose() {
		t.Fatal("Verbose() = false after SetVerbose(true)")
	}
	Debugf("loud %s", "now")
	if len(*lines) != 1 || (*lines)[0] != "[debug] loud now" {
		t.Errorf("unexpected debug output: %v", *lines)
	}
}
