package utils

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSetVerbose_And_IsVerbose(t *testing.T) {
	// save original state and restore after test
	original := IsVerbose()
	defer SetVerbose(original)

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected IsVerbose() = true after SetVerbose(true)")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected IsVerbose() = false after SetVerbose(false)")
	}
}

func TestVerbose_SuppressedWhenDisabled(t *testing.T) {
	original := IsVerbose()
	defer SetVerbose(original)
	defer SetLogOutput(os.Stderr)

	var buf bytes.Buffer
	SetLogOutput(&buf)

	SetVerbose(false)
	Verbose("hidden message %d", 42)
	if strings.Contains(buf.String(), "hidden message") {
		t.Errorf("verbose output emitted while disabled: %q", buf.String())
	}

	SetVerbose(true)
	Verbose("shown message %d", 42)
	if !strings.Contains(buf.String(), "shown message 42") {
		t.Errorf("verbose output missing while enabled: %q", buf.String())
	}
}

func TestInfo_AlwaysEmitted(t *testing.T) {
	defer SetLogOutput(os.Stderr)

	var buf bytes.Buffer
	SetLogOutput(&buf)

	Info("status %s", "ready")
	if !strings.Contains(buf.String(), "status ready") {
		t.Errorf("info output missing: %q", buf.String())
	}
}

func TestWarn_DoesNotPanic(t *testing.T) {
	defer SetLogOutput(os.Stderr)
	SetLogOutput(&bytes.Buffer{})

	Warn("watch out %s", "now")
	Error("broke %v", "badly")
}
