package menu

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpnesseling/adbw/commands"
	"github.com/rpnesseling/adbw/config"
)

// newTestMenu wires a menu to scripted input and a capture buffer. The adb
// path is deliberately bogus so device-touching commands fail fast instead
// of reaching a real adb on the test machine.
func newTestMenu(t *testing.T, input string) (*Menu, *bytes.Buffer) {
	t.Helper()
	commands.Configure(&config.Config{
		ADBPath:  "/nonexistent/adb",
		StoreDir: t.TempDir(),
	})

	var out bytes.Buffer
	return &Menu{
		in:  bufio.NewScanner(strings.NewReader(input)),
		raw: strings.NewReader(""),
		out: &out,
	}, &out
}

func TestLoopExitsCleanlyOnEOF(t *testing.T) {
	m, out := newTestMenu(t, "")

	require.NoError(t, m.loop(context.Background()))

	assert.True(t, m.eof)
	assert.Contains(t, out.String(), "Main menu")
}

func TestLoopExitsOnZero(t *testing.T) {
	m, out := newTestMenu(t, "0\n")

	require.NoError(t, m.loop(context.Background()))

	assert.False(t, m.eof)
	assert.Contains(t, out.String(), "Bye.")
}

func TestLoopSurvivesMissingAdb(t *testing.T) {
	// device list inside the device submenu, then back out
	m, out := newTestMenu(t, "1\n1\n0\n0\n")

	require.NoError(t, m.loop(context.Background()))

	assert.Contains(t, out.String(), "Device and session")
	assert.Contains(t, out.String(), "Error:")
	assert.Contains(t, out.String(), "Bye.")
}

func TestChooseRejectsJunk(t *testing.T) {
	m, out := newTestMenu(t, "x\n9\n2\n")

	got := m.choose("Pick", "Back", []string{"a", "b", "c"})

	assert.Equal(t, 2, got)
	assert.Contains(t, out.String(), "Pick a number between 0 and 3.")
}

func TestChooseSelectsZeroOnEOF(t *testing.T) {
	m, _ := newTestMenu(t, "")
	assert.Equal(t, 0, m.choose("Pick", "Back", []string{"a"}))
	assert.True(t, m.eof)
}

func TestPromptDefault(t *testing.T) {
	m, _ := newTestMenu(t, "\ncustom\n")

	assert.Equal(t, "fallback", m.promptDefault("Value", "fallback"))
	assert.Equal(t, "custom", m.promptDefault("Value", "fallback"))
}

func TestConfirm(t *testing.T) {
	m, _ := newTestMenu(t, "y\nYES\nn\n\n")

	assert.True(t, m.confirm("Sure?"))
	assert.True(t, m.confirm("Sure?"), "any casing of yes should count")
	assert.False(t, m.confirm("Sure?"))
	assert.False(t, m.confirm("Sure?"), "bare enter defaults to no")
}

func TestShowRendersErrorAndData(t *testing.T) {
	m, out := newTestMenu(t, "")

	m.show(commands.NewErrorResponse(errors.New("boom")))
	assert.Contains(t, out.String(), "Error: boom")

	out.Reset()
	m.show(commands.NewSuccessResponse(map[string]interface{}{"message": "done"}))
	assert.Equal(t, "done\n", out.String(), "single-message payloads print as plain text")

	out.Reset()
	m.show(commands.NewSuccessResponse(map[string]interface{}{"a": 1, "b": 2}))
	assert.Contains(t, out.String(), "\"a\": 1")
}

func TestSwitchDeviceAcceptsTypedName(t *testing.T) {
	m, out := newTestMenu(t, "pixel\n")

	m.switchDevice(context.Background())

	assert.Equal(t, "pixel", m.device)
	assert.Contains(t, out.String(), "Now targeting pixel.")
}

func TestCreateWorkflowSavesSteps(t *testing.T) {
	// name, launch_app step with package and default activity, done
	m, out := newTestMenu(t, "smoke\n3\ncom.example.app\n\n0\n")

	m.createWorkflow()

	w, err := commands.Stores().Workflow("smoke")
	require.NoError(t, err)
	require.Len(t, w.Steps, 1)
	assert.Equal(t, "launch_app", w.Steps[0].Action)
	assert.Equal(t, "com.example.app", w.Steps[0].Package)
	assert.Contains(t, out.String(), "Saved workflow smoke")
}

func TestCreateWorkflowWithoutStepsSavesNothing(t *testing.T) {
	m, out := newTestMenu(t, "empty\n0\n")

	m.createWorkflow()

	assert.Contains(t, out.String(), "No steps, nothing saved.")
	assert.Empty(t, commands.Stores().Workflows())
}

func TestAliasMenuRoundTrip(t *testing.T) {
	m, out := newTestMenu(t, "2\npixel\nR5CR1234567\n0\n")

	m.aliasesMenu()

	assert.Equal(t, "R5CR1234567", commands.Stores().Resolve("pixel"))
	assert.Contains(t, out.String(), "Alias pixel -> R5CR1234567")
}
