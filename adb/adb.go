// Package adb wraps the external adb binary. Every device operation in the
// tool goes through an Executor; no other package spawns adb directly.
package adb

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/rpnesseling/adbw/utils"
)

const propCacheSize = 128

// Executor runs adb commands against a resolved adb binary.
type Executor struct {
	path  string
	props *lru.Cache[string, string]
}

// New resolves the adb binary and returns an Executor. The explicit path
// (from config or ADBW_ADB_PATH) wins; otherwise the Android SDK directories
// and finally $PATH are searched.
func New(explicit string) (*Executor, error) {
	path, err := Resolve(explicit)
	if err != nil {
		return nil, err
	}
	return NewWithPath(path), nil
}

// NewWithPath returns an Executor using the given adb binary without
// any resolution or existence check.
func NewWithPath(path string) *Executor {
	props, _ := lru.New[string, string](propCacheSize)
	return &Executor{path: path, props: props}
}

// Path returns the adb binary in use.
func (e *Executor) Path() string {
	return e.path
}

// Resolve locates the adb binary. Lookup order: explicit path,
// $ANDROID_HOME/platform-tools, $ANDROID_SDK_ROOT/platform-tools, $PATH.
func Resolve(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("configured adb path does not exist: %s", explicit)
		}
		return explicit, nil
	}

	exeName := "adb"
	if runtime.GOOS == "windows" {
		exeName = "adb.exe"
	}

	for _, env := range []string{"ANDROID_HOME", "ANDROID_SDK_ROOT"} {
		sdk := os.Getenv(env)
		if sdk == "" {
			continue
		}
		candidate := filepath.Join(sdk, "platform-tools", exeName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	if path, err := exec.LookPath("adb"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("adb not found: set [adb] path in the config file or ADBW_ADB_PATH, " +
		"point ANDROID_HOME/ANDROID_SDK_ROOT at an SDK with platform-tools, or add adb to PATH")
}

// Run executes `adb -s <serial> args...` and returns the combined output,
// trimmed. An empty serial omits -s and lets adb pick its default.
func (e *Executor) Run(ctx context.Context, serial string, args ...string) (string, error) {
	cmdArgs := args
	if serial != "" {
		cmdArgs = append([]string{"-s", serial}, args...)
	}

	utils.Verbose("adb %s", strings.Join(cmdArgs, " "))
	cmd := exec.CommandContext(ctx, e.path, cmdArgs...)
	output, err := cmd.CombinedOutput()
	text := strings.TrimSpace(string(output))
	if err != nil {
		if ctx.Err() != nil {
			return text, ctx.Err()
		}
		return text, fmt.Errorf("adb %s: %v", strings.Join(args, " "), err)
	}
	return text, nil
}

// RunHost executes a host-side adb command (devices, version, connect, ...)
// that is not bound to a device serial.
func (e *Executor) RunHost(ctx context.Context, args ...string) (string, error) {
	return e.Run(ctx, "", args...)
}

// Shell is sugar for Run(ctx, serial, "shell", cmd...).
func (e *Executor) Shell(ctx context.Context, serial string, cmd ...string) (string, error) {
	return e.Run(ctx, serial, append([]string{"shell"}, cmd...)...)
}

// Stream runs an adb command and copies its stdout to w line by line until
// the command exits or ctx is cancelled. Cancellation is the normal way to
// stop an endless stream like logcat and is not reported as an error.
func (e *Executor) Stream(ctx context.Context, serial string, w io.Writer, args ...string) error {
	cmdArgs := args
	if serial != "" {
		cmdArgs = append([]string{"-s", serial}, args...)
	}

	utils.Verbose("adb %s (streaming)", strings.Join(cmdArgs, " "))
	cmd := exec.CommandContext(ctx, e.path, cmdArgs...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open adb stdout: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start adb: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	// logcat lines can exceed the default 64K token limit
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if _, err := fmt.Fprintln(w, scanner.Text()); err != nil {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			return fmt.Errorf("failed to write stream output: %w", err)
		}
	}

	waitErr := cmd.Wait()
	if ctx.Err() != nil {
		return nil
	}
	if waitErr != nil {
		return fmt.Errorf("adb %s: %v", strings.Join(args, " "), waitErr)
	}
	return scanner.Err()
}

// Version returns the adb version banner (first line of `adb version`).
func (e *Executor) Version(ctx context.Context) (string, error) {
	out, err := e.RunHost(ctx, "version")
	if err != nil {
		return "", err
	}
	if idx := strings.IndexByte(out, '\n'); idx > 0 {
		return strings.TrimSpace(out[:idx]), nil
	}
	return out, nil
}
