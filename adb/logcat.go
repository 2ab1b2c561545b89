package adb

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Priorities accepted by logcat tag filters, lowest to highest.
const LogcatPriorities = "VDIWEFS"

// ValidPriority reports whether p is a single logcat priority letter.
func ValidPriority(p string) bool {
	return len(p) == 1 && strings.Contains(LogcatPriorities, p)
}

// LogcatTail streams the full logcat to w until ctx is cancelled.
func (e *Executor) LogcatTail(ctx context.Context, serial string, w io.Writer) error {
	return e.Stream(ctx, serial, w, "logcat")
}

// LogcatTailFiltered streams `logcat <tag>:<priority> *:S` to w until ctx is
// cancelled. Empty tag defaults to *; empty priority to I.
func (e *Executor) LogcatTailFiltered(ctx context.Context, serial, tag, priority string, w io.Writer) error {
	if tag == "" {
		tag = "*"
	}
	priority = strings.ToUpper(strings.TrimSpace(priority))
	if priority == "" {
		priority = "I"
	}
	if !ValidPriority(priority) {
		return fmt.Errorf("invalid logcat priority %q (one of V D I W E F S)", priority)
	}
	return e.Stream(ctx, serial, w, "logcat", fmt.Sprintf("%s:%s", tag, priority), "*:S")
}

// LogcatSnapshot returns the current log buffer (`logcat -d`).
func (e *Executor) LogcatSnapshot(ctx context.Context, serial string) (string, error) {
	return e.Run(ctx, serial, "logcat", "-d")
}

// LogcatClear clears the log buffer (`logcat -c`).
func (e *Executor) LogcatClear(ctx context.Context, serial string) error {
	_, err := e.Run(ctx, serial, "logcat", "-c")
	return err
}

// Bugreport writes a full bugreport. Where must be a directory or .zip path;
// adb decides the format based on the device version.
func (e *Executor) Bugreport(ctx context.Context, serial, where string) (string, error) {
	return e.Run(ctx, serial, "bugreport", where)
}
