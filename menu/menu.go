// Package menu implements the interactive mode: numbered menus over the
// command layer, driven from stdin. Everything the CLI exposes is reachable
// here without remembering flags.
package menu

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/rpnesseling/adbw/commands"
)

var (
	headline = color.New(color.FgCyan, color.Bold)
	errText  = color.New(color.FgRed)
)

// Menu holds the state of one interactive session. All line input goes
// through a single scanner; raw is handed to operations that read stdin
// themselves, like the interactive shell.
type Menu struct {
	in     *bufio.Scanner
	raw    io.Reader
	out    io.Writer
	device string
	eof    bool
}

// Run enters menu mode on stdin/stdout and blocks until the user exits or
// stdin closes.
func Run(ctx context.Context) error {
	m := &Menu{
		in:  bufio.NewScanner(os.Stdin),
		raw: os.Stdin,
		out: os.Stdout,
	}
	return m.loop(ctx)
}

func (m *Menu) loop(ctx context.Context) error {
	for !m.eof {
		m.banner()
		switch m.choose("Main menu", "Exit", []string{
			"Device and session",
			"App and package",
			"File transfer",
			"Logging and diagnostics",
			"Utilities",
			"Workflows and profiles",
		}) {
		case 0:
			fmt.Fprintln(m.out, "Bye.")
			return nil
		case 1:
			m.deviceMenu(ctx)
		case 2:
			m.appsMenu(ctx)
		case 3:
			m.transferMenu(ctx)
		case 4:
			m.loggingMenu(ctx)
		case 5:
			m.utilitiesMenu(ctx)
		case 6:
			m.workflowsMenu(ctx)
		}
	}
	return nil
}

func (m *Menu) banner() {
	target := m.device
	if target == "" {
		target = "auto-select"
	}
	fmt.Fprintln(m.out)
	headline.Fprintf(m.out, "adbw  device: %s\n", target)
}

func (m *Menu) header(text string) {
	fmt.Fprintln(m.out)
	headline.Fprintln(m.out, text)
}

// readLine reads the next input line. A failed scan marks the session as
// ended so every enclosing loop unwinds without touching stdin again.
func (m *Menu) readLine() string {
	if m.eof {
		return ""
	}
	if !m.in.Scan() {
		m.eof = true
		return ""
	}
	return strings.TrimSpace(m.in.Text())
}

func (m *Menu) prompt(label string) string {
	fmt.Fprintf(m.out, "%s: ", label)
	return m.readLine()
}

func (m *Menu) promptDefault(label, def string) string {
	fmt.Fprintf(m.out, "%s [%s]: ", label, def)
	if v := m.readLine(); v != "" {
		return v
	}
	return def
}

func (m *Menu) confirm(question string) bool {
	fmt.Fprintf(m.out, "%s [y/N] ", question)
	answer := strings.ToLower(m.readLine())
	return answer == "y" || answer == "yes"
}

// choose prints a numbered menu and reads a selection. Entry 0 is always
// the zeroLabel entry (back or exit); end of input selects it too.
func (m *Menu) choose(title, zeroLabel string, options []string) int {
	m.header(title)
	for i, opt := range options {
		fmt.Fprintf(m.out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprintf(m.out, "  0) %s\n", zeroLabel)

	for !m.eof {
		raw := m.prompt("Choice")
		if m.eof {
			break
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > len(options) {
			fmt.Fprintf(m.out, "Pick a number between 0 and %d.\n", len(options))
			continue
		}
		return n
	}
	return 0
}

// show renders a command response: errors in red, single-string payloads as
// plain text, everything else as indented JSON.
func (m *Menu) show(resp *commands.CommandResponse) {
	if resp.Status == "error" {
		errText.Fprintf(m.out, "Error: %s\n", resp.Error)
		return
	}
	m.showData(resp.Data)
}

func (m *Menu) showData(data interface{}) {
	if data == nil {
		return
	}

	if mp, ok := data.(map[string]interface{}); ok && len(mp) == 1 {
		for _, key := range []string{"message", "output", "report"} {
			if v, ok := mp[key].(string); ok {
				fmt.Fprintln(m.out, v)
				return
			}
		}
	}

	pretty, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintf(m.out, "%v\n", data)
		return
	}
	fmt.Fprintln(m.out, string(pretty))
}

func (m *Menu) showErr(err error) {
	errText.Fprintf(m.out, "Error: %v\n", err)
}
