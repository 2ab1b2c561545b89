package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rpnesseling/adbw/history"
	"github.com/rpnesseling/adbw/utils"
)

// ShellCommand runs a one-shot shell command on the device and returns its
// output.
func ShellCommand(ctx context.Context, device string, args []string) *CommandResponse {
	if len(args) == 0 {
		return NewErrorResponse(fmt.Errorf("a shell command is required"))
	}
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	out, err := exec.Shell(ctx, dev.Serial, args...)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"output": out,
	})
}

// InteractiveShellCommand runs a line-by-line shell REPL against the device.
// `!history` lists the last recorded commands, `!<N>` re-runs entry N from
// that listing, `exit` leaves. Commands are persisted to the history store.
func InteractiveShellCommand(ctx context.Context, device string, in io.Reader, out io.Writer) error {
	exec, err := Exec()
	if err != nil {
		return err
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return err
	}

	hist, err := history.Open(conf.StoreDir)
	if err != nil {
		return err
	}
	defer hist.Close()

	fmt.Fprintf(out, "Interactive shell on %s. Type exit to leave, !history to recall.\n", dev.Label())

	scanner := bufio.NewScanner(in)
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprintf(out, "%s $ ", dev.Serial)
		if !scanner.Scan() {
			// EOF or closed stdin ends the session cleanly
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "exit" || line == "quit":
			return nil
		case line == "!history":
			printHistory(hist, out)
			continue
		case strings.HasPrefix(line, "!"):
			n, err := strconv.Atoi(line[1:])
			if err != nil {
				fmt.Fprintf(out, "unknown recall %q, use !history or !<number>\n", line)
				continue
			}
			recalled, err := hist.Get(n)
			if err != nil {
				fmt.Fprintf(out, "%v\n", err)
				continue
			}
			fmt.Fprintf(out, "%s\n", recalled)
			line = recalled
		}

		runShellLine(ctx, exec.Shell, hist, dev.Serial, line, out)
	}
}

func printHistory(hist *history.History, out io.Writer) {
	entries, err := hist.Recent(history.RecallLimit)
	if err != nil {
		fmt.Fprintf(out, "failed to read history: %v\n", err)
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "history is empty")
		return
	}
	for i, e := range entries {
		fmt.Fprintf(out, "%3d  %s\n", i+1, e.Command)
	}
}

type shellFunc func(ctx context.Context, serial string, cmd ...string) (string, error)

func runShellLine(ctx context.Context, shell shellFunc, hist *history.History, serial, line string, out io.Writer) {
	result, err := shell(ctx, serial, strings.Fields(line)...)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
	} else if result != "" {
		fmt.Fprintln(out, result)
	}

	if err := hist.Add(serial, line); err != nil {
		utils.Verbose("Failed to record history entry: %v", err)
	}
}
