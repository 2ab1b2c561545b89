package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rpnesseling/adbw/cli"
)

func main() {
	// streaming commands install their own interrupt handling, so a plain
	// background context is the right root
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
