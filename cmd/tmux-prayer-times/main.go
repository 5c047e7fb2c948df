// Command tmux-prayer-times prints the next prayer for a tmux status bar.
// It accepts the same flags as `prayer-times next`.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-engine/internal/cli"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayer"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0"
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newCommand(os.Args[1:]).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}

func newCommand(args []string) *cobra.Command {
	cmd := cli.NewRootCmd(version)
	cmd.Use = "tmux-prayer-times"
	cmd.SetArgs(statusArgs(args))
	return cmd
}

// statusArgs routes the command line to `next`, defaulting to the compact
// name-and-time format. --version and --list-methods keep their old meaning.
func statusArgs(args []string) []string {
	for _, a := range args {
		switch a {
		case "--version", "-v":
			return []string{"--version"}
		case "--list-methods":
			return []string{"methods"}
		}
	}

	out := []string{"next"}
	if !hasFlag(args, "format") {
		out = append(out, "--format", prayer.FormatNameAndTime)
	}
	return append(out, args...)
}

func hasFlag(args []string, name string) bool {
	for _, a := range args {
		if a == "--"+name || strings.HasPrefix(a, "--"+name+"=") {
			return true
		}
	}
	return false
}
