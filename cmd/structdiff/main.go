// Command structdiff reports field-level differences between two structured
// documents
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errDifferencesFound is returned by a diff that ran fine but found
// differences, so the process can exit 1 like diff(1)
var errDifferencesFound = errors.New("differences found")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	code := exitCode(cmd.ExecuteContext(ctx), cmd.ErrOrStderr())
	stop()
	os.Exit(code)
}

// exitCode maps a command error to a process exit status: 0 for no
// differences, 1 for differences, 2 for anything that went wrong
func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errDifferencesFound):
		return 1
	}
	fmt.Fprintf(stderr, "structdiff: %s\n", err)
	return 2
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "structdiff",
		Short: "Field-level differences between two structured documents",
		Long: `structdiff compares two JSON, YAML, TOML or MessagePack documents and
lists every leaf value that differs, with a human-readable path to it.

Display names for paths can be supplied with a names file, see
"structdiff names validate".`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("verbose", false, "log comparison progress to stderr")

	root.AddCommand(newDiffCmd())
	root.AddCommand(newNamesCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// useColor resolves the --color flag. auto only colors when stdout is a
// terminal
func useColor(cmd *cobra.Command) (bool, error) {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return false, err
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		f, ok := cmd.OutOrStdout().(*os.File)
		return ok && isTerminal(f), nil
	}
	return false, fmt.Errorf("invalid --color value %q, expected auto, on or off", mode)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// newLogger writes text records to the command's stderr. Debug records are
// only shown with --verbose
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
