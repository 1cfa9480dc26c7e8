package shell

import (
	"errors"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"github.com/collegedir/cli/internal/app"
)

// ErrNested is returned when shell is run from inside a shell
var ErrNested = errors.New("already inside a shell")

const prompt = "collegedir> "

// NewShellCmd builds the interactive shell. newRoot must return a fresh
// command tree; one is built per input line.
func NewShellCmd(a *app.App, newRoot func() *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open an interactive session",
		Long: `Open an interactive shell. A login made inside the shell lasts until the
shell exits; type 'help' for commands and 'exit' to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.InShell {
				return ErrNested
			}
			a.InShell = true
			defer func() {
				a.InShell = false
				a.Session.Clear()
			}()

			a.Logger.Debug("shell started")
			a.Printer.Info("College Directory shell. Type 'help' for commands, 'exit' to quit.")

			for {
				line, err := a.Prompt(prompt)
				if errors.Is(err, app.ErrNoInput) {
					return nil
				}
				if err != nil {
					return err
				}

				words, err := shlex.Split(line)
				if err != nil {
					a.Report(err)
					continue
				}
				if len(words) == 0 {
					continue
				}
				switch strings.ToLower(words[0]) {
				case "exit", "quit":
					return nil
				}

				root := newRoot()
				root.SetArgs(words)
				root.SetIn(a.In)
				root.SetOut(a.Out)
				root.SetErr(a.ErrOut)
				if err := root.ExecuteContext(cmd.Context()); err != nil {
					a.Report(err)
				}
			}
		},
	}
}
