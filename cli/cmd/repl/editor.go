package repl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/calc/calc"
	"github.com/ardnew/calc/log"
)

const defaultEditor = "vi"

// editVarsCommand implements [tea.ExecCommand] for the variable
// edit-parse-retry loop. It writes the current variables to a temp YAML
// file, opens the user's editor, and reads the result back. On a parse error
// the user is prompted to re-edit; declining exits the program.
type editVarsCommand struct {
	vars    map[string]float64
	ctxFunc func() context.Context
	logger  log.Logger
	newVars map[string]float64
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editVarsCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editVarsCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editVarsCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-parse-retry loop. An emptied file leaves newVars
// nil, which cancels the edit. If the user declines to re-edit after an
// error, Run returns [ErrEditDeclined].
func (c *editVarsCommand) Run() error {
	ctx := c.ctxFunc()

	var buf bytes.Buffer
	if err := calc.WriteVars(ctx, &buf, c.vars); err != nil {
		return fmt.Errorf("format variables: %w", err)
	}

	f, err := os.CreateTemp(os.TempDir(), "calc-vars-*.yaml")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	content := buf.Bytes()

	for {
		if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
			return err
		}

		data, err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath)
		if err != nil {
			return err
		}

		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}

		vars, readErr := calc.ReadVars(ctx, bytes.NewReader(data))
		c.logger.TraceContext(ctx, "editor parse attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", readErr == nil),
		)

		if readErr == nil {
			c.newVars = vars

			return nil
		}

		fmt.Fprintf(c.stderr, "\nerror: %s\n", readErr)
		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		if !confirm(c.stdin) {
			return ErrEditDeclined
		}

		content = data
	}
}

// confirm reads one answer from r. Anything but "n" or "no" is a yes; EOF is
// a no.
func confirm(r io.Reader) bool {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "n", "no":
		return false
	}

	return true
}

// runEditor opens path in $EDITOR and returns the edited content.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) ([]byte, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return nil, err
	}

	return os.ReadFile(path)
}
