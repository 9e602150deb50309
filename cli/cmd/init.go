package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/calc/log"
	"github.com/ardnew/calc/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// ignoreFlags are flag names, or name prefixes, never written to the
// configuration file.
var ignoreFlags = []string{"help", "version", "force", profile.Tag}

// Init generates a configuration file with the current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrWriteConfig.Wrap(fmt.Errorf("no command-line context"))
	}

	confPath := kongVar(ctx, ConfigIdentifier, "")
	if confPath == "" {
		return ErrWriteConfig.Wrap(fmt.Errorf("configuration path undefined"))
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath), slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.MarshalContext(ctx, configValues(ktx),
		yaml.Indent(defaultConfigIndent),
		yaml.IndentSequence(true),
	)
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(confPath), 0o700); err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	if err := os.WriteFile(confPath, data, 0o600); err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
		slog.Int("keys", len(configValues(ktx))),
	)

	return nil
}

// configValues collects the value of every flag in the command tree, in
// declaration order, keyed by flag name. Flags shared by several commands
// are written once. Empty values are omitted.
func configValues(ktx *kong.Context) yaml.MapSlice {
	var (
		out  yaml.MapSlice
		seen = make(map[string]bool)
	)

	var walk func(node *kong.Node)

	walk = func(node *kong.Node) {
		for _, flag := range node.Flags {
			if flag.Hidden || seen[flag.Name] || slices.ContainsFunc(ignoreFlags,
				func(s string) bool { return strings.HasPrefix(flag.Name, s) }) {
				continue
			}

			seen[flag.Name] = true

			if v, ok := configValue(ktx.FlagValue(flag)); ok {
				out = append(out, yaml.MapItem{Key: flag.Name, Value: v})
			}
		}

		for _, child := range node.Children {
			walk(child)
		}
	}

	walk(ktx.Model.Node)

	return out
}

// configValue converts a flag value to its configuration file form.
func configValue(val any) (any, bool) {
	switch v := val.(type) {
	case nil:
		return nil, false

	case string:
		return v, v != ""

	case []string:
		return v, len(v) > 0

	case fmt.Stringer:
		s := v.String()

		return s, s != ""

	case bool, int, int64, float64:
		return v, true

	default:
		s := fmt.Sprint(v)

		return s, s != ""
	}
}
