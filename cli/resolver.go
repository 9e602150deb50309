package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/calc/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads YAML config
// files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config.yaml")
//
// The document is converted as follows:
//   - Top-level keys name flags. Flag names with hyphens (e.g. "log-level")
//     may also be written with underscores ("log_level").
//   - Nested mappings join their keys with a hyphen, so "log: {level: x}"
//     sets --log-level.
//   - Scalars are passed to Kong as strings.
//   - Sequences set repeatable flags, one element per value.
//
// Example config file:
//
//	log:
//	  level: debug
//	  pretty: false
//	precision: 6
//	define:
//	  - rate = 0.07
//
// Command-line flags override config file values. A file that is not a
// YAML mapping is logged and ignored.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		err := yaml.NewDecoder(r).DecodeContext(ctx, &doc)
		if err != nil && !errors.Is(err, io.EOF) {
			log.WarnContext(ctx, "ignoring configuration file", slog.Any("error", err))

			return config{}, nil
		}

		cfg := make(config)
		cfg.flatten("", doc)

		log.TraceContext(ctx, "configuration loaded", slog.Int("keys", len(cfg)))

		return cfg, nil
	}
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// flatten adds the leaves of m to r, joining nested keys with a hyphen.
func (r config) flatten(prefix string, m map[string]any) {
	for k, v := range m {
		key := strings.ReplaceAll(k, "_", "-")
		if prefix != "" {
			key = prefix + "-" + key
		}

		switch v := v.(type) {
		case map[string]any:
			r.flatten(key, v)

		case []any:
			list := make([]any, 0, len(v))
			for _, e := range v {
				list = append(list, scalar(e))
			}

			r[key] = list

		case nil:

		default:
			r[key] = scalar(v)
		}
	}
}

// scalar formats a YAML scalar the way it would be written on the command
// line.
func scalar(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprint(v)
}

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[strings.ReplaceAll(flag.Name, "_", "-")]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}
