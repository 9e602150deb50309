package calc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"

	"github.com/goccy/go-yaml"
)

// ReadVars decodes a YAML mapping of variable names to numbers, such as
//
//	x: 5
//	rate: 0.25
//
// Booleans are accepted as 1 and 0. Every key must be a valid identifier.
// Scalars the YAML decoder leaves as strings, such as 1e+300, are parsed as
// numbers; values beyond float64 range become ±Inf.
// An empty document yields an empty map.
func ReadVars(ctx context.Context, r io.Reader) (map[string]float64, error) {
	var doc map[string]any

	err := yaml.NewDecoder(r).DecodeContext(ctx, &doc)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, ErrInvalidVars.Wrap(err)
	}

	vars := make(map[string]float64, len(doc))

	for name, raw := range doc {
		if !IsIdentifier(name) {
			return nil, ErrInvalidVars.With(slog.String(attrName, name)).
				Wrap(errors.New("not an identifier"))
		}

		v, ok := toFloat(raw)
		if !ok {
			return nil, ErrInvalidVars.With(slog.String(attrName, name)).
				Wrap(fmt.Errorf("not a number: %v", raw))
		}

		vars[name] = v
	}

	return vars, nil
}

// WriteVars encodes vars as a YAML mapping sorted by name.
func WriteVars(ctx context.Context, w io.Writer, vars map[string]float64) error {
	doc := make(yaml.MapSlice, 0, len(vars))

	for _, name := range slices.Sorted(maps.Keys(vars)) {
		doc = append(doc, yaml.MapItem{Key: name, Value: vars[name]})
	}

	b, err := yaml.MarshalContext(ctx, doc)
	if err != nil {
		return ErrInvalidVars.Wrap(err)
	}

	_, err = w.Write(b)

	return err
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float64:
		return v, true
	case bool:
		return truth(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}

		return f, true
	}

	return 0, false
}
