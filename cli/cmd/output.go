package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/calc/calc"
)

// Output selects how results are written.
type Output string

const (
	OutputText Output = "text"
	OutputJSON Output = "json"
	OutputYAML Output = "yaml"
)

// encode writes v to w as JSON or YAML with the given indent width. Text
// output is handled by each command.
func (o Output) encode(ctx context.Context, w io.Writer, v any, indent int) error {
	switch o {
	case OutputJSON:
		enc := json.NewEncoder(w)
		if indent > 0 {
			enc.SetIndent("", strings.Repeat(" ", indent))
		}

		if err := enc.Encode(v); err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

	case OutputYAML:
		opts := []yaml.EncodeOption{yaml.Indent(max(indent, 2))}

		data, err := yaml.MarshalContext(ctx, v, opts...)
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		if _, err := w.Write(data); err != nil {
			return err
		}

	default:
		_, err := fmt.Fprintln(w, v)

		return err
	}

	return nil
}

// printer writes evaluation results. In text mode values go to out and
// errors to errOut; structured modes write one record per result to out.
type printer struct {
	out, errOut io.Writer
	format      Output
	precision   int
	value       *color.Color
	failure     *color.Color
}

func newPrinter(out, errOut io.Writer, format Output, precision int) printer {
	return printer{
		out:       out,
		errOut:    errOut,
		format:    format,
		precision: precision,
		value:     color.New(color.FgGreen),
		failure:   color.New(color.FgRed),
	}
}

func (p printer) print(ctx context.Context, res calc.Result, err error) error {
	switch p.format {
	case OutputJSON:
		return p.format.encode(ctx, p.out, res, 0)

	case OutputYAML:
		// A one-element sequence per result keeps the whole stream a single
		// YAML list.
		return p.format.encode(ctx, p.out, []calc.Result{res}, 2)
	}

	if err != nil {
		_, werr := p.failure.Fprintln(p.errOut, "error: "+err.Error())

		return werr
	}

	_, werr := p.value.Fprintln(p.out, calc.FormatValue(res.Value, p.precision))

	return werr
}
