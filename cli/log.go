package cli

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/calc/log"
)

// logFormat is a custom type that configures the logger format as a side
// effect of parsing via encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-format flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel is a custom type that configures the logger level as a side
// effect of parsing via encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-level flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"${logLevelDefault}"  enum:"${logLevelEnum}"  help:"Set log level (${enum})."`
	Format     logFormat `default:"${logFormatDefault}" enum:"${logFormatEnum}" help:"Set log format (${enum})."`
	TimeLayout string    `default:"RFC3339"                                     help:"Set timestamp format ('none' to omit)."`
	Caller     bool      `default:"false"                                       help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                                        help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	var levels, formats []string

	for l := range log.Levels() {
		levels = append(levels, l)
	}

	for f := range log.Formats() {
		formats = append(formats, f)
	}

	return kong.Vars{
		"logLevelDefault":  log.DefaultLevel.String(),
		"logLevelEnum":     strings.Join(levels, ","),
		"logFormatDefault": log.DefaultFormat.String(),
		"logFormatEnum":    strings.Join(formats, ","),
	}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

// start applies every parsed logger flag. The returned function logs the
// end of the run.
func (f *logConfig) start(ctx context.Context) (stop func()) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)

	return func() { log.TraceContext(ctx, "logger stopped") }
}

// logFlag applies one logger flag found by [logConfig.scan]. Boolean flags
// receive "true" when given without a value, and their "--no-" form
// receives the negated value.
type logFlag struct {
	boolean bool
	apply   func(f *logConfig, value string)
}

var logFlags = map[string]logFlag{
	"level": {apply: func(f *logConfig, v string) { _ = f.Level.UnmarshalText([]byte(v)) }},
	"format": {apply: func(f *logConfig, v string) {
		_ = f.Format.UnmarshalText([]byte(v))
	}},
	"time-layout": {apply: func(f *logConfig, v string) {
		f.TimeLayout = v
		log.Config(log.WithTimeLayout(v))
	}},
	"caller": {boolean: true, apply: func(f *logConfig, v string) {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Caller = b
			log.Config(log.WithCaller(b))
		}
	}},
	"pretty": {boolean: true, apply: func(f *logConfig, v string) {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Pretty = b
			log.Config(log.WithPretty(b))
		}
	}},
}

// scan performs an early pass over command-line arguments to extract and
// apply logger configuration before Kong begins parsing. This ensures the
// logger is configured properly regardless of flag position on the command
// line.
//
// While logFormat and logLevel types implement encoding.TextUnmarshaler to
// configure the logger as flags are encountered during parsing, boolean flags
// like Pretty don't go through that interface. This pre-scan ensures all logger
// flags are applied early.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return
		}

		name, negated := strings.CutPrefix(arg, "--no-log-")
		if !negated {
			var ok bool
			if name, ok = strings.CutPrefix(arg, "--log-"); !ok {
				continue
			}
		}

		name, value, assigned := strings.Cut(name, "=")

		flag, ok := logFlags[name]
		if !ok || (negated && !flag.boolean) {
			continue
		}

		switch {
		case flag.boolean && !assigned:
			value = "true"

		case flag.boolean:
			// Explicit value, possibly negated below.

		case !assigned:
			// Non-boolean flag: consume next arg as value.
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
				continue
			}

			i++
			value = args[i]
		}

		if negated {
			b, err := strconv.ParseBool(value)
			if err != nil {
				continue
			}

			value = strconv.FormatBool(!b)
		}

		flag.apply(f, value)
	}
}
