// Package cli contains the command line interface for calc.
//
// # Usage
//
// Expressions given as arguments are evaluated in order on one evaluator,
// so assignments carry forward:
//
//	calc 'r = 2' 'pi * r ** 2'
//
// The subcommands are:
//
//   - eval (default): evaluate arguments, --file scripts, or piped stdin
//   - repl: interactive session with history and completion
//   - fmt tokens | fmt postfix: print intermediate forms
//   - init: write the current flag values to the configuration file
//
// # Configuration
//
// Flag defaults are read from config.yaml and config.json in the user
// configuration directory (see [pkg.ConfigDir]). Command-line flags take
// precedence. The YAML file is written by the init command.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o calc .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/calc/pprof)
package cli
