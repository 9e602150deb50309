package cli

import (
	"os"
	"testing"

	"github.com/ardnew/calc/log"
)

func TestLogConfigScan(t *testing.T) {
	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })

	tests := []struct {
		name string
		args []string
		want logConfig
	}{
		{
			name: "separate_values",
			args: []string{"eval", "--log-level", "debug", "--log-format", "json", "1+1"},
			want: logConfig{Level: "debug", Format: "json", Pretty: true},
		},
		{
			name: "assigned_values",
			args: []string{"--log-level=trace", "--log-time-layout=none"},
			want: logConfig{Level: "trace", TimeLayout: "none", Pretty: true},
		},
		{
			name: "booleans",
			args: []string{"--log-caller", "--no-log-pretty"},
			want: logConfig{Caller: true, Pretty: false},
		},
		{
			name: "negated_assigned",
			args: []string{"--no-log-pretty=false", "--log-caller=false"},
			want: logConfig{Pretty: true},
		},
		{
			name: "missing_value",
			args: []string{"--log-level", "--log-caller"},
			want: logConfig{Caller: true, Pretty: true},
		},
		{
			name: "after_terminator",
			args: []string{"--", "--log-level=debug"},
			want: logConfig{Pretty: true},
		},
		{
			name: "negated_non_boolean",
			args: []string{"--no-log-level=debug", "--log-unknown=1"},
			want: logConfig{Pretty: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := logConfig{Pretty: true}
			f.scan(tt.args)

			if f != tt.want {
				t.Errorf("scan(%q) = %+v, want %+v", tt.args, f, tt.want)
			}
		})
	}
}

func TestLogConfigScanConfiguresLogger(t *testing.T) {
	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })

	var f logConfig
	f.scan([]string{"--log-level=debug", "--log-format", "json"})

	if got := log.Default().Level(); got != log.LevelDebug {
		t.Errorf("logger level = %v, want debug", got)
	}

	if got := log.Default().Format(); got != log.FormatJSON {
		t.Errorf("logger format = %v, want json", got)
	}
}

func TestLogConfigVars(t *testing.T) {
	vars := (&logConfig{}).vars()

	if vars["logLevelDefault"] != "warn" || vars["logFormatDefault"] != "text" {
		t.Errorf("defaults = %v", vars)
	}

	if vars["logLevelEnum"] != "trace,debug,info,warn,error" {
		t.Errorf("logLevelEnum = %q", vars["logLevelEnum"])
	}
}
