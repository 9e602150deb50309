package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func plain(buf *bytes.Buffer, opts ...Option) Logger {
	return Make(buf, append([]Option{
		WithFormat(FormatJSON),
		WithPretty(false),
		WithTimeLayout("none"),
	}, opts...)...)
}

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	l := Make(nil)

	if l.Level() != DefaultLevel {
		t.Errorf("Level() = %v, want %v", l.Level(), DefaultLevel)
	}

	if l.Format() != DefaultFormat {
		t.Errorf("Format() = %v, want %v", l.Format(), DefaultFormat)
	}
}

func TestLogger_Make_WithLevel_FiltersMessages(t *testing.T) {
	tests := []struct {
		level Level
		want  []string
	}{
		{LevelTrace, []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}},
		{LevelInfo, []string{"INFO", "WARN", "ERROR"}},
		{LevelError, []string{"ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer

			l := plain(&buf, WithLevel(tt.level))
			l.Trace("m")
			l.Debug("m")
			l.Info("m")
			l.Warn("m")
			l.Error("m")

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			if len(lines) != len(tt.want) {
				t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(tt.want), buf.String())
			}

			for i, line := range lines {
				var rec map[string]any
				if err := json.Unmarshal([]byte(line), &rec); err != nil {
					t.Fatalf("line %d: %v", i, err)
				}

				if rec["level"] != tt.want[i] {
					t.Errorf("line %d level = %v, want %s", i, rec["level"], tt.want[i])
				}

				if _, ok := rec["time"]; ok {
					t.Errorf("line %d has a timestamp", i)
				}
			}
		})
	}
}

func TestLogger_Make_WithCaller_IncludesSource(t *testing.T) {
	var buf bytes.Buffer

	plain(&buf, WithCaller(true)).Warn("here")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("source does not name the calling file: %s", buf.String())
	}
}

func TestLogger_Make_WithFormat_SetsOutputFormat(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatText), WithPretty(false), WithTimeLayout("none"))
	l.Warn("hello world", slog.Int("n", 3))

	if got, want := buf.String(), "level=WARN msg=\"hello world\" n=3\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLogger_Pretty_KeepsAttributes(t *testing.T) {
	for _, format := range []Format{FormatText, FormatJSON} {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer

			l := Make(&buf, WithFormat(format), WithPretty(true), WithTimeLayout("none"))
			l.With(slog.String("component", "repl")).Warn("hi", slog.Bool("ok", true))

			out := buf.String()
			for _, want := range []string{"component", "repl", "WARN", "hi", "ok", "true"} {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q: %q", want, out)
				}
			}

			if strings.Contains(out, "time") {
				t.Errorf("output has a timestamp: %q", out)
			}
		})
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer

	base := plain(&buf)
	base.With(slog.String("expr", "1+2")).Warn("derived")
	base.Warn("base")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}

	if !strings.Contains(lines[0], `"expr":"1+2"`) {
		t.Errorf("derived logger lost attribute: %s", lines[0])
	}

	if strings.Contains(lines[1], "expr") {
		t.Errorf("attribute leaked into parent: %s", lines[1])
	}
}

func TestLogger_Wrap_DoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer

	parent := plain(&buf, WithLevel(LevelError))
	child := parent.Wrap(WithLevel(LevelTrace))

	if parent.Level() != LevelError || child.Level() != LevelTrace {
		t.Errorf("parent = %v, child = %v", parent.Level(), child.Level())
	}
}

func TestLogger_ZeroValue_Safety(t *testing.T) {
	var l Logger

	l.Trace("nothing")
	l.ErrorContext(t.Context(), "nothing")
	_ = l.With(slog.Int("a", 1))

	if l.Enabled(t.Context(), LevelError) {
		t.Error("zero logger reports enabled")
	}

	if l.Level() != DefaultLevel {
		t.Errorf("Level() = %v", l.Level())
	}
}

func TestLogger_ConcurrentCalls_ThreadSafe(t *testing.T) {
	var buf syncBuffer

	l := Make(&buf, WithFormat(FormatJSON), WithPretty(false), WithLevel(LevelInfo))

	var wg sync.WaitGroup

	for i := range 16 {
		wg.Go(func() {
			l.With(slog.Int("g", i)).Info("msg")
			_ = l.Wrap(WithLevel(LevelWarn)).Level()
		})
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "\n"); n != 16 {
		t.Errorf("got %d lines, want 16", n)
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func BenchmarkLogger_Info(b *testing.B) {
	var buf bytes.Buffer

	l := plain(&buf, WithLevel(LevelInfo))

	for b.Loop() {
		buf.Reset()
		l.Info("bench", slog.Int("n", 1))
	}
}
