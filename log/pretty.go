package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// palette colorizes the parts of a pretty log record.
type palette struct {
	key, str, num, yes, no, dur, time func(a ...any) string
}

func newPalette() palette {
	sprint := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		c.EnableColor()

		return c.SprintFunc()
	}

	return palette{
		key:  sprint(color.FgHiBlack),
		str:  sprint(color.FgCyan),
		num:  sprint(color.FgYellow),
		yes:  sprint(color.FgGreen),
		no:   sprint(color.FgRed),
		dur:  sprint(color.FgMagenta),
		time: sprint(color.FgBlue),
	}
}

// level colors a level name by severity.
func (p palette) level(l slog.Level) string {
	name := strings.ToUpper(Level(l).String())

	switch {
	case l >= slog.LevelError:
		return p.no(name)
	case l >= slog.LevelWarn:
		return p.num(name)
	case l >= slog.LevelInfo:
		return p.yes(name)
	default:
		return p.time(name)
	}
}

// value renders v in its color. Strings are never quoted.
func (p palette) value(v slog.Value) string {
	v = v.Resolve()

	switch v.Kind() {
	case slog.KindString:
		return p.str(v.String())
	case slog.KindInt64:
		return p.num(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return p.num(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return p.num(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case slog.KindBool:
		if v.Bool() {
			return p.yes("true")
		}

		return p.no("false")
	case slog.KindDuration:
		return p.dur(v.Duration().String())
	case slog.KindTime:
		return p.time(v.Time().String())
	case slog.KindAny:
		if l, ok := v.Any().(slog.Level); ok {
			return p.level(l)
		}

		if v.Any() == nil {
			return p.key("null")
		}
	}

	return p.str(v.String())
}

// prettyHandler writes colorized records either as a single line of
// key=value pairs or as an indented JSON-like object.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	pal    palette
	attrs  []slog.Attr
	groups []string
	object bool
}

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w, pal: newPalette()}
}

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	h := newPrettyTextHandler(w, opts)
	h.object = true

	return h
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		fields = append(fields, slog.Time(slog.TimeKey, r.Time))
	}

	fields = append(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = append(fields,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = append(fields, h.qualify(a))

		return true
	})

	buf := new(bytes.Buffer)
	if h.object {
		h.writeObject(buf, fields)
	} else {
		h.writeLine(buf, fields)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = slices.Clip(c.attrs)

	for _, a := range attrs {
		c.attrs = append(c.attrs, h.qualify(a))
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(slices.Clip(c.groups), name)

	return &c
}

// qualify prefixes the key of a with the open groups and applies the
// ReplaceAttr hook.
func (h *prettyHandler) qualify(a slog.Attr) slog.Attr {
	if len(h.groups) > 0 {
		a.Key = strings.Join(append(slices.Clip(h.groups), a.Key), ".")
	}

	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(h.groups, a)
	}

	return a
}

// render formats a top-level field, honoring ReplaceAttr for the time and
// level keys. An empty key drops the field.
func (h *prettyHandler) render(a slog.Attr) (string, string, bool) {
	if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
		if h.opts.ReplaceAttr != nil {
			if l, ok := a.Value.Any().(slog.Level); ok {
				return a.Key, h.pal.level(l), true
			}

			a = h.opts.ReplaceAttr(nil, a)
		}
	}

	if a.Key == "" {
		return "", "", false
	}

	if a.Value.Kind() == slog.KindGroup {
		parts := make([]string, 0, len(a.Value.Group()))

		for _, g := range a.Value.Group() {
			if k, v, ok := h.render(g); ok {
				parts = append(parts, h.pal.key(k)+"="+v)
			}
		}

		return a.Key, "{" + strings.Join(parts, " ") + "}", true
	}

	return a.Key, h.pal.value(a.Value), true
}

func (h *prettyHandler) writeLine(buf *bytes.Buffer, fields []slog.Attr) {
	for _, a := range fields {
		k, v, ok := h.render(a)
		if !ok {
			continue
		}

		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.pal.key(k))
		buf.WriteByte('=')
		buf.WriteString(v)
	}
}

func (h *prettyHandler) writeObject(buf *bytes.Buffer, fields []slog.Attr) {
	buf.WriteString("{")

	first := true

	for _, a := range fields {
		k, v, ok := h.render(a)
		if !ok {
			continue
		}

		if !first {
			buf.WriteByte(',')
		}

		first = false

		buf.WriteString("\n  ")
		buf.WriteString(h.pal.key(k))
		buf.WriteString(": ")
		buf.WriteString(v)
	}

	buf.WriteString("\n}")
}
