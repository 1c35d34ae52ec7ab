package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles of a pretty handler, bound to the renderer of its
// output so that colors are dropped when the output is not a terminal.
type palette struct {
	key, str, num, boolean, null, time, source lipgloss.Style
	level                                      map[slog.Level]lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	color := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:     color("8"),
		str:     color("6"),
		num:     color("3"),
		boolean: color("2"),
		null:    color("8"),
		time:    color("4"),
		source:  color("8").Italic(true),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): color("4"),
			slog.LevelDebug:        color("4").Bold(true),
			slog.LevelInfo:         color("2").Bold(true),
			slog.LevelWarn:         color("3").Bold(true),
			slog.LevelError:        color("1").Bold(true),
		},
	}
}

func (p palette) levelStyle(l slog.Level) lipgloss.Style {
	for _, k := range []slog.Level{
		slog.LevelError, slog.LevelWarn, slog.LevelInfo, slog.LevelDebug,
	} {
		if l >= k {
			return p.level[k]
		}
	}

	return p.level[slog.Level(LevelTrace)]
}

// prettyHandler writes colorized records, either as one line of key=value
// pairs or as an indented JSON-like object.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	style  palette
	attrs  []slog.Attr // already qualified by groups
	groups []string
	format Format
}

func newPrettyHandler(
	w io.Writer,
	format Format,
	opts *slog.HandlerOptions,
) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		mu:     &sync.Mutex{},
		w:      w,
		style:  newPalette(w),
		format: format,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(slices.Clip(h.attrs), h.qualify(attrs)...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(slices.Clip(h.groups), name)

	return &c
}

// qualify flattens attrs and prefixes their keys with the open groups.
func (h *prettyHandler) qualify(attrs []slog.Attr) []slog.Attr {
	var out []slog.Attr

	prefix := strings.Join(h.groups, ".")
	for _, a := range attrs {
		out = flatten(out, prefix, a)
	}

	return out
}

func flatten(out []slog.Attr, prefix string, a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return out
	}

	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if key == "" {
		key = prefix
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, g := range a.Value.Group() {
			out = flatten(out, key, g)
		}

		return out
	}

	return append(out, slog.Attr{Key: key, Value: a.Value})
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	head := make([]slog.Attr, 0, 4)

	if !r.Time.IsZero() {
		head = append(head, slog.Time(slog.TimeKey, r.Time))
	}

	head = append(head, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			head = append(head, slog.String(
				slog.SourceKey, src.File+":"+strconv.Itoa(src.Line),
			))
		}
	}

	head = append(head, slog.String(slog.MessageKey, r.Message))

	if rep := h.opts.ReplaceAttr; rep != nil {
		for i := range head {
			head[i] = rep(nil, head[i])
		}
	}

	body := slices.Clone(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		body = append(body, h.qualify([]slog.Attr{a})...)

		return true
	})

	var buf bytes.Buffer

	if h.format == FormatJSON {
		h.writeObject(&buf, r.Level, head, body)
	} else {
		h.writeLine(&buf, r.Level, head, body)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) writeLine(
	buf *bytes.Buffer,
	level slog.Level,
	head, body []slog.Attr,
) {
	for _, a := range head {
		if a.Key == "" {
			continue
		}

		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		switch a.Key {
		case slog.LevelKey:
			buf.WriteString(h.style.levelStyle(level).Render(fmt.Sprintf("%-5s", a.Value.String())))
		case slog.MessageKey:
			buf.WriteString(a.Value.String())
		case slog.SourceKey:
			buf.WriteString(h.style.source.Render(a.Value.String()))
		default:
			buf.WriteString(h.style.time.Render(a.Value.String()))
		}
	}

	for _, a := range body {
		buf.WriteByte(' ')
		buf.WriteString(h.style.key.Render(a.Key + "="))
		buf.WriteString(h.value(a.Value, false))
	}
}

func (h *prettyHandler) writeObject(
	buf *bytes.Buffer,
	level slog.Level,
	head, body []slog.Attr,
) {
	buf.WriteString("{")

	first := true

	for _, a := range append(head, body...) {
		if a.Key == "" {
			continue
		}

		if !first {
			buf.WriteByte(',')
		}

		first = false

		buf.WriteString("\n  ")
		buf.WriteString(h.style.key.Render(strconv.Quote(a.Key)))
		buf.WriteString(": ")

		if a.Key == slog.LevelKey {
			buf.WriteString(h.style.levelStyle(level).Render(strconv.Quote(a.Value.String())))

			continue
		}

		buf.WriteString(h.value(a.Value, true))
	}

	buf.WriteString("\n}")
}

func (h *prettyHandler) value(v slog.Value, quote bool) string {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if quote {
			s = strconv.Quote(s)
		}

		return h.style.str.Render(s)

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.style.num.Render(v.String())

	case slog.KindBool:
		return h.style.boolean.Render(v.String())

	case slog.KindDuration, slog.KindTime:
		if quote {
			return h.style.time.Render(strconv.Quote(v.String()))
		}

		return h.style.time.Render(v.String())
	}

	a := v.Any()
	if a == nil {
		return h.style.null.Render("null")
	}

	if err, ok := a.(error); ok {
		return h.value(slog.StringValue(err.Error()), quote)
	}

	if quote {
		if data, err := json.Marshal(a); err == nil {
			return h.style.str.Render(string(data))
		}
	}

	return h.value(slog.StringValue(fmt.Sprint(a)), quote)
}
