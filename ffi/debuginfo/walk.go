package debuginfo

import (
	"context"
	"debug/dwarf"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/ffins/ffi"
	"github.com/ardnew/ffins/log"
)

// entrySource yields debug entries in depth-first order, as [*dwarf.Reader]
// does. A zero-tagged entry ends a list of children.
type entrySource interface {
	Next() (*dwarf.Entry, error)
	SkipChildren()
}

type walker struct {
	src   entrySource
	cfg   config
	items []ffi.Item
}

func walk(ctx context.Context, src entrySource, cfg config) ([]ffi.Item, error) {
	w := &walker{src: src, cfg: cfg}

	for {
		if err := context.Cause(ctx); err != nil {
			return nil, err
		}

		e, err := w.next()
		if err != nil {
			return nil, err
		}

		if e == nil {
			return w.items, nil
		}

		if err := w.unit(ctx, e); err != nil {
			return nil, err
		}
	}
}

func (w *walker) next() (*dwarf.Entry, error) {
	e, err := w.src.Next()
	if err != nil {
		return nil, ErrRead.Wrap(err)
	}

	return e, nil
}

func (w *walker) skip(e *dwarf.Entry) {
	if e.Children {
		w.src.SkipChildren()
	}
}

func (w *walker) unit(ctx context.Context, e *dwarf.Entry) error {
	name, _ := str(e, dwarf.AttrName)

	if e.Tag != dwarf.TagCompileUnit {
		w.cfg.logger.DebugContext(ctx, "skipping unit",
			slog.String("tag", e.Tag.String()),
			slog.String("name", name),
		)
		w.skip(e)

		return nil
	}

	lang, _ := e.Val(dwarf.AttrLanguage).(int64)
	if lang != langRust && !w.cfg.allLanguages {
		w.cfg.logger.WarnContext(ctx, "compile unit is not Rust",
			slog.String("name", name),
			slog.Int64("language", lang),
		)
		w.skip(e)

		return nil
	}

	w.cfg.logger.TraceContext(ctx, "compile unit", slog.String("name", name))

	if !e.Children {
		return nil
	}

	return w.children(ctx, nil)
}

// children handles every child of the last entry read, descending with the
// module path. Only read errors stop the walk.
func (w *walker) children(ctx context.Context, path []string) error {
	for {
		e, err := w.next()
		if err != nil {
			return err
		}

		if e == nil || e.Tag == 0 {
			return nil
		}

		err = w.node(ctx, e, path)

		switch {
		case err == nil:
		case errors.Is(err, ErrRead):
			return err
		default:
			w.cfg.logger.WarnContext(ctx, "skipping debug entry",
				slog.Any("error", err),
			)
		}
	}
}

// each calls fn for every child of the last entry read and skips their
// descendants. The first error from fn is returned once all children are
// consumed.
func (w *walker) each(fn func(*dwarf.Entry) error) error {
	var first error

	for {
		e, err := w.next()
		if err != nil {
			return err
		}

		if e == nil || e.Tag == 0 {
			return first
		}

		if err := fn(e); err != nil && first == nil {
			first = err
		}

		w.skip(e)
	}
}

func (w *walker) node(ctx context.Context, e *dwarf.Entry, path []string) error {
	var (
		it  ffi.Item
		err error
	)

	switch e.Tag {
	case dwarf.TagNamespace:
		name, _ := str(e, dwarf.AttrName)
		if name != "" {
			path = append(path[:len(path):len(path)], name)
		}

		if !e.Children {
			return nil
		}

		return w.children(ctx, path)

	case dwarf.TagSubprogram:
		if it, err = function(e, path); err == nil && e.Children {
			err = w.each(func(c *dwarf.Entry) error {
				if c.Tag != dwarf.TagFormalParameter {
					w.unsupported(ctx, c)

					return nil
				}

				a, err := argument(c)
				if err == nil {
					it.Arguments = append(it.Arguments, a)
				}

				return err
			})
		} else {
			w.skip(e)
		}

	case dwarf.TagBaseType:
		it, err = baseType(e, path)
		w.skip(e)

	case dwarf.TagPointerType:
		it, err = pointerType(e, path)
		w.skip(e)

	case dwarf.TagStructType:
		if it, err = structure(e, path); err == nil && e.Children {
			err = w.each(func(c *dwarf.Entry) error {
				if c.Tag != dwarf.TagMember {
					w.unsupported(ctx, c)

					return nil
				}

				m, err := member(c)
				if err == nil {
					it.Members = append(it.Members, m)
				}

				return err
			})
		} else {
			w.skip(e)
		}

	default:
		w.cfg.logger.DebugContext(ctx, "unsupported tag",
			slog.String("tag", e.Tag.String()),
			slog.String("offset", offset(e)),
		)

		return w.dump(ctx, e, 0)
	}

	switch {
	case errors.Is(err, errSkip):
		return nil
	case errors.Is(err, ErrRead):
		return err
	case err != nil:
		return ErrEntry.Wrap(err).With(
			slog.String("tag", e.Tag.String()),
			slog.String("offset", offset(e)),
			slog.String("module", strings.Join(path, "::")),
		)
	}

	w.items = append(w.items, it)

	return nil
}

func (w *walker) unsupported(ctx context.Context, e *dwarf.Entry) {
	w.cfg.logger.TraceContext(ctx, "unsupported child tag",
		slog.String("tag", e.Tag.String()),
		slog.String("offset", offset(e)),
	)
}

// dump traces e and its descendants when trace logging is enabled and skips
// them otherwise.
func (w *walker) dump(ctx context.Context, e *dwarf.Entry, depth int) error {
	if !w.cfg.logger.Enabled(ctx, log.LevelTrace) {
		w.skip(e)

		return nil
	}

	attrs := make([]slog.Attr, 0, len(e.Field)+2)
	attrs = append(attrs,
		slog.String("offset", offset(e)),
		slog.Int("depth", depth),
	)

	for _, f := range e.Field {
		attrs = append(attrs, slog.String(f.Attr.String(), fmt.Sprint(f.Val)))
	}

	w.cfg.logger.TraceContext(ctx, e.Tag.String(), attrs...)

	if !e.Children {
		return nil
	}

	for {
		c, err := w.next()
		if err != nil {
			return err
		}

		if c == nil || c.Tag == 0 {
			return nil
		}

		if err := w.dump(ctx, c, depth+1); err != nil {
			return err
		}
	}
}

func offset(e *dwarf.Entry) string { return fmt.Sprintf("0x%x", uint64(e.Offset)) }
