package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/ffins/ffi"
	"github.com/ardnew/ffins/ns"
)

// Output formats.
const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

// write encodes v to w in the given format.
func write(ctx context.Context, w io.Writer, v any, format string, indent int) error {
	switch format {
	case formatYAML:
		if err := ns.WriteYAML(ctx, w, v, indent); err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

	default:
		if err := ns.WriteJSON(w, v, indent); err != nil {
			return ErrJSONMarshal.Wrap(err)
		}
	}

	return nil
}

// writeValue writes a namespace value in the given format. The text format
// describes it with table.
func writeValue(
	ctx context.Context,
	w io.Writer,
	table ffi.Table,
	v ns.Value,
	format string,
	indent int,
) error {
	if format == formatText {
		_, err := io.WriteString(w, table.Describe(v))

		return err
	}

	return write(ctx, w, v, format, indent)
}

// suggest adds the closest names to a failed lookup of path in root.
func suggest(root *ns.Root, path string, err error) error {
	var e *ns.Error
	if !errors.As(err, &e) {
		return err
	}

	names := root.SuggestPath(path)
	if len(names) == 0 {
		return err
	}

	return e.With(slog.String("suggestions", strings.Join(names, ", ")))
}
