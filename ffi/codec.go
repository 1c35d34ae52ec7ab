package ffi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/ffins/ns"
)

// ErrDecode is returned when an ffi_values document is malformed.
var ErrDecode = ns.NewError("invalid ffi_values document")

// Format is a serialization of the ffi_values document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats returns the supported formats.
func Formats() []string { return []string{string(FormatJSON), string(FormatYAML)} }

// Encode writes items to w as an ffi_values document: a list of
// [offset, item] pairs in item order.
//
// A positive indent selects multi-line output.
func Encode(
	ctx context.Context,
	w io.Writer,
	items []Item,
	format Format,
	indent int,
) error {
	pairs := make([][]any, len(items))
	for i := range items {
		pairs[i] = []any{items[i].Offset, &items[i]}
	}

	switch format {
	case FormatJSON, "":
		return ns.WriteJSON(w, pairs, indent)
	case FormatYAML:
		return ns.WriteYAML(ctx, w, pairs, indent)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// Decode reads an ffi_values document from r. JSON and YAML are both
// accepted. The document may also be an object holding the list under
// [ns.ReservedKey].
func Decode(ctx context.Context, r io.Reader) ([]Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := yaml.UnmarshalContext(ctx, data, &doc); err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	if m, ok := doc.(map[string]any); ok {
		if doc, ok = m[ns.ReservedKey]; !ok {
			return nil, ErrDecode.With(
				slog.String("detail", "object has no "+ns.ReservedKey+" member"),
			)
		}
	}

	list, ok := doc.([]any)
	if !ok {
		if doc == nil {
			return nil, nil
		}

		return nil, ErrDecode.With(
			slog.String("detail", "expected a list of [offset, item] pairs"),
		)
	}

	items := make([]Item, 0, len(list))

	for i, elem := range list {
		it, err := decodePair(ctx, elem)
		if err != nil {
			return nil, ErrDecode.Wrap(err).With(slog.Int("index", i))
		}

		items = append(items, it)
	}

	return items, nil
}

func decodePair(ctx context.Context, elem any) (Item, error) {
	var it Item

	pair, ok := elem.([]any)
	if !ok || len(pair) != 2 {
		return it, fmt.Errorf("expected [offset, item] pair, got %T", elem)
	}

	offset, err := toOffset(pair[0])
	if err != nil {
		return it, err
	}

	raw, err := yaml.MarshalContext(ctx, pair[1])
	if err != nil {
		return it, err
	}

	if err := yaml.UnmarshalContext(ctx, raw, &it); err != nil {
		return it, err
	}

	it.Offset = offset

	if !it.Kind.Valid() {
		return it, fmt.Errorf("unknown kind %q", it.Kind)
	}

	if it.LeafName() == "" {
		return it, fmt.Errorf("%s at offset %d has no name", it.Kind, offset)
	}

	if slices.Contains(it.Module, "") {
		return it, fmt.Errorf(
			"%s %q has an empty module segment in %q",
			it.Kind, it.LeafName(), strings.Join(it.Module, "::"),
		)
	}

	return it, nil
}

func toOffset(v any) (uint64, error) {
	switch n := v.(type) {
	case uint64:
		return n, nil
	case int:
		if n >= 0 {
			return uint64(n), nil
		}
	case int64:
		if n >= 0 {
			return uint64(n), nil
		}
	case float64:
		if n >= 0 && n <= math.MaxUint64 && n == math.Trunc(n) {
			return uint64(n), nil
		}
	}

	return 0, fmt.Errorf("invalid offset %v", v)
}
