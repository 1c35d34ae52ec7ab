package ffi

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/ffins/ns"
)

// Descriptors converts items to namespace descriptors in item order. Each
// payload is a pointer into items.
func Descriptors(items []Item) ns.Descriptors {
	descs := make(ns.Descriptors, len(items))
	for i := range items {
		it := &items[i]
		descs[i] = ns.NewDescriptor(it.LeafName(), it, it.Module...)
	}

	return descs
}

// Build assembles the namespace of items.
func Build(ctx context.Context, items []Item, opts ...ns.Option) (*ns.Root, error) {
	return ns.Build(ctx, Descriptors(items), opts...)
}

// LogValue implements slog.LogValuer.
func (it *Item) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", string(it.Kind)),
		slog.Uint64("offset", it.Offset),
		slog.String("name", it.LeafName()),
		slog.String("module", strings.Join(it.Module, "::")),
	)
}

// Table indexes items by their debug-information offset.
type Table map[uint64]*Item

// Index returns a table of items. Later items replace earlier ones at the
// same offset.
func Index(items []Item) Table {
	t := make(Table, len(items))
	for i := range items {
		t[items[i].Offset] = &items[i]
	}

	return t
}

// TypeName returns the name of the type at offset, rendering pointers
// recursively. Unknown offsets are rendered as a bracketed hex reference.
func (t Table) TypeName(offset uint64) string {
	return t.typeName(offset, 0)
}

// maxDepth bounds pointer chains so that cyclic references terminate.
const maxDepth = 16

func (t Table) typeName(offset uint64, depth int) string {
	it, ok := t[offset]
	if !ok || depth > maxDepth {
		return ref(offset)
	}

	if it.Kind == KindPointerType {
		if it.Name != "" {
			return it.Name
		}

		if it.Type == nil {
			return "*()"
		}

		return "*" + t.typeName(*it.Type, depth+1)
	}

	if name := it.LeafName(); name != "" {
		return name
	}

	return ref(offset)
}

// Signature renders a function item with its parameter and return types
// resolved through t, e.g. "divmod(n: i32, d: i32) -> DivMod". Non-function
// items are rendered with [Item.String].
func (t Table) Signature(it *Item) string {
	if it.Kind != KindFunction {
		return it.String()
	}

	var b strings.Builder

	b.WriteString(it.LeafName())
	b.WriteByte('(')

	for i, a := range it.Arguments {
		if i > 0 {
			b.WriteString(", ")
		}

		if a.Name != "" {
			b.WriteString(a.Name)
			b.WriteString(": ")
		}

		b.WriteString(t.TypeName(a.Type))
	}

	b.WriteByte(')')

	if it.Return != nil {
		b.WriteString(" -> ")
		b.WriteString(t.TypeName(*it.Return))
	}

	return b.String()
}
