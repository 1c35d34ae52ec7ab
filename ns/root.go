package ns

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// ReservedKey is the identifier that resolves to the flat descriptor list a
// [Root] was built from. It takes precedence over any root binding.
const ReservedKey = "_ffi_values"

// Root is the read-only facade over a built namespace tree.
//
// A Root is immutable and safe for concurrent use.
type Root struct {
	tree  *Container
	name  string
	descs Descriptors
}

// Name returns the facade name used in diagnostics.
func (r *Root) Name() string { return r.name }

// Container returns the root container of the tree.
//
// The container must not be modified.
func (r *Root) Container() *Container { return r.tree }

// Descriptors returns the descriptors r was built from, in input order.
func (r *Root) Descriptors() Descriptors { return slices.Clone(r.descs) }

// Resolve returns the value bound to identifier.
//
// [ReservedKey] resolves to the original descriptor list. Any other
// identifier resolves to its root binding, or fails with an error matching
// [ErrAttributeNotFound] that names the facade and the identifier.
func (r *Root) Resolve(identifier string) (Value, error) {
	if identifier == ReservedKey {
		return r.Descriptors(), nil
	}

	if v, ok := r.tree.vals[identifier]; ok {
		return v, nil
	}

	return nil, ErrAttributeNotFound.With(
		slog.String(detailKey, fmt.Sprintf(
			"module %q has no attribute %q", r.name, identifier,
		)),
		slog.String("module", r.name),
		slog.String("attribute", identifier),
	)
}

// Lookup resolves a dotted path such as "a.b.c".
//
// The first segment is resolved with [Root.Resolve] and each following
// segment with [Container.Get]. Descending into anything other than a
// container fails with an error matching [ErrNotContainer].
func (r *Root) Lookup(path string) (Value, error) {
	segs := strings.Split(path, Separator)

	v, err := r.Resolve(segs[0])
	if err != nil {
		return nil, err
	}

	for i, seg := range segs[1:] {
		c, ok := v.(*Container)
		if !ok {
			return nil, ErrNotContainer.With(
				slog.String("path", strings.Join(segs[:i+1], Separator)),
			)
		}

		if v, err = c.Get(seg); err != nil {
			return nil, ErrKeyNotFound.With(
				slog.String(detailKey, fmt.Sprintf(
					"%q has no member %q", strings.Join(segs[:i+1], Separator), seg,
				)),
				slog.String("key", seg),
				slog.String("path", path),
			)
		}
	}

	return v, nil
}
