package ns

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Build constructs a namespace tree from descs and returns its facade.
//
// Descriptors are inserted in order. Intermediate containers are created for
// each module path segment that is not yet bound. Build fails with an error
// matching [ErrDuplicateName] when a descriptor's name is already bound in its
// module, or when a module path segment is already bound to a descriptor; the
// first binding always wins. No facade is returned when Build fails.
//
// Build checks ctx between descriptors and returns its cause once done.
func Build(
	ctx context.Context,
	descs []*Descriptor,
	opts ...Option,
) (*Root, error) {
	cfg := makeConfig(opts...)
	tree := NewContainer()

	cfg.logger.TraceContext(ctx, "namespace build start",
		slog.String("name", cfg.name),
		slog.Int("descriptors", len(descs)),
	)

	for i, d := range descs {
		if err := context.Cause(ctx); err != nil {
			return nil, err
		}

		if err := insert(tree, d); err != nil {
			cfg.logger.DebugContext(ctx, "namespace build failed",
				slog.Int("index", i),
				slog.Any("error", err),
			)

			return nil, err
		}

		if len(d.ModulePath) == 0 && d.Name == ReservedKey {
			cfg.logger.WarnContext(ctx, "descriptor shadowed by reserved key",
				slog.String("name", d.Name),
			)
		}
	}

	cfg.logger.DebugContext(ctx, "namespace built",
		slog.String("name", cfg.name),
		slog.Int("descriptors", len(descs)),
		slog.Int("roots", tree.Len()),
	)

	list := make(Descriptors, len(descs))
	copy(list, descs)

	return &Root{name: cfg.name, tree: tree, descs: list}, nil
}

func insert(root *Container, d *Descriptor) error {
	if d == nil {
		return ErrInvalidDescriptor.With(
			slog.String(detailKey, "nil descriptor"),
		)
	}

	cur := root

	for i, seg := range d.ModulePath {
		v, ok := cur.vals[seg]
		if !ok {
			next := NewContainer()
			cur.Set(seg, next)
			cur = next

			continue
		}

		next, ok := v.(*Container)
		if !ok {
			return duplicate(seg, d.ModulePath[:i], v, d)
		}

		cur = next
	}

	if v, ok := cur.vals[d.Name]; ok {
		return duplicate(d.Name, d.ModulePath, v, d)
	}

	cur.Set(d.Name, d)

	return nil
}

func duplicate(name string, module []string, existing Value, d *Descriptor) error {
	detail := fmt.Sprintf("duplicate name %q", name)
	if len(module) > 0 {
		detail += fmt.Sprintf(" in module %q", strings.Join(module, Separator))
	}

	return ErrDuplicateName.With(
		slog.String(detailKey, detail),
		slog.String("name", name),
		slog.String("module", strings.Join(module, Separator)),
		slog.Any("existing", existing),
		slog.Any("descriptor", d),
	)
}
