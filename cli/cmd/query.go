package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/ffins/ffi"
	"github.com/ardnew/ffins/log"
)

// Query selects the descriptors of a source for which an expression holds.
//
// The expression sees the item's fields (kind, offset, size, arity, ...)
// along with its name, module and path.
type Query struct {
	Format string `default:"json" enum:"json,yaml,text" help:"Output format."                       short:"f"`
	Indent int    `default:"2"                          help:"Indent width, 0 for compact output." short:"i"`

	Source string `arg:"" help:"Shared object or ffi_values document, '-' for stdin." name:"source"`
	Expr   string `arg:"" help:"Boolean expression, e.g. 'kind == \"function\" && arity > 1'." name:"expr"`
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	root, items, err := loaderFrom(ctx).Load(ctx, q.Source)
	if err != nil {
		return err
	}

	descs, err := root.Select(ctx, q.Expr)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "query selected",
		slog.String("expr", q.Expr),
		slog.Int("count", len(descs)),
	)

	return writeValue(ctx, stdoutFrom(ctx), ffi.Index(items), descs, q.Format, q.Indent)
}
