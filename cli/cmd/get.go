package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/ffins/ffi"
	"github.com/ardnew/ffins/log"
)

// Get resolves a dotted path in the namespace of a source.
type Get struct {
	Format string `default:"json" enum:"json,yaml,text" help:"Output format."                       short:"f"`
	Indent int    `default:"2"                          help:"Indent width, 0 for compact output." short:"i"`

	Source string `arg:"" help:"Shared object or ffi_values document, '-' for stdin." name:"source"`
	Path   string `arg:"" help:"Dotted path to resolve, or _ffi_values for every item." name:"path"`
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	root, items, err := loaderFrom(ctx).Load(ctx, g.Source)
	if err != nil {
		return err
	}

	v, err := root.Lookup(g.Path)
	if err != nil {
		return suggest(root, g.Path, err)
	}

	log.TraceContext(ctx, "resolved", slog.String("path", g.Path))

	return writeValue(ctx, stdoutFrom(ctx), ffi.Index(items), v, g.Format, g.Indent)
}
