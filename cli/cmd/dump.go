package cmd

import (
	"context"

	"github.com/ardnew/ffins/ffi"
)

// Dump writes the ffi_values document of a source.
type Dump struct {
	Format string `default:"json" enum:"json,yaml" help:"Output format."                       short:"f"`
	Indent int    `default:"2"                     help:"Indent width, 0 for compact output." short:"i"`

	Source string `arg:"" default:"-" help:"Shared object or ffi_values document, '-' for stdin." name:"source"`
}

// Run executes the dump command.
func (d *Dump) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	items, err := loaderFrom(ctx).Items(ctx, d.Source)
	if err != nil {
		return err
	}

	return ffi.Encode(ctx, stdoutFrom(ctx), items, ffi.Format(d.Format), d.Indent)
}
