package cmd

import (
	"context"

	"github.com/ardnew/ffins/cli/cmd/repl"
	"github.com/ardnew/ffins/ffi"
	"github.com/ardnew/ffins/log"
)

// Repl browses the namespace of a source interactively.
type Repl struct {
	Source string `arg:"" help:"Shared object or ffi_values document." name:"source"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if r.Source == stdinSource {
		return ErrNoSource.Wrap(repl.ErrInteractiveStdin)
	}

	root, items, err := loaderFrom(ctx).Load(ctx, r.Source)
	if err != nil {
		return err
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, root, ffi.Index(items), cacheDir, log.Default())
}
