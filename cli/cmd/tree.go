package cmd

import "context"

// Tree renders the namespace of a source as a tree.
type Tree struct {
	Source string `arg:"" default:"-" help:"Shared object or ffi_values document, '-' for stdin." name:"source"`
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	root, _, err := loaderFrom(ctx).Load(ctx, t.Source)
	if err != nil {
		return err
	}

	return root.FormatTree(ctx, stdoutFrom(ctx))
}
