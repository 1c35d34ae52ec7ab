package cmd

import "context"

// Fmt serializes the namespace tree of a source.
type Fmt struct {
	JSON JSON `cmd:"" default:"withargs" help:"Format as JSON (default)."`
	YAML YAML `cmd:""                    help:"Format as YAML."`
}

// JSON writes the namespace tree as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Shared object or ffi_values document, '-' for stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	root, _, err := loaderFrom(ctx).Load(ctx, j.Source)
	if err != nil {
		return err
	}

	if err := root.FormatJSON(ctx, stdoutFrom(ctx), j.Indent); err != nil {
		return ErrJSONMarshal.Wrap(err)
	}

	return nil
}

// YAML writes the namespace tree as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output, 0 for flow style" short:"i"`

	Source string `arg:"" default:"-" help:"Shared object or ffi_values document, '-' for stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	root, _, err := loaderFrom(ctx).Load(ctx, y.Source)
	if err != nil {
		return err
	}

	if err := root.FormatYAML(ctx, stdoutFrom(ctx), y.Indent); err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	return nil
}
