package cmd

import "github.com/ardnew/ffins/ns"

var (
	ErrJSONMarshal = ns.NewError("marshal JSON")
	ErrYAMLMarshal = ns.NewError("marshal YAML")
	ErrWriteConfig = ns.NewError("write configuration file")
	ErrFileExists  = ns.NewError("file exists (use --force to overwrite)")
	ErrLoad        = ns.NewError("load source")
	ErrNoSource    = ns.NewError("no source")
)
