package debuginfo

import "github.com/ardnew/ffins/ns"

var (
	ErrNotFound    = ns.NewError("shared object not found")
	ErrNotELF      = ns.NewError("not an ELF object")
	ErrNoDebugInfo = ns.NewError("no debug information")
	ErrRead        = ns.NewError("malformed debug information")
	ErrEntry       = ns.NewError("invalid debug entry")
)
