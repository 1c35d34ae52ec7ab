// Package pkg holds the identity of the ffins program.
package pkg

import (
	_ "embed"
	"strings"
)

const (
	// Name is the command name. It also names the configuration and cache
	// directories.
	Name = "ffins"

	// Description summarizes the command in help output.
	Description = "Foreign function namespace builder"
)

//go:embed VERSION
var version string

// Version returns the semantic version embedded at build time.
func Version() string { return strings.TrimSpace(version) }
