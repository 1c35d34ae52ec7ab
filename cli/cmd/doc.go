// Package cmd implements the ffins subcommands.
//
// Every command except init reads one source: a shared object with DWARF
// debug information, or an ffi_values document (JSON or YAML). The source "-"
// reads standard input. Sources that are not files are looked up in the
// library search path.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
