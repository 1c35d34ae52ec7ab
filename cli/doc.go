// Package cli contains the command line interface for ffins.
//
// # Sources
//
// Every command except init reads one source: a shared object with DWARF
// debug information or an ffi_values document. A source that is not a file
// path is searched for in the --lib-path directories and then in
// LD_LIBRARY_PATH, trying both the name as given and lib<name>.so:
//
//	ffins tree -L ./target/release mylib
//	ffins get libmylib.so mylib.math.add
//	ffins dump --format=yaml libmylib.so | ffins query - 'kind == "structure"'
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory (for example ~/.config/ffins/config.yaml). Keys are flag names;
// nested mappings are joined with "-":
//
//	log:
//	  level: debug
//	lib-path:
//	  - /opt/mylib/lib
//
// The init command writes the current flag values to that file.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output format (text, json)
//   - --log-time-layout: timestamp layout (RFC3339, Kitchen, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
// It adds --pprof-mode (cpu, heap, mem, ...) and --pprof-dir, which defaults
// to a pprof directory in the user cache directory.
package cli
