package debuginfo

import (
	"regexp"
	"slices"
	"strings"

	"github.com/ianlancetaylor/demangle"
)

// runtimePrefixes select demangled names that belong to the Rust standard
// library, its dependencies, or trait implementations.
var runtimePrefixes = []string{
	"alloc::",
	"backtrace::",
	"compiler_builtins::",
	"core::",
	"libc::",
	"panic_unwind::",
	"rust_",
	"rustc_demangle::",
	"std::",
	"<",
	"__",
}

// rustHash matches the disambiguating hash of a legacy Rust symbol.
var rustHash = regexp.MustCompile(`::h[0-9a-f]{16}$`)

// Demangle returns the demangled form of a linkage name without its symbol
// hash. Names that are not mangled are returned unchanged.
func Demangle(name string) string {
	return rustHash.ReplaceAllLiteralString(demangle.Filter(name), "")
}

// IsRuntime reports whether a demangled name belongs to a language runtime.
func IsRuntime(name string) bool {
	return slices.ContainsFunc(runtimePrefixes, func(p string) bool {
		return strings.HasPrefix(name, p)
	})
}
