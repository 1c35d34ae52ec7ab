// Package debuginfo extracts [ffi.Item] values from the DWARF debug
// information of an ELF shared object.
//
// Each compile unit is walked depth-first. Namespaces contribute module
// segments; exported subprograms, base types, pointer types and structures
// become items. Compile units not written in Rust are skipped unless
// [WithAllLanguages] is given. An entry that cannot be decoded is logged and
// skipped without stopping the walk.
package debuginfo
