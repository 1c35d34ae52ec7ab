// Package ffi models the symbols and types exported by a shared object and
// serializes them as an ffi_values document.
//
// An ffi_values document is a list of [offset, item] pairs, where offset is
// the position of the item's entry in the object's debug information and item
// is a record tagged by "kind":
//
//	[
//	  [42, {"kind": "base_type", "module": [], "name": "i32", "size": 4, "encoding": "signed_int"}],
//	  [97, {"kind": "function", "module": ["example"], "name": "add",
//	        "linkage_name": "add", "full_name": "example::add",
//	        "ret_type_index": 42,
//	        "arguments": [{"name": "a", "type": 42}, {"name": "b", "type": 42}]}]
//	]
//
// Items become namespace descriptors with [Descriptors]; type references are
// resolved with a [Table].
package ffi
