package ffi

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the variant of an [Item].
type Kind string

const (
	KindFunction    Kind = "function"
	KindBaseType    Kind = "base_type"
	KindPointerType Kind = "pointer_type"
	KindStructure   Kind = "structure"
)

// Valid reports whether k is a defined kind.
func (k Kind) Valid() bool {
	switch k {
	case KindFunction, KindBaseType, KindPointerType, KindStructure:
		return true
	}

	return false
}

// Encoding classifies the values of a base type.
type Encoding string

const (
	EncodingUnsignedInt Encoding = "unsigned_int"
	EncodingSignedInt   Encoding = "signed_int"
	EncodingFloat       Encoding = "float"
	EncodingChar        Encoding = "char"
	EncodingBool        Encoding = "bool"
	EncodingNever       Encoding = "never"
	EncodingUnit        Encoding = "unit"
)

// Item is one symbol or type extracted from a shared object's debug
// information.
//
// Which fields are meaningful depends on Kind:
//
//   - function: LinkageName, FullName, Return and Arguments
//   - base_type: Size and Encoding
//   - pointer_type: Type
//   - structure: Size, Alignment and Members
//
// Type references (Return, Type, Argument.Type, Member.Type) are the
// debug-information offsets of other items; see [Table].
// Fields are declared in document order.
type Item struct {
	Kind        Kind       `json:"kind"                     yaml:"kind"`
	Module      []string   `json:"module"                   yaml:"module"`
	Name        string     `json:"name"                     yaml:"name"`
	LinkageName string     `json:"linkage_name,omitempty"   yaml:"linkage_name,omitempty"`
	FullName    string     `json:"full_name,omitempty"      yaml:"full_name,omitempty"`
	Return      *uint64    `json:"ret_type_index,omitempty" yaml:"ret_type_index,omitempty"`
	Arguments   []Argument `json:"arguments,omitempty"      yaml:"arguments,omitempty"`
	Size        uint64     `json:"size,omitempty"           yaml:"size,omitempty"`
	Encoding    Encoding   `json:"encoding,omitempty"       yaml:"encoding,omitempty"`
	Type        *uint64    `json:"type_index,omitempty"     yaml:"type_index,omitempty"`
	Alignment   uint64     `json:"alignment,omitempty"      yaml:"alignment,omitempty"`
	Members     []Member   `json:"members,omitempty"        yaml:"members,omitempty"`
	Offset      uint64     `json:"-"                        yaml:"-"`
}

// Argument is a formal parameter of a function.
type Argument struct {
	Name string `json:"name" yaml:"name"`
	Type uint64 `json:"type" yaml:"type"`
}

// Member is a field of a structure.
type Member struct {
	Name      string `json:"name"      yaml:"name"`
	Type      uint64 `json:"type"      yaml:"type"`
	Offset    uint64 `json:"offset"    yaml:"offset"`
	Alignment uint64 `json:"alignment" yaml:"alignment"`
}

// LeafName returns the name the item is bound to in a namespace.
//
// Functions without a source name fall back to the last segment of their
// demangled name, then to their linkage name.
func (it *Item) LeafName() string {
	if it.Name != "" {
		return it.Name
	}

	if it.FullName != "" {
		if i := strings.LastIndex(it.FullName, "::"); i >= 0 {
			return it.FullName[i+2:]
		}

		return it.FullName
	}

	return it.LinkageName
}

// String summarizes the item on one line.
func (it *Item) String() string {
	switch it.Kind {
	case KindFunction:
		args := make([]string, len(it.Arguments))
		for i, a := range it.Arguments {
			args[i] = a.Name
		}

		s := "fn(" + strings.Join(args, ", ") + ")"
		if it.Return != nil {
			s += " -> " + ref(*it.Return)
		}

		return s

	case KindBaseType:
		return fmt.Sprintf("%s, %d bytes", it.Encoding, it.Size)

	case KindPointerType:
		if it.Type == nil {
			return "pointer"
		}

		return "pointer to " + ref(*it.Type)

	case KindStructure:
		return fmt.Sprintf("struct, %d bytes, %d members", it.Size, len(it.Members))

	default:
		return string(it.Kind)
	}
}

// Fields returns the attributes of the item by their serialized names.
// Absent type references are nil.
func (it *Item) Fields() map[string]any {
	f := map[string]any{
		"kind":   string(it.Kind),
		"offset": it.Offset,
	}

	switch it.Kind {
	case KindFunction:
		args := make([]map[string]any, len(it.Arguments))
		for i, a := range it.Arguments {
			args[i] = map[string]any{"name": a.Name, "type": a.Type}
		}

		f["linkage_name"] = it.LinkageName
		f["full_name"] = it.FullName
		f["ret_type_index"] = optional(it.Return)
		f["arguments"] = args
		f["arity"] = len(it.Arguments)

	case KindBaseType:
		f["size"] = it.Size
		f["encoding"] = string(it.Encoding)

	case KindPointerType:
		f["type_index"] = optional(it.Type)

	case KindStructure:
		members := make([]map[string]any, len(it.Members))
		for i, m := range it.Members {
			members[i] = map[string]any{
				"name":      m.Name,
				"type":      m.Type,
				"offset":    m.Offset,
				"alignment": m.Alignment,
			}
		}

		f["size"] = it.Size
		f["alignment"] = it.Alignment
		f["members"] = members
	}

	return f
}

func optional(p *uint64) any {
	if p == nil {
		return nil
	}

	return *p
}

func ref(offset uint64) string { return "<0x" + strconv.FormatUint(offset, 16) + ">" }
