package ffi

import (
	"strings"
	"testing"

	"github.com/ardnew/ffins/ns"
)

func ptr(n uint64) *uint64 { return &n }

func TestItem_LeafName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		item Item
		want string
	}{
		{name: "name", item: Item{Name: "add", FullName: "m::other"}, want: "add"},
		{name: "full name", item: Item{FullName: "example::math::add"}, want: "add"},
		{name: "unqualified", item: Item{FullName: "add"}, want: "add"},
		{name: "linkage name", item: Item{LinkageName: "add_v2"}, want: "add_v2"},
		{name: "none", item: Item{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.item.LeafName(); got != tt.want {
				t.Errorf("LeafName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescriptors(t *testing.T) {
	t.Parallel()

	items := []Item{
		{Kind: KindFunction, Module: []string{"a", "b"}, FullName: "a::b::f"},
		{Kind: KindBaseType, Name: "u8"},
	}

	descs := Descriptors(items)
	if len(descs) != 2 {
		t.Fatalf("Descriptors() returned %d, want 2", len(descs))
	}

	if got := descs[0].String(); got != "a.b.f" {
		t.Errorf("descs[0] = %q, want a.b.f", got)
	}

	if descs[1].Payload != &items[1] {
		t.Error("payload does not point into items")
	}
}

func TestTable_Signature(t *testing.T) {
	t.Parallel()

	items := []Item{
		{Offset: 1, Kind: KindBaseType, Name: "i32", Size: 4, Encoding: EncodingSignedInt},
		{Offset: 2, Kind: KindStructure, Name: "DivMod", Size: 8},
		{Offset: 3, Kind: KindPointerType, Type: ptr(2)},
		{Offset: 4, Kind: KindPointerType, Name: "*const u8", Type: ptr(99)},
		{Offset: 5, Kind: KindPointerType, Type: ptr(5)},
		{
			Offset: 10,
			Kind:   KindFunction,
			Name:   "divmod",
			Return: ptr(2),
			Arguments: []Argument{
				{Name: "n", Type: 1},
				{Name: "d", Type: 1},
			},
		},
		{
			Offset:    11,
			Kind:      KindFunction,
			Name:      "touch",
			Arguments: []Argument{{Name: "p", Type: 3}, {Type: 4}, {Type: 77}},
		},
	}

	table := Index(items)

	tests := []struct {
		offset uint64
		want   string
	}{
		{offset: 10, want: "divmod(n: i32, d: i32) -> DivMod"},
		{offset: 11, want: "touch(p: *DivMod, *const u8, <0x4d>)"},
		{offset: 1, want: "signed_int, 4 bytes"},
	}

	for _, tt := range tests {
		if got := table.Signature(table[tt.offset]); got != tt.want {
			t.Errorf("Signature(%d) = %q, want %q", tt.offset, got, tt.want)
		}
	}

	if got := table.TypeName(5); len(got) == 0 || got[0] != '*' {
		t.Errorf("TypeName(cycle) = %q, want pointer chain", got)
	}
}

func TestItem_Fields(t *testing.T) {
	t.Parallel()

	fn := Item{
		Offset:    9,
		Kind:      KindFunction,
		Name:      "f",
		Arguments: []Argument{{Name: "x", Type: 1}},
	}

	f := fn.Fields()
	if f["kind"] != "function" || f["arity"] != 1 || f["offset"] != uint64(9) {
		t.Errorf("Fields() = %v", f)
	}

	if f["ret_type_index"] != nil {
		t.Errorf("ret_type_index = %v, want nil", f["ret_type_index"])
	}

	st := Item{Kind: KindStructure, Size: 16, Members: []Member{{Name: "a"}}}
	if f := st.Fields(); f["size"] != uint64(16) {
		t.Errorf("Fields()[size] = %v, want 16", f["size"])
	}
}

func TestItem_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		item Item
		want string
	}{
		{
			item: Item{Kind: KindFunction, Arguments: []Argument{{Name: "a"}, {Name: "b"}}, Return: ptr(31)},
			want: "fn(a, b) -> <0x1f>",
		},
		{item: Item{Kind: KindPointerType, Type: ptr(16)}, want: "pointer to <0x10>"},
		{item: Item{Kind: KindStructure, Size: 8, Members: make([]Member, 2)}, want: "struct, 8 bytes, 2 members"},
	}

	for _, tt := range tests {
		if got := tt.item.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTable_Describe(t *testing.T) {
	t.Parallel()

	items := []Item{
		{Offset: 1, Kind: KindBaseType, Name: "i32", Size: 4, Encoding: EncodingSignedInt},
		{Offset: 2, Kind: KindFunction, Module: []string{"m"}, Name: "f", Return: ptr(1)},
		{Offset: 3, Kind: KindFunction, Module: []string{"m", "n"}, Name: "g"},
	}

	root, err := Build(t.Context(), items)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	table := Index(items)

	m, err := root.Lookup("m")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	if got, want := table.Describe(m), "f\tfunction f() -> i32\nn\t{1}\n"; got != want {
		t.Errorf("Describe(container) = %q, want %q", got, want)
	}

	f, err := root.Lookup("m.f")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	if got, want := table.Describe(f), "m.f\tfunction f() -> i32\n"; got != want {
		t.Errorf("Describe(descriptor) = %q, want %q", got, want)
	}

	all, err := root.Resolve(ns.ReservedKey)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got := table.Describe(all); strings.Count(got, "\n") != 3 {
		t.Errorf("Describe(descriptors) = %q, want 3 lines", got)
	}
}
