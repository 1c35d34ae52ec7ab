package repl

import (
	"testing"

	"github.com/ardnew/ffins/ffi"
	"github.com/ardnew/ffins/ns"
)

func ptr(n uint64) *uint64 { return &n }

// newEvaluator builds the namespace
//
//	i32
//	example.math.add(a: i32, b: i32) -> i32
//	example.DivMod
func newEvaluator(t *testing.T) evaluator {
	t.Helper()

	items := []ffi.Item{
		{Offset: 1, Kind: ffi.KindBaseType, Name: "i32", Size: 4, Encoding: ffi.EncodingSignedInt},
		{
			Offset:      2,
			Kind:        ffi.KindFunction,
			Module:      []string{"example", "math"},
			Name:        "add",
			LinkageName: "example_add",
			Return:      ptr(1),
			Arguments:   []ffi.Argument{{Name: "a", Type: 1}, {Name: "b", Type: 1}},
		},
		{
			Offset:    3,
			Kind:      ffi.KindStructure,
			Module:    []string{"example"},
			Name:      "DivMod",
			Size:      8,
			Alignment: 4,
			Members: []ffi.Member{
				{Name: "quot", Type: 1, Offset: 0, Alignment: 4},
				{Name: "rem", Type: 1, Offset: 4, Alignment: 4},
			},
		},
	}

	root, err := ffi.Build(t.Context(), items, ns.WithName("example"))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	return evaluator{root: root, table: ffi.Index(items)}
}
