package ns

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"testing"
)

func desc(path ...string) *Descriptor {
	return NewDescriptor(path[len(path)-1], path, path[:len(path)-1]...)
}

func TestBuild_AllDescriptorsReachable(t *testing.T) {
	t.Parallel()

	descs := []*Descriptor{
		desc("a", "b", "f"),
		desc("a", "g"),
		desc("h"),
		desc("a", "b", "c", "i"),
	}

	root, err := Build(t.Context(), descs)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for _, d := range descs {
		v, err := root.Lookup(d.String())
		if err != nil {
			t.Errorf("Lookup(%q) error = %v", d, err)

			continue
		}

		if v != d {
			t.Errorf("Lookup(%q) = %v, want %v", d, v, d)
		}
	}
}

func TestBuild_PreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	root, err := Build(t.Context(), []*Descriptor{
		desc("z", "one"),
		desc("a"),
		desc("z", "two"),
		desc("m", "x"),
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got, want := root.Container().Keys(), []string{"z", "a", "m"}; !slices.Equal(got, want) {
		t.Errorf("root keys = %v, want %v", got, want)
	}

	z, _ := root.Resolve("z")
	if got, want := z.(*Container).Keys(), []string{"one", "two"}; !slices.Equal(got, want) {
		t.Errorf("z keys = %v, want %v", got, want)
	}
}

func TestBuild_DuplicateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		descs []*Descriptor
		dup   string
		mod   string
	}{
		{
			name:  "same_leaf",
			descs: []*Descriptor{desc("m", "f"), desc("m", "f")},
			dup:   "f",
			mod:   "m",
		},
		{
			name:  "same_root_leaf",
			descs: []*Descriptor{desc("f"), desc("g"), desc("f")},
			dup:   "f",
			mod:   "",
		},
		{
			name:  "leaf_over_module",
			descs: []*Descriptor{desc("m", "f"), desc("m")},
			dup:   "m",
			mod:   "",
		},
		{
			name:  "module_through_leaf",
			descs: []*Descriptor{desc("a", "m"), desc("a", "m", "f")},
			dup:   "m",
			mod:   "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root, err := Build(t.Context(), tt.descs)
			if !errors.Is(err, ErrDuplicateName) {
				t.Fatalf("Build() error = %v, want %v", err, ErrDuplicateName)
			}

			if root != nil {
				t.Errorf("Build() returned a facade on failure")
			}

			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("Build() error type = %T, want *Error", err)
			}

			if v, _ := e.Attr("name"); v.String() != tt.dup {
				t.Errorf("name attr = %q, want %q", v.String(), tt.dup)
			}

			if v, _ := e.Attr("module"); v.String() != tt.mod {
				t.Errorf("module attr = %q, want %q", v.String(), tt.mod)
			}

			if v, _ := e.Attr("descriptor"); v.Any() != tt.descs[len(tt.descs)-1] {
				t.Errorf("descriptor attr = %v, want the rejected descriptor", v.Any())
			}
		})
	}
}

func TestBuild_DuplicateKeepsFirstRecord(t *testing.T) {
	t.Parallel()

	first := NewDescriptor("f", "first", "m")
	second := NewDescriptor("f", "second", "m")

	_, err := Build(t.Context(), []*Descriptor{first, second})

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("Build() error = %v, want *Error", err)
	}

	if v, _ := e.Attr("existing"); v.Any() != first {
		t.Errorf("existing attr = %v, want first descriptor", v.Any())
	}

	if got, want := err.Error(), `duplicate name "f" in module "m"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestBuild_NilDescriptor(t *testing.T) {
	t.Parallel()

	_, err := Build(t.Context(), []*Descriptor{desc("ok"), nil})
	if !errors.Is(err, ErrInvalidDescriptor) {
		t.Errorf("Build() error = %v, want %v", err, ErrInvalidDescriptor)
	}
}

func TestBuild_EmptyIdentifiers(t *testing.T) {
	t.Parallel()

	unnamed := NewDescriptor("", 1)
	unnamedInM := NewDescriptor("", 2, "m")

	root, err := Build(t.Context(), []*Descriptor{unnamed, unnamedInM})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got, err := root.Resolve(""); err != nil || got != unnamed {
		t.Errorf("Resolve(\"\") = %v, %v, want %v", got, err, unnamed)
	}

	if got, err := root.Lookup("m."); err != nil || got != unnamedInM {
		t.Errorf("Lookup(\"m.\") = %v, %v, want %v", got, err, unnamedInM)
	}

	foo := NewDescriptor("foo", 3, "")
	bar := NewDescriptor("", 4, "")

	root, err = Build(t.Context(), []*Descriptor{foo, bar})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	v, err := root.Resolve("")
	if err != nil {
		t.Fatalf("Resolve(\"\") error = %v", err)
	}

	c, ok := v.(*Container)
	if !ok {
		t.Fatalf("Resolve(\"\") = %T, want *Container", v)
	}

	if got, err := c.Get("foo"); err != nil || got != foo {
		t.Errorf("Get(\"foo\") = %v, %v, want %v", got, err, foo)
	}

	if got, err := c.Get(""); err != nil || got != bar {
		t.Errorf("Get(\"\") = %v, %v, want %v", got, err, bar)
	}
}

func TestBuild_EmptyIdentifierCollisions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		descs []*Descriptor
	}{
		{"two_unnamed", []*Descriptor{NewDescriptor("", 1), NewDescriptor("", 2)}},
		{"unnamed_then_module", []*Descriptor{NewDescriptor("", 1), NewDescriptor("foo", 2, "")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Build(t.Context(), tt.descs)
			if !errors.Is(err, ErrDuplicateName) {
				t.Errorf("Build() error = %v, want %v", err, ErrDuplicateName)
			}
		})
	}
}

func TestBuild_Empty(t *testing.T) {
	t.Parallel()

	root, err := Build(t.Context(), nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if n := root.Container().Len(); n != 0 {
		t.Errorf("root has %d keys, want 0", n)
	}

	v, err := root.Resolve(ReservedKey)
	if err != nil {
		t.Fatalf("Resolve(%q) error = %v", ReservedKey, err)
	}

	list, ok := v.(Descriptors)
	if !ok || list == nil || len(list) != 0 {
		t.Fatalf("Resolve(%q) = %#v, want an empty list", ReservedKey, v)
	}

	data, err := json.Marshal(list)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "[]" {
		t.Errorf("json.Marshal(Resolve(%q)) = %s, want []", ReservedKey, data)
	}
}

func TestBuild_Canceled(t *testing.T) {
	t.Parallel()

	cause := errors.New("stop")

	ctx, cancel := context.WithCancelCause(t.Context())
	cancel(cause)

	_, err := Build(ctx, []*Descriptor{desc("f")})
	if !errors.Is(err, cause) {
		t.Errorf("Build() error = %v, want %v", err, cause)
	}
}

func TestBuild_DoesNotMutateDescriptors(t *testing.T) {
	t.Parallel()

	d := desc("a", "b", "f")
	module := slices.Clone(d.ModulePath)

	if _, err := Build(t.Context(), []*Descriptor{d}); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if !slices.Equal(d.ModulePath, module) || d.Name != "f" {
		t.Errorf("descriptor changed to %v", d)
	}
}
