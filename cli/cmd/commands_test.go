package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/ffins/ffi"
	"github.com/ardnew/ffins/ns"
)

// runner is satisfied by every command that reads a source.
type runner interface {
	Run(ctx context.Context) error
}

// run executes c with the sample document on standard input and returns what
// it wrote to standard output.
func run(t *testing.T, c runner) (string, error) {
	t.Helper()

	return runInput(t, c, sampleDoc)
}

// runInput is run with input on standard input.
func runInput(t *testing.T, c runner, input string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	ctx := WithStdio(t.Context(), strings.NewReader(input), &out)
	ctx = WithLoader(ctx, Loader{Name: "sample"})

	err := c.Run(ctx)

	return out.String(), err
}

func TestDump(t *testing.T) {
	t.Parallel()

	for _, format := range []string{formatJSON, formatYAML} {
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			out, err := run(t, &Dump{Format: format, Indent: 2, Source: stdinSource})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			items, err := ffi.Decode(t.Context(), strings.NewReader(out))
			if err != nil {
				t.Fatalf("Decode(dump) error = %v\n%s", err, out)
			}

			if len(items) != 3 || items[2].Offset != 120 || items[2].Name != "*const i32" {
				t.Errorf("dump round trip = %+v", items)
			}
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		path   string
		format string
		want   string
	}{
		{
			name:   "function text",
			path:   "example.add",
			format: formatText,
			want:   "example.add\tfunction add(a: i32, b: i32) -> i32\n",
		},
		{
			name:   "module text",
			path:   "example",
			format: formatText,
			want:   "add\tfunction add(a: i32, b: i32) -> i32\n",
		},
		{
			name:   "pointer text",
			path:   "*const i32",
			format: formatText,
			want:   "*const i32\tpointer_type pointer to <0x2a>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := run(t, &Get{Format: tt.format, Source: stdinSource, Path: tt.path})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestGet_JSON(t *testing.T) {
	t.Parallel()

	out, err := run(t, &Get{Format: formatJSON, Source: stdinSource, Path: "i32"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var doc struct {
		Payload ffi.Item `json:"payload"`
		Name    string   `json:"name"`
	}

	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}

	if doc.Name != "i32" || doc.Payload.Kind != ffi.KindBaseType ||
		doc.Payload.Size != 4 || doc.Payload.Encoding != ffi.EncodingSignedInt {
		t.Errorf("output = %s", out)
	}
}

func TestGet_EmptyValues(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"null", "[]"} {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			out, err := runInput(t,
				&Get{Format: formatJSON, Source: stdinSource, Path: ns.ReservedKey}, input)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if got := strings.TrimSpace(out); got != "[]" {
				t.Errorf("output = %q, want []", got)
			}
		})
	}
}

func TestGet_Suggestions(t *testing.T) {
	t.Parallel()

	_, err := run(t, &Get{Format: formatText, Source: stdinSource, Path: "example.ad"})
	if !errors.Is(err, ns.ErrKeyNotFound) {
		t.Fatalf("Run() error = %v, want ErrKeyNotFound", err)
	}

	var e *ns.Error
	if !errors.As(err, &e) {
		t.Fatalf("Run() error = %T, want *ns.Error", err)
	}

	if v, ok := e.Attr("suggestions"); !ok || v.String() != "add" {
		t.Errorf("suggestions = %v, %v", v, ok)
	}
}

func TestQuery(t *testing.T) {
	t.Parallel()

	out, err := run(t, &Query{
		Format: formatText,
		Source: stdinSource,
		Expr:   `kind == "function" && arity == 2`,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if want := "example.add\tfunction add(a: i32, b: i32) -> i32\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	if _, err := run(t, &Query{Source: stdinSource, Expr: "kind =="}); !errors.Is(err, ns.ErrQuery) {
		t.Errorf("Run() error = %v, want ErrQuery", err)
	}
}

func TestFmt(t *testing.T) {
	t.Parallel()

	out, err := run(t, &JSON{Indent: 0, Source: stdinSource})
	if err != nil {
		t.Fatalf("JSON.Run() error = %v", err)
	}

	var doc map[string]map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not a JSON object: %v\n%s", err, out)
	}

	if _, ok := doc["example"]["add"]; !ok {
		t.Errorf("output = %s, want example.add", out)
	}

	out, err = run(t, &YAML{Indent: 2, Source: stdinSource})
	if err != nil {
		t.Fatalf("YAML.Run() error = %v", err)
	}

	if !strings.Contains(out, "example:\n  add:\n") {
		t.Errorf("YAML output = %s", out)
	}
}

func TestTree(t *testing.T) {
	t.Parallel()

	out, err := run(t, &Tree{Source: stdinSource})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, want := range []string{"sample", "example", "add", "i32"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree output missing %q:\n%s", want, out)
		}
	}
}

func TestRepl_RejectsStdin(t *testing.T) {
	t.Parallel()

	if _, err := run(t, &Repl{Source: stdinSource}); !errors.Is(err, ErrNoSource) {
		t.Errorf("Run() error = %v, want ErrNoSource", err)
	}
}
