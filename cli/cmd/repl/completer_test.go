package repl

import (
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/ffins/log"
	"github.com/ardnew/ffins/ns"
)

func TestWordBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"dot_separated", "bar.baz", 7, "baz", 4, 7},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_minus", "a-fo", 4, "fo", 2, 4},
		{"after_paren", "len(fo", 6, "fo", 4, 6},
		{"after_comma", "max(a, fo", 9, "fo", 7, 9},
		{"after_query_prefix", "?ki", 3, "ki", 1, 3},
		{"after_comparison", "a > fo", 6, "fo", 4, 6},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		{"underscore", "example.div_mod", 15, "div_mod", 8, 15},
		{"cursor_past_end", "foo", 10, "foo", 0, 3},
		{"empty_after_dot", "example.", 8, "", 8, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestParentPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wordStart int
		want      string
	}{
		{"top_level", "fo", 0, ""},
		{"simple_chain", "bar.baz.", 8, "bar.baz"},
		{"after_operator", "foo + bar.baz.", 14, "bar.baz"},
		{"after_paren", "(bar.baz.", 9, "bar.baz"},
		{"no_chain", "a + ", 4, ""},
		{"deep_chain", "a.b.c.", 6, "a.b.c"},
		{"after_equals", "x = a.b.", 8, "a.b"},
		{"partial_word", "example.ma", 8, "example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := parentPath(tt.input, tt.wordStart); got != tt.want {
				t.Errorf("parentPath(%q, %d) = %q, want %q",
					tt.input, tt.wordStart, got, tt.want)
			}
		})
	}
}

func TestChildCandidates(t *testing.T) {
	t.Parallel()

	root := newEvaluator(t).root

	tests := []struct {
		name   string
		parent string
		query  bool
		want   []string
	}{
		{name: "root", want: []string{"i32", "example", ns.ReservedKey}},
		{name: "module", parent: "example", want: []string{"math", "DivMod"}},
		{name: "nested", parent: "example.math", want: []string{"add"}},
		{name: "leaf", parent: "i32"},
		{name: "unbound", parent: "missing"},
		{name: "query member", parent: "name", query: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := childCandidates(root, tt.parent, tt.query)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("childCandidates(%q) mismatch (-want +got):\n%s", tt.parent, diff)
			}
		})
	}
}

func TestChildCandidates_Query(t *testing.T) {
	t.Parallel()

	got := childCandidates(newEvaluator(t).root, "", true)

	for _, want := range []string{"kind", "arity", "linkage_name", "len", "filter"} {
		if !slices.Contains(got, want) {
			t.Errorf("query candidates missing %q", want)
		}
	}
}

func TestCandidateSuffix(t *testing.T) {
	t.Parallel()

	root := newEvaluator(t).root

	tests := []struct {
		name   string
		parent string
		cand   string
		query  bool
		want   string
	}{
		{name: "module", cand: "example", want: "."},
		{name: "type", cand: "i32", want: ""},
		{name: "function", parent: "example.math", cand: "add", want: "()"},
		{name: "structure", parent: "example", cand: "DivMod", want: ""},
		{name: "builtin", cand: "len", query: true, want: "()"},
		{name: "field", cand: "kind", query: true, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := candidateSuffix(root, tt.parent, tt.query)(tt.cand)
			if got != tt.want {
				t.Errorf("suffix(%q) = %q, want %q", tt.cand, got, tt.want)
			}
		})
	}
}

func TestModel_ComputeMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		mode  inputMode
		input string
		first string
		count int
	}{
		{name: "root prefix", input: "exa", first: "example"},
		{name: "member", input: "example.ma", first: "math"},
		{name: "all members after dot", input: "example.", first: "math", count: 2},
		{name: "empty top level", input: ""},
		{name: "query field", input: "?arit", first: "arity"},
		{name: "command", mode: modeCtrl, input: "tr", first: "tree"},
		{name: "no match", input: "zzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newModel(t.Context(), newEvaluator(t), NewHistory(""), log.Logger{})
			m.mode = tt.mode
			m.input.SetValue(tt.input)
			m.input.SetCursor(len(tt.input))

			matches, _, _, _ := m.computeMatches()

			if tt.first == "" {
				if len(matches) != 0 {
					t.Errorf("computeMatches(%q) = %v, want none", tt.input, matches)
				}

				return
			}

			if len(matches) == 0 || matches[0].Str != tt.first {
				t.Fatalf("computeMatches(%q) = %v, want %q first", tt.input, matches, tt.first)
			}

			if tt.count > 0 && len(matches) != tt.count {
				t.Errorf("computeMatches(%q) returned %d, want %d",
					tt.input, len(matches), tt.count)
			}
		})
	}
}

func TestFunctionAt(t *testing.T) {
	t.Parallel()

	e := newEvaluator(t)

	if fn, ok := functionAt(e.root, " example.math.add "); !ok || fn.Name != "add" {
		t.Errorf("functionAt(add) = %v, %v", fn, ok)
	}

	for _, input := range []string{"example", "i32", "?kind", "nope", ""} {
		if _, ok := functionAt(e.root, input); ok {
			t.Errorf("functionAt(%q) reported a function", input)
		}
	}
}

func TestRenderCandidateBar(t *testing.T) {
	t.Parallel()

	matches := fuzzy.Find("a", []string{"alpha", "beta", "gamma", "delta"})
	none := func(string) string { return "" }

	wide := renderCandidateBar(matches, -1, false, 200, none)
	for _, m := range matches {
		if !strings.Contains(ansi.Strip(wide), m.Str) {
			t.Errorf("wide bar %q is missing %q", ansi.Strip(wide), m.Str)
		}
	}

	narrow := ansi.Strip(renderCandidateBar(matches, -1, false, 12, none))
	if !strings.HasSuffix(narrow, "...") || lipgloss.Width(narrow) > 12 {
		t.Errorf("narrow bar = %q, want an ellipsized line of at most 12 columns", narrow)
	}

	if got := renderCandidateBar(nil, -1, false, 80, none); got != "" {
		t.Errorf("bar of no matches = %q, want empty", got)
	}
}
