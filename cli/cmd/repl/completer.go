package repl

import (
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/expr-lang/expr/builtin"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/ffins/ffi"
	"github.com/ardnew/ffins/ns"
)

// queryNames are the identifiers bound in selection expressions.
var queryNames = []string{
	"name", "module", "path", "kind", "offset",
	"linkage_name", "full_name", "ret_type_index", "arguments", "arity",
	"size", "encoding", "type_index", "alignment", "members",
}

// wordBreaks are the runes that end a completable word: whitespace, the
// member-access dot, and expression operators and punctuation.
const wordBreaks = ". \t()[]+-*/%<>=!&|,?:;\"'"

func isWordBoundary(r rune) bool {
	return strings.ContainsRune(wordBreaks, r)
}

// wordBounds returns the word containing cursor and its byte offsets in
// input. The word is empty when cursor sits between two boundaries.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	// Every rune in wordBreaks is a single byte.
	start = strings.LastIndexFunc(input[:cursor], isWordBoundary) + 1

	end = len(input)
	if i := strings.IndexFunc(input[cursor:], isWordBoundary); i >= 0 {
		end = cursor + i
	}

	return input[start:end], start, end
}

// parentPath returns the member-access chain that ends in a dot right before
// wordStart, e.g. "example.math" for "x + example.math.di". It is empty for a
// word that does not follow a dot.
func parentPath(input string, wordStart int) string {
	before := input[:wordStart]

	chain := strings.TrimRight(before, ".")
	if len(chain) == len(before) {
		return ""
	}

	start := strings.LastIndexFunc(chain, func(r rune) bool {
		return r != '.' && isWordBoundary(r)
	})

	return chain[start+1:]
}

// childCandidates returns the names that complete a word under parent. In a
// query, top-level words complete to bound identifiers and expr-lang builtins.
func childCandidates(root *ns.Root, parent string, query bool) []string {
	if query {
		if parent != "" {
			return nil
		}

		return append(slices.Clone(queryNames), slices.Sorted(maps.Keys(builtin.Index))...)
	}

	if parent == "" {
		return append(root.Container().Keys(), ns.ReservedKey)
	}

	v, err := root.Lookup(parent)
	if err != nil {
		return nil
	}

	if c, ok := v.(*ns.Container); ok {
		return c.Keys()
	}

	return nil
}

// computeMatches calculates the fuzzy match results for the word at the cursor.
// It returns the matches (ranked best-first), the candidate list, and the word
// boundaries. When the current word is empty at the top level, it returns nil
// matches. When the word is empty after a dot (member access), it returns all
// children as matches.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, wordStart, wordEnd := wordBounds(input, cursor)

	if m.mode == modeCtrl {
		if word == "" {
			return nil, nil, wordStart, wordEnd
		}

		candidates = ctrlCommands
	} else {
		parent := parentPath(input, wordStart)
		candidates = childCandidates(m.eval.root, parent, strings.HasPrefix(input, queryPrefix))

		if word == "" {
			if parent == "" || len(candidates) == 0 {
				return nil, nil, wordStart, wordEnd
			}

			matches = make(fuzzy.Matches, len(candidates))
			for i, c := range candidates {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, candidates, wordStart, wordEnd
		}
	}

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

// renderCandidateBar lays matches out on one line of at most width columns,
// ending in an ellipsis when they do not all fit. Each candidate is followed
// by suffix(candidate).
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
	suffix func(string) string,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	parts := make([]string, 0, len(matches))
	used := 0

	for i, match := range matches {
		s := renderCandidate(match, tabActive && i == suggIdx, suffix(match.Str))

		w := lipgloss.Width(s)
		if i > 0 {
			w += len(sep)

			if used+w+lipgloss.Width(ellipsis) > width {
				parts = append(parts, ellipsis)

				break
			}
		}

		parts = append(parts, s)
		used += w
	}

	return strings.Join(parts, sep)
}

// renderCandidate renders match with its matched runes in bold.
func renderCandidate(match fuzzy.Match, selected bool, suffix string) string {
	base := suggestionStyle
	if selected {
		base = selectedStyle
	}

	bold := base.Bold(true)

	var b strings.Builder

	for i, r := range match.Str {
		style := base
		if slices.Contains(match.MatchedIndexes, i) {
			style = bold
		}

		b.WriteString(style.Render(string(r)))
	}

	if suffix != "" {
		b.WriteString(base.Render(suffix))
	}

	return b.String()
}

// candidateSuffix returns the decoration shown after a candidate under
// parent: "." for modules, "()" for functions and builtins.
func candidateSuffix(root *ns.Root, parent string, query bool) func(string) string {
	return func(name string) string {
		if query {
			if _, ok := builtin.Index[name]; ok {
				return "()"
			}

			return ""
		}

		path := name
		if parent != "" {
			path = parent + ns.Separator + name
		}

		switch v, _ := root.Lookup(path); v := v.(type) {
		case *ns.Container:
			return "."
		case *ns.Descriptor:
			if it, ok := v.Payload.(*ffi.Item); ok && it.Kind == ffi.KindFunction {
				return "()"
			}
		}

		return ""
	}
}
