package ns

import (
	"context"
	"log/slog"
	"maps"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/sahilm/fuzzy"
)

// maxSuggestions limits the candidates returned by [Root.Suggest].
const maxSuggestions = 5

// Fielder is implemented by payloads that expose named attributes to
// [Root.Select] predicates.
type Fielder interface {
	Fields() map[string]any
}

// Suggest returns the root identifiers that best fuzzy-match identifier,
// best match first.
func (r *Root) Suggest(identifier string) []string {
	return suggest(identifier, r.tree.Keys())
}

// Suggest returns the keys of c that best fuzzy-match key, best match first.
func (c *Container) Suggest(key string) []string {
	return suggest(key, c.Keys())
}

// SuggestPath returns suggestions for the first segment of the dotted path
// that is not bound, drawn from the keys of the container it was looked up
// in. It returns nil when path resolves or descends into a leaf.
func (r *Root) SuggestPath(path string) []string {
	segs := strings.Split(path, Separator)

	if _, err := r.Resolve(segs[0]); err != nil {
		return r.Suggest(segs[0])
	}

	for i := 1; i < len(segs); i++ {
		v, err := r.Lookup(strings.Join(segs[:i], Separator))

		c, ok := v.(*Container)
		if err != nil || !ok {
			return nil
		}

		if !c.Contains(segs[i]) {
			return c.Suggest(segs[i])
		}
	}

	return nil
}

func suggest(pattern string, candidates []string) []string {
	if pattern == "" {
		return nil
	}

	matches := fuzzy.Find(pattern, candidates)

	out := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}

		out = append(out, m.Str)
	}

	return out
}

// Select returns the descriptors, in input order, for which the boolean
// expression predicate holds.
//
// The predicate is evaluated with the identifiers name, module and path bound
// to the descriptor's name, module path and dotted path. Payloads that
// implement [Fielder] contribute their fields; any other payload is bound to
// payload. Identifiers that are not bound evaluate to nil.
func (r *Root) Select(ctx context.Context, predicate string) (Descriptors, error) {
	program, err := expr.Compile(predicate,
		expr.AsBool(),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, ErrQuery.
			With(slog.String("predicate", predicate)).
			Wrap(err)
	}

	var out Descriptors

	for _, d := range r.descs {
		if err := context.Cause(ctx); err != nil {
			return nil, err
		}

		res, err := expr.Run(program, env(d))
		if err != nil {
			return nil, ErrQuery.
				With(
					slog.String("predicate", predicate),
					slog.String("path", d.String()),
				).
				Wrap(err)
		}

		if ok, _ := res.(bool); ok {
			out = append(out, d)
		}
	}

	return out, nil
}

func env(d *Descriptor) map[string]any {
	m := make(map[string]any)

	if f, ok := d.Payload.(Fielder); ok {
		maps.Copy(m, f.Fields())
	} else {
		m["payload"] = d.Payload
	}

	m["name"] = d.Name
	m["module"] = d.ModulePath
	m["path"] = d.String()

	return m
}
