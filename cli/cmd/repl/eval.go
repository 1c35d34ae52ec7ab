package repl

import (
	"context"
	"fmt"
	"strings"

	"github.com/ardnew/ffins/ffi"
	"github.com/ardnew/ffins/ns"
)

// queryPrefix marks eval input as a selection expression rather than a path.
const queryPrefix = "?"

// evaluator resolves eval-mode input against a namespace.
type evaluator struct {
	root  *ns.Root
	table ffi.Table
}

// eval returns the text rendering of input: the value bound to a dotted path,
// or the descriptors selected by a "?" expression.
func (e evaluator) eval(ctx context.Context, input string) (string, error) {
	if expr, ok := strings.CutPrefix(input, queryPrefix); ok {
		descs, err := e.root.Select(ctx, strings.TrimSpace(expr))
		if err != nil {
			return "", err
		}

		if len(descs) == 0 {
			return "no matches", nil
		}

		return e.describe(descs), nil
	}

	v, err := e.root.Lookup(input)
	if err != nil {
		if names := e.root.SuggestPath(input); len(names) > 0 {
			return "", fmt.Errorf("%w (did you mean %s?)",
				err, strings.Join(names, ", "))
		}

		return "", err
	}

	if c, ok := v.(*ns.Container); ok && c.Len() == 0 {
		return "{}", nil
	}

	return e.describe(v), nil
}

func (e evaluator) describe(v ns.Value) string {
	return strings.TrimSuffix(e.table.Describe(v), "\n")
}

// list describes the root bindings.
func (e evaluator) list() string {
	return e.describe(e.root.Container())
}

// tree renders the whole namespace.
func (e evaluator) tree() string {
	return e.root.Tree().String()
}
