package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/ffins/ffi"
	"github.com/ardnew/ffins/ns"
)

// Signature styles.
var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	signatureTypeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11"))
	signatureSeparatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// functionAt returns the function item bound to the dotted path in input, if
// any.
func functionAt(root *ns.Root, input string) (*ffi.Item, bool) {
	path := strings.TrimSpace(input)
	if path == "" || strings.HasPrefix(path, queryPrefix) {
		return nil, false
	}

	v, err := root.Lookup(path)
	if err != nil {
		return nil, false
	}

	d, ok := v.(*ns.Descriptor)
	if !ok {
		return nil, false
	}

	it, ok := d.Payload.(*ffi.Item)
	if !ok || it.Kind != ffi.KindFunction {
		return nil, false
	}

	return it, true
}

// renderSignatureHint renders the signature of fn with argument and return
// types resolved through table.
func renderSignatureHint(table ffi.Table, fn *ffi.Item) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(fn.LeafName()))
	b.WriteString(signatureStyle.Render("("))

	for i, a := range fn.Arguments {
		if i > 0 {
			b.WriteString(signatureSeparatorStyle.Render(", "))
		}

		if a.Name != "" {
			b.WriteString(signatureStyle.Render(a.Name + ": "))
		}

		b.WriteString(signatureTypeStyle.Render(table.TypeName(a.Type)))
	}

	b.WriteString(signatureStyle.Render(")"))

	if fn.Return != nil {
		b.WriteString(signatureSeparatorStyle.Render(" -> "))
		b.WriteString(signatureTypeStyle.Render(table.TypeName(*fn.Return)))
	}

	return b.String()
}
