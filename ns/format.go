package ns

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/goccy/go-yaml"
)

// Styles used by [Root.Tree].
var (
	rootStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	moduleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	leafStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	summaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	enumeratorTint = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).MarginRight(1)
)

// MarshalJSON implements json.Marshaler. Keys are written in insertion order
// and leaves are encoded as their payload.
func (c *Container) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		var val []byte

		switch v := c.vals[k].(type) {
		case *Descriptor:
			val, err = json.Marshal(v.Payload)
		default:
			val, err = json.Marshal(v)
		}

		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.InterfaceMarshaler. Keys are written in
// insertion order and leaves are encoded as their payload.
func (c *Container) MarshalYAML() (any, error) {
	out := make(yaml.MapSlice, 0, len(c.keys))

	for k, v := range c.All() {
		item := yaml.MapItem{Key: k, Value: v}
		if d, ok := v.(*Descriptor); ok {
			item.Value = d.Payload
		}

		out = append(out, item)
	}

	return out, nil
}

type descriptorDoc struct {
	Module  []string `json:"module"  yaml:"module"`
	Name    string   `json:"name"    yaml:"name"`
	Payload any      `json:"payload" yaml:"payload"`
}

func (d *Descriptor) doc() descriptorDoc {
	module := d.ModulePath
	if module == nil {
		module = []string{}
	}

	return descriptorDoc{Module: module, Name: d.Name, Payload: d.Payload}
}

// MarshalJSON implements json.Marshaler.
func (d *Descriptor) MarshalJSON() ([]byte, error) { return json.Marshal(d.doc()) }

// MarshalYAML implements yaml.InterfaceMarshaler.
func (d *Descriptor) MarshalYAML() (any, error) {
	doc := d.doc()

	return yaml.MapSlice{
		{Key: "module", Value: doc.Module},
		{Key: "name", Value: doc.Name},
		{Key: "payload", Value: doc.Payload},
	}, nil
}

// WriteJSON writes v to w as JSON. A positive indent selects multi-line
// output indented by that many spaces.
func WriteJSON(w io.Writer, v any, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// WriteYAML writes v to w as YAML. A positive indent selects block style
// indented by that many spaces; otherwise flow style is used.
func WriteYAML(ctx context.Context, w io.Writer, v any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// FormatJSON writes the namespace tree as JSON to w.
func (r *Root) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	return WriteJSON(w, r.tree, indent)
}

// FormatYAML writes the namespace tree as YAML to w.
func (r *Root) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	return WriteYAML(ctx, w, r.tree, indent)
}

// FormatTree writes the namespace tree to w as an indented outline.
func (r *Root) FormatTree(_ context.Context, w io.Writer) error {
	_, err := fmt.Fprintln(w, r.Tree().String())

	return err
}

// Tree returns the namespace as a renderable tree rooted at the facade name.
//
// Leaves whose payload implements [fmt.Stringer] are annotated with its
// string form.
func (r *Root) Tree() *tree.Tree {
	return branch(tree.Root(r.name), r.tree).
		RootStyle(rootStyle).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(enumeratorTint)
}

func branch(t *tree.Tree, c *Container) *tree.Tree {
	for k, v := range c.All() {
		switch v := v.(type) {
		case *Container:
			t.Child(branch(tree.Root(moduleStyle.Render(k)), v))

		case *Descriptor:
			label := leafStyle.Render(k)
			if s, ok := v.Payload.(fmt.Stringer); ok {
				label += " " + summaryStyle.Render(s.String())
			}

			t.Child(label)
		}
	}

	return t
}
