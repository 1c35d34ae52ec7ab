package ffi

import (
	"fmt"
	"strings"

	"github.com/ardnew/ffins/ns"
)

// Describe renders a namespace value as text, one line per binding:
//
//   - a descriptor as its dotted path followed by its signature
//   - a container as its keys, each followed by a member count or signature
//   - a descriptor list as one line per descriptor
func (t Table) Describe(v ns.Value) string {
	var b strings.Builder

	switch v := v.(type) {
	case *ns.Descriptor:
		fmt.Fprintf(&b, "%s\t%s\n", v, t.summary(v))

	case *ns.Container:
		for key, child := range v.All() {
			switch child := child.(type) {
			case *ns.Container:
				fmt.Fprintf(&b, "%s\t{%d}\n", key, child.Len())
			case *ns.Descriptor:
				fmt.Fprintf(&b, "%s\t%s\n", key, t.summary(child))
			}
		}

	case ns.Descriptors:
		for _, d := range v {
			fmt.Fprintf(&b, "%s\t%s\n", d, t.summary(d))
		}
	}

	return b.String()
}

func (t Table) summary(d *ns.Descriptor) string {
	if it, ok := d.Payload.(*Item); ok {
		return string(it.Kind) + " " + t.Signature(it)
	}

	return fmt.Sprint(d.Payload)
}
