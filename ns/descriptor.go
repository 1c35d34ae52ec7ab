package ns

import (
	"log/slog"
	"slices"
	"strings"
)

// Separator joins the segments of a dotted path.
const Separator = "."

// Value is a binding stored in a [Container]: a nested [*Container], a leaf
// [*Descriptor], or the [Descriptors] list returned for [ReservedKey].
type Value interface {
	value()
}

// Descriptor describes one foreign symbol to be placed in a namespace.
//
// The payload is opaque to this package and is stored and returned as given.
// Descriptors are never modified after they are handed to [Build].
type Descriptor struct {
	Payload    any
	Name       string
	ModulePath []string
}

// NewDescriptor returns a descriptor bound to name under module.
func NewDescriptor(name string, payload any, module ...string) *Descriptor {
	return &Descriptor{
		Payload:    payload,
		Name:       name,
		ModulePath: slices.Clone(module),
	}
}

func (*Descriptor) value() {}

// Path returns the module path followed by the descriptor name.
func (d *Descriptor) Path() []string {
	return append(slices.Clone(d.ModulePath), d.Name)
}

// String returns the dotted path of d.
func (d *Descriptor) String() string {
	return strings.Join(d.Path(), Separator)
}

// LogValue implements slog.LogValuer.
func (d *Descriptor) LogValue() slog.Value {
	if d == nil {
		return slog.StringValue("<nil>")
	}

	return slog.GroupValue(
		slog.String("path", d.String()),
		slog.Any("payload", d.Payload),
	)
}

// Descriptors is an ordered list of descriptors.
type Descriptors []*Descriptor

func (Descriptors) value() {}

// LogValue implements slog.LogValuer.
func (ds Descriptors) LogValue() slog.Value {
	return slog.IntValue(len(ds))
}
