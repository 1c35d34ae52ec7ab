package ns

import (
	"iter"
	"log/slog"
	"slices"
)

// Container is a mutable, insertion-ordered mapping from keys to values.
//
// Set never checks for collisions; [Build] does that before calling it.
// A Container is not safe for concurrent mutation, but once a tree has been
// published by [Build] it is only read.
type Container struct {
	vals map[string]Value
	keys []string
}

// NewContainer returns an empty container.
func NewContainer() *Container {
	return &Container{vals: make(map[string]Value)}
}

func (*Container) value() {}

// Contains reports whether key is bound in c.
func (c *Container) Contains(key string) bool {
	_, ok := c.vals[key]

	return ok
}

// Keys returns the bound keys in the order they were first set.
func (c *Container) Keys() []string {
	return slices.Clone(c.keys)
}

// Len returns the number of bound keys.
func (c *Container) Len() int { return len(c.keys) }

// Get returns the value bound to key, or an error matching [ErrKeyNotFound].
func (c *Container) Get(key string) (Value, error) {
	v, ok := c.vals[key]
	if !ok {
		return nil, ErrKeyNotFound.With(slog.String("key", key))
	}

	return v, nil
}

// Set binds key to v, replacing any existing binding in place.
func (c *Container) Set(key string, v Value) {
	if c.vals == nil {
		c.vals = make(map[string]Value)
	}

	if _, ok := c.vals[key]; !ok {
		c.keys = append(c.keys, key)
	}

	c.vals[key] = v
}

// All returns an iterator over the bindings of c in key order.
func (c *Container) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range c.keys {
			if !yield(k, c.vals[k]) {
				return
			}
		}
	}
}

// Walk calls fn for every descriptor reachable from c, depth first and in key
// order. The path passed to fn is relative to c and includes the leaf key.
// Walk stops at the first error returned by fn.
func (c *Container) Walk(fn func(path []string, d *Descriptor) error) error {
	return c.walk(nil, fn)
}

func (c *Container) walk(
	prefix []string,
	fn func(path []string, d *Descriptor) error,
) error {
	for k, v := range c.All() {
		path := append(prefix[:len(prefix):len(prefix)], k)

		switch v := v.(type) {
		case *Container:
			if err := v.walk(path, fn); err != nil {
				return err
			}

		case *Descriptor:
			if err := fn(path, v); err != nil {
				return err
			}
		}
	}

	return nil
}

// LogValue implements slog.LogValuer.
func (c *Container) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", "container"),
		slog.Any("keys", c.keys),
	)
}
