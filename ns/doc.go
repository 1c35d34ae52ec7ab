// Package ns builds hierarchical, read-only namespaces of foreign symbol
// descriptors.
//
// A flat list of [Descriptor] values, each naming a module path and a leaf
// name, is folded by [Build] into a tree of [Container] values. Every module
// path segment becomes a nested container and every descriptor becomes a
// leaf. A name may be bound only once per container; the first binding wins
// and any later one fails the whole build with [ErrDuplicateName].
//
// The finished tree is exposed through a [Root] facade:
//
//	root, err := ns.Build(ctx, descs, ns.WithName("libexample"))
//	if err != nil {
//	    return err
//	}
//
//	v, err := root.Lookup("example.divmod_example")
//
// [Root.Resolve] answers the identifier [ReservedKey] with the original
// descriptor list, answers any other bound identifier with its root binding,
// and otherwise fails with [ErrAttributeNotFound].
//
// Trees can be searched with fuzzy matching ([Root.Suggest]) and boolean
// expressions ([Root.Select]), and rendered as JSON, YAML or an outline.
package ns
