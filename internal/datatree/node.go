// Package datatree implements the tree-shaped property data store that
// component requests are made of: typed values, named children, multiplicity,
// and addressable paths. Nodes are created from property definitions and are
// mutated in place by acquisition, processing, and merge operations during a
// resolution run.
package datatree

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// sortedKeys keeps Populate deterministic; YAML decoding hands us unordered
// maps but child creation order is observable through Children and Export.
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Node is one addressable value in a request's data tree. Depending on its
// definition it is a scalar (string or bool), a mapping of named children, or
// a multi-valued list of items.
type Node struct {
	name   string
	def    *PropertyDefinition
	parent *Node

	value    interface{}
	children []*Node
	items    []*Node

	// defaulted marks a value that came from the schema default rather than
	// from authored data. Preset suggestions may replace such values.
	defaulted bool
}

// NewFromDefinition builds a finalized node from a property definition,
// filling in declared defaults. This is the data-item factory used both for
// boolean presence-flag expansion and for materializing generator-required
// subcomponent records.
func NewFromDefinition(def *PropertyDefinition) *Node {
	return NewNamed(def, def.Name)
}

// NewNamed builds a finalized node from a definition under an explicit name.
func NewNamed(def *PropertyDefinition, name string) *Node {
	n := &Node{name: name, def: def}
	n.applyDefaults()
	return n
}

func (n *Node) applyDefaults() {
	if n.def.Multiple || n.def.Type != KindMapping {
		if n.def.Default != nil && !n.def.Multiple {
			n.value = n.def.Default
			n.defaulted = true
		}
		return
	}
	for _, pd := range n.def.Properties {
		if pd.Default == nil {
			continue
		}
		child, _ := n.Ensure(pd.Name)
		if child != nil && !pd.Multiple && pd.Type != KindMapping {
			child.value = pd.Default
			child.defaulted = true
		}
	}
}

// Name returns the node's local name. List items carry a synthesized name
// combining the list's name and the item index.
func (n *Node) Name() string { return n.name }

// Definition returns the property definition the node was built from.
func (n *Node) Definition() *PropertyDefinition { return n.def }

// Parent returns the enclosing node, or nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// Root returns the topmost node of the tree.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Path returns the slash-joined address of the node from the root.
func (n *Node) Path() string {
	if n.parent == nil {
		return n.name
	}
	return n.parent.Path() + "/" + n.name
}

// IsComponent reports whether the node's property is component-typed.
func (n *Node) IsComponent() bool { return n.def.ComponentType != "" }

// ComponentType returns the declared component type, if any.
func (n *Node) ComponentType() string { return n.def.ComponentType }

// IsMultiple reports whether the node holds an ordered list of items.
func (n *Node) IsMultiple() bool { return n.def.Multiple }

// Value returns the scalar value, or nil.
func (n *Node) Value() interface{} { return n.value }

// SetValue sets the scalar value in place.
func (n *Node) SetValue(v interface{}) {
	n.value = v
	n.defaulted = false
}

// IsDefaulted reports whether the node still holds its schema default and no
// authored or computed value.
func (n *Node) IsDefaulted() bool { return n.defaulted }

// BoolValue returns the value interpreted as a presence flag.
func (n *Node) BoolValue() bool {
	b, ok := n.value.(bool)
	return ok && b
}

// StringValue returns the value as a string, or "".
func (n *Node) StringValue() string {
	s, _ := n.value.(string)
	return s
}

// Get returns the named child of a mapping node, or nil.
func (n *Node) Get(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Ensure returns the named child, creating it from its definition if absent.
// Creation is what the force-create pass relies on: the returned node exists
// and is addressable even when no explicit value was authored.
func (n *Node) Ensure(name string) (*Node, error) {
	if child := n.Get(name); child != nil {
		return child, nil
	}
	pd := n.def.Property(name)
	if pd == nil {
		return nil, fmt.Errorf("property %q not defined on %q", name, n.Path())
	}
	child := &Node{name: name, def: pd, parent: n}
	if !pd.Multiple && pd.Type == KindMapping {
		child.applyDefaults()
	} else if !pd.Multiple && pd.Default != nil {
		child.value = pd.Default
		child.defaulted = true
	}
	n.children = append(n.children, child)
	return child, nil
}

// Children returns the mapping node's children in insertion order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Items returns the list node's items in order.
func (n *Node) Items() []*Node {
	out := make([]*Node, len(n.items))
	copy(out, n.items)
	return out
}

// Append adds a fresh item to a multi-valued node. The item's name is
// synthesized from the list name and the element index.
func (n *Node) Append() (*Node, error) {
	if !n.def.Multiple {
		return nil, fmt.Errorf("property %q is not multi-valued", n.Path())
	}
	item := &Node{
		name:   fmt.Sprintf("%s_%d", n.name, len(n.items)),
		def:    n.def.item(),
		parent: n,
	}
	item.applyDefaults()
	n.items = append(n.items, item)
	return item, nil
}

// AppendValue adds an item populated from a plain value.
func (n *Node) AppendValue(v interface{}) (*Node, error) {
	item, err := n.Append()
	if err != nil {
		return nil, err
	}
	if err := item.Populate(v); err != nil {
		return nil, err
	}
	return item, nil
}

// IsEmpty reports whether the node carries no data: a zero scalar, a list
// with no items, or a mapping whose children are all empty.
func (n *Node) IsEmpty() bool {
	if n.def.Multiple {
		return len(n.items) == 0
	}
	switch n.def.Type {
	case KindMapping:
		for _, c := range n.children {
			if !c.IsEmpty() {
				return false
			}
		}
		return true
	case KindBool:
		return !n.BoolValue()
	default:
		return n.value == nil || n.value == ""
	}
}

// Populate fills the node in place from a plain decoded value: scalars for
// scalar nodes, []interface{} for multi-valued nodes, map[string]interface{}
// for mappings. Unknown property names are rejected.
func (n *Node) Populate(v interface{}) error {
	if v == nil {
		return nil
	}
	if n.def.Multiple {
		seq, ok := v.([]interface{})
		if !ok {
			// A bare scalar on a multi-valued property is treated as a
			// single-element list, which the authoring format allows.
			seq = []interface{}{v}
		}
		for _, elem := range seq {
			if _, err := n.AppendValue(elem); err != nil {
				return err
			}
		}
		return nil
	}
	if n.def.Type != KindMapping {
		n.value = v
		n.defaulted = false
		return nil
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return fmt.Errorf("property %q expects a mapping, got %T", n.Path(), v)
	}
	for _, key := range sortedKeys(m) {
		child, err := n.Ensure(key)
		if err != nil {
			return err
		}
		if err := child.Populate(m[key]); err != nil {
			return err
		}
	}
	return nil
}

// Export converts the subtree to plain values: scalars, []interface{}, and
// map[string]interface{}. Used as the expression-evaluation context and for
// diagnostic snapshots.
func (n *Node) Export() interface{} {
	if n.def.Multiple {
		out := make([]interface{}, 0, len(n.items))
		for _, item := range n.items {
			out = append(out, item.Export())
		}
		return out
	}
	if n.def.Type == KindMapping {
		out := make(map[string]interface{}, len(n.children))
		for _, c := range n.children {
			out[c.name] = c.Export()
		}
		return out
	}
	return n.value
}

// Merge folds another node's data into this one in place and reports whether
// anything changed. Existing scalar values are never overwritten; missing
// children are copied in; list items absent from this node are appended.
func (n *Node) Merge(other *Node) bool {
	if other == nil {
		return false
	}
	changed := false
	if other.def.Multiple {
		for _, incoming := range other.items {
			if n.containsItem(incoming) {
				continue
			}
			item, err := n.Append()
			if err != nil {
				continue
			}
			item.copyFrom(incoming)
			changed = true
		}
		return changed
	}
	if other.def.Type == KindMapping {
		for _, incoming := range other.children {
			existing := n.Get(incoming.name)
			if existing == nil {
				if incoming.IsEmpty() {
					continue
				}
				child, err := n.Ensure(incoming.name)
				if err != nil {
					continue
				}
				child.copyFrom(incoming)
				changed = true
				continue
			}
			if existing.Merge(incoming) {
				changed = true
			}
		}
		return changed
	}
	if n.IsEmpty() && !other.IsEmpty() {
		n.value = other.value
		n.defaulted = other.defaulted
		return true
	}
	return false
}

// AppendUnique appends a plain value to a multi-valued node unless an equal
// item is already present. Reports whether the value was added. Preset
// forcing relies on this to stay additive without duplicating contributions.
func (n *Node) AppendUnique(v interface{}) (bool, error) {
	if !n.def.Multiple {
		return false, fmt.Errorf("property %q is not multi-valued", n.Path())
	}
	for _, item := range n.items {
		if reflect.DeepEqual(item.Export(), v) {
			return false, nil
		}
	}
	if _, err := n.AppendValue(v); err != nil {
		return false, err
	}
	return true, nil
}

func (n *Node) containsItem(candidate *Node) bool {
	want := candidate.Export()
	for _, item := range n.items {
		if reflect.DeepEqual(item.Export(), want) {
			return true
		}
	}
	return false
}

func (n *Node) copyFrom(src *Node) {
	n.value = src.value
	n.defaulted = src.defaulted
	for _, c := range src.children {
		child, err := n.Ensure(c.name)
		if err != nil {
			continue
		}
		child.copyFrom(c)
	}
	for _, item := range src.items {
		dst, err := n.Append()
		if err != nil {
			continue
		}
		dst.copyFrom(item)
	}
}

// Walk visits the node and every descendant in pre-order.
func (n *Node) Walk(fn func(*Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := c.Walk(fn); err != nil {
			return err
		}
	}
	for _, item := range n.items {
		if err := item.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// WalkOwn visits the node and every descendant belonging to the same
// request. Component-typed descendants are separate requests with their own
// requester and are not entered; the node itself is visited even when it is
// component-typed.
func (n *Node) WalkOwn(fn func(*Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range n.children {
		if c.IsComponent() {
			continue
		}
		if err := c.WalkOwn(fn); err != nil {
			return err
		}
	}
	for _, item := range n.items {
		if err := item.WalkOwn(fn); err != nil {
			return err
		}
	}
	return nil
}

// GetPath resolves a slash-separated path relative to the node. ".." climbs
// to the parent. Returns nil if any segment is missing.
func (n *Node) GetPath(path string) *Node {
	current := n
	for _, seg := range strings.Split(path, "/") {
		if current == nil {
			return nil
		}
		switch seg {
		case "", ".":
			continue
		case "..":
			current = current.parent
		default:
			current = current.Get(seg)
		}
	}
	return current
}
