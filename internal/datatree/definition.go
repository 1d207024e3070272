package datatree

// Kind is the value type of a property.
type Kind int

const (
	// KindString holds a scalar string value.
	KindString Kind = iota
	// KindBool holds a boolean. Component-typed boolean properties act as
	// presence flags in the authoring format.
	KindBool
	// KindMapping holds named child nodes described by Properties.
	KindMapping
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// ProcessFunc is a processing callback attached to a property definition. It
// may rewrite the node's own value or sibling values within the same parent.
type ProcessFunc func(n *Node) error

// Preset is a bundle of forced and suggested values tied to one allowed
// option of an enumerated property. Forced values are appended to their
// (multi-valued) targets; suggested values are only applied where the target
// is still empty or holds nothing beyond its schema default.
type Preset struct {
	Label   string
	Force   map[string][]interface{}
	Suggest map[string]interface{}
}

// PropertyDefinition describes one property of a request node: its value
// type, multiplicity, defaults, and the resolution behaviors the collector
// acts on (acquisition, force-create, component expansion, presets,
// processing callbacks).
type PropertyDefinition struct {
	Name        string
	Label       string
	Type        Kind
	Multiple    bool
	Required    bool
	Default     interface{}
	ForceCreate bool

	// ComponentType marks the property for recursive expansion into a
	// component request of the named type. Empty means plain data.
	ComponentType string

	// Acquisition is an expression evaluated against the requester's data;
	// the result becomes this property's value before any other processing.
	Acquisition string

	// Options enumerates the allowed values; Presets maps an option value to
	// the data it forces or suggests.
	Options []string
	Presets map[string]Preset

	Process ProcessFunc

	// Properties are the child definitions for mapping-typed properties.
	Properties []*PropertyDefinition
}

// Property returns the child definition with the given name, or nil.
func (d *PropertyDefinition) Property(name string) *PropertyDefinition {
	for _, p := range d.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// item returns the definition for one element of a multi-valued property.
func (d *PropertyDefinition) item() *PropertyDefinition {
	if !d.Multiple {
		return d
	}
	elem := *d
	elem.Multiple = false
	return &elem
}
