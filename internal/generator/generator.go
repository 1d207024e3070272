// Package generator defines the generator set: a registry mapping component
// type tags to constructors, the Generator contract the collector drives, and
// the built-in generators covering the framework's common extension outputs.
package generator

import (
	"github.com/cmsforge/cmsforge/internal/datatree"
)

// Generator is one instantiated component: a behavior tag plus the finalized
// request data it was built from. Instances are created once per
// non-duplicate request; later matching requests merge their data into the
// existing instance instead of creating a new one.
type Generator interface {
	// Type returns the component type tag the generator was registered under.
	Type() string
	// Name returns the local name of the request that created the instance.
	Name() string
	// ComponentData returns the instance's data tree.
	ComponentData() *datatree.Node
	// MergeComponentData folds additional request data into the instance in
	// place and reports whether anything actually changed.
	MergeComponentData(n *datatree.Node) bool
	// RequiredComponents returns the data records this instance demands
	// regardless of the original request tree, keyed by local name.
	RequiredComponents() map[string]Requirement
	// MatchTag is an extra discriminator for duplicate matching; instances of
	// the same type under the same root merge only when their tags are equal.
	MatchTag() string
}

// Requirement is a raw record for a generator-required subcomponent. The
// collector materializes it into a finalized request node before recursing.
type Requirement struct {
	ComponentType string
	Values        map[string]interface{}
}

// BaseGenerator implements the parts of Generator that do not vary between
// component types. Concrete generators embed it and override what they need.
type BaseGenerator struct {
	componentType string
	name          string
	data          *datatree.Node
}

// NewBase creates the shared generator core.
func NewBase(componentType, name string, data *datatree.Node) BaseGenerator {
	return BaseGenerator{componentType: componentType, name: name, data: data}
}

// Type implements Generator.
func (g *BaseGenerator) Type() string { return g.componentType }

// Name implements Generator.
func (g *BaseGenerator) Name() string { return g.name }

// ComponentData implements Generator.
func (g *BaseGenerator) ComponentData() *datatree.Node { return g.data }

// MergeComponentData implements Generator.
func (g *BaseGenerator) MergeComponentData(n *datatree.Node) bool {
	return g.data.Merge(n)
}

// RequiredComponents implements Generator. The base declares none.
func (g *BaseGenerator) RequiredComponents() map[string]Requirement { return nil }

// MatchTag implements Generator. The base has no extra discriminator.
func (g *BaseGenerator) MatchTag() string { return "" }
