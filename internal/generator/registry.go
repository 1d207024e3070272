package generator

import (
	"sort"

	"github.com/cmsforge/cmsforge/internal/datatree"
	"github.com/cmsforge/cmsforge/internal/errors"
	"github.com/cmsforge/cmsforge/internal/framework"
)

// Constructor builds a generator instance for a named request with finalized
// data.
type Constructor func(name string, data *datatree.Node) Generator

type registryEntry struct {
	rootDef   *datatree.PropertyDefinition
	construct Constructor
}

// Registry maps component type tags to generator constructors and the
// property definitions describing their request data. It replaces dynamic
// dispatch by type string with a closed but extensible tag set.
type Registry struct {
	entries map[string]registryEntry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registryEntry)}
}

// NewDefaultRegistry creates a registry with every built-in generator wired
// against the given framework catalog.
func NewDefaultRegistry(catalog *framework.Catalog) *Registry {
	if catalog == nil {
		catalog = framework.Default()
	}
	r := NewRegistry()
	r.Register("module", moduleDefinition(catalog), newModuleGenerator)
	r.Register("plugin", pluginDefinition(catalog), newPluginGenerator)
	r.Register("service", serviceDefinition(), newServiceGenerator)
	r.Register("entity_handler", entityHandlerDefinition(catalog), newEntityHandlerGenerator)
	r.Register("config_schema", configSchemaDefinition(), newConfigSchemaGenerator)
	r.Register("permission", permissionDefinition(), newPermissionGenerator)
	r.Register("routing", routingDefinition(), newRoutingGenerator)
	return r
}

// Register adds a component type with its request schema and constructor.
func (r *Registry) Register(componentType string, rootDef *datatree.PropertyDefinition, c Constructor) {
	r.entries[componentType] = registryEntry{rootDef: rootDef, construct: c}
}

// Get instantiates a generator for the component type with the given data.
func (r *Registry) Get(componentType, name string, data *datatree.Node) (Generator, error) {
	entry, ok := r.entries[componentType]
	if !ok {
		return nil, errors.NewUnknownComponentTypeError(componentType).WithComponent(name)
	}
	return entry.construct(name, data), nil
}

// RootDefinition returns the request schema for a component type.
func (r *Registry) RootDefinition(componentType string) (*datatree.PropertyDefinition, error) {
	entry, ok := r.entries[componentType]
	if !ok {
		return nil, errors.NewUnknownComponentTypeError(componentType)
	}
	return entry.rootDef, nil
}

// PropertyDefinition returns one property's definition from a component
// type's request schema.
func (r *Registry) PropertyDefinition(componentType, property string) (*datatree.PropertyDefinition, error) {
	rootDef, err := r.RootDefinition(componentType)
	if err != nil {
		return nil, err
	}
	pd := rootDef.Property(property)
	if pd == nil {
		return nil, errors.NewValidationError("unknown_property",
			"component type "+componentType+" has no property "+property)
	}
	return pd, nil
}

// Types returns the registered component type tags, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.entries))
	for t := range r.entries {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
