// Package framework carries the metadata catalog describing the target CMS
// framework: plugin types with their base classes and annotation ids, well
// known services, and entity handler roles. The catalog is the interface
// boundary standing in for live-runtime introspection; a static snapshot
// ships embedded and can be overridden from a YAML file.
package framework

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yml
var embeddedCatalog []byte

// PluginType describes one discoverable plugin type of the framework.
type PluginType struct {
	Label        string `yaml:"label"`
	BaseClass    string `yaml:"base_class"`
	Interface    string `yaml:"interface"`
	AnnotationID string `yaml:"annotation_id"`
	Subdir       string `yaml:"subdir"`
}

// Service describes a container service and its constructor signature.
type Service struct {
	Class     string   `yaml:"class"`
	Interface string   `yaml:"interface"`
	Arguments []string `yaml:"arguments"`
}

// HandlerType describes one entity handler role.
type HandlerType struct {
	Label     string `yaml:"label"`
	BaseClass string `yaml:"base_class"`
	Interface string `yaml:"interface"`
}

// Catalog is the full framework metadata snapshot.
type Catalog struct {
	PluginTypes    map[string]PluginType  `yaml:"plugin_types"`
	Services       map[string]Service     `yaml:"services"`
	EntityHandlers map[string]HandlerType `yaml:"entity_handlers"`
	Hooks          []string               `yaml:"hooks"`
}

// Default returns the embedded catalog snapshot.
func Default() *Catalog {
	c, err := parse(embeddedCatalog)
	if err != nil {
		// The embedded snapshot is validated by tests; a parse failure here
		// means a broken build, not a runtime condition.
		panic(fmt.Sprintf("framework: embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog override from a YAML file.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return parse(raw)
}

func parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &c, nil
}

// PluginType looks up a plugin type by id.
func (c *Catalog) PluginType(id string) (PluginType, bool) {
	pt, ok := c.PluginTypes[id]
	return pt, ok
}

// HandlerType looks up an entity handler role by id.
func (c *Catalog) HandlerType(id string) (HandlerType, bool) {
	ht, ok := c.EntityHandlers[id]
	return ht, ok
}

// PluginTypeIDs returns the known plugin type ids, sorted.
func (c *Catalog) PluginTypeIDs() []string {
	ids := make([]string, 0, len(c.PluginTypes))
	for id := range c.PluginTypes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HandlerTypeIDs returns the known entity handler roles, sorted.
func (c *Catalog) HandlerTypeIDs() []string {
	ids := make([]string, 0, len(c.EntityHandlers))
	for id := range c.EntityHandlers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// KnowsHook reports whether the hook name exists in the framework.
func (c *Catalog) KnowsHook(name string) bool {
	for _, h := range c.Hooks {
		if h == name {
			return true
		}
	}
	return false
}
