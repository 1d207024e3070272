package generator

import (
	"github.com/cmsforge/cmsforge/internal/datatree"
)

// ConfigSchemaGenerator produces one entry in the module's configuration
// schema file.
type ConfigSchemaGenerator struct {
	BaseGenerator
}

func newConfigSchemaGenerator(name string, data *datatree.Node) Generator {
	return &ConfigSchemaGenerator{NewBase("config_schema", name, data)}
}

// MatchTag implements Generator. Schema entries are identified by their id so
// a plugin-required schema and a hand-authored one with the same id merge.
func (g *ConfigSchemaGenerator) MatchTag() string {
	if id := g.ComponentData().Get("schema_id"); id != nil {
		return id.StringValue()
	}
	return ""
}

func configSchemaDefinition() *datatree.PropertyDefinition {
	return &datatree.PropertyDefinition{
		Name:          "config_schema",
		Label:         "Configuration schema",
		Type:          datatree.KindMapping,
		ComponentType: "config_schema",
		Properties: []*datatree.PropertyDefinition{
			{
				Name:  "schema_id",
				Label: "Schema id",
				Type:  datatree.KindString,
			},
			{
				Name:    "schema_type",
				Label:   "Mapping type",
				Type:    datatree.KindString,
				Default: "config_object",
			},
			{
				Name:     "entries",
				Label:    "Schema entries",
				Type:     datatree.KindString,
				Multiple: true,
			},
		},
	}
}
