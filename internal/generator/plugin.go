package generator

import (
	"fmt"

	"github.com/cmsforge/cmsforge/internal/datatree"
	"github.com/cmsforge/cmsforge/internal/framework"
)

// PluginGenerator produces one annotated plugin class. Configurable plugins
// additionally demand a config schema entry for their settings.
type PluginGenerator struct {
	BaseGenerator
}

func newPluginGenerator(name string, data *datatree.Node) Generator {
	return &PluginGenerator{NewBase("plugin", name, data)}
}

// MatchTag implements Generator. Plugins are identified by their plugin id;
// requests for different ids under one root never merge.
func (g *PluginGenerator) MatchTag() string {
	if pn := g.ComponentData().Get("plugin_name"); pn != nil {
		return pn.StringValue()
	}
	return ""
}

// RequiredComponents implements Generator. A configurable plugin requires a
// settings schema regardless of what the request tree asked for.
func (g *PluginGenerator) RequiredComponents() map[string]Requirement {
	data := g.ComponentData()
	configurable := data.Get("configurable")
	if configurable == nil || !configurable.BoolValue() {
		return nil
	}

	pluginName := ""
	if pn := data.Get("plugin_name"); pn != nil {
		pluginName = pn.StringValue()
	}
	return map[string]Requirement{
		"settings_schema": {
			ComponentType: "config_schema",
			Values: map[string]interface{}{
				"schema_id": pluginName + ".settings",
			},
		},
	}
}

func pluginDefinition(catalog *framework.Catalog) *datatree.PropertyDefinition {
	return &datatree.PropertyDefinition{
		Name:          "plugin",
		Label:         "Plugin",
		Type:          datatree.KindMapping,
		ComponentType: "plugin",
		Properties: []*datatree.PropertyDefinition{
			{
				Name:     "plugin_name",
				Label:    "Plugin id",
				Type:     datatree.KindString,
				Required: true,
			},
			{
				Name:     "plugin_type",
				Label:    "Plugin type",
				Type:     datatree.KindString,
				Required: true,
				Options:  catalog.PluginTypeIDs(),
				Process:  resolvePluginBaseClass(catalog),
			},
			{
				Name:  "label",
				Label: "Administrative label",
				Type:  datatree.KindString,
			},
			{
				Name:  "base_class",
				Label: "Base class",
				Type:  datatree.KindString,
			},
			{
				Name:     "injected_services",
				Label:    "Injected services",
				Type:     datatree.KindString,
				Multiple: true,
			},
			{
				Name:  "configurable",
				Label: "Has a settings form",
				Type:  datatree.KindBool,
			},
		},
	}
}

// resolvePluginBaseClass validates the plugin type against the framework
// catalog and fills the sibling base_class property from it when the author
// did not pick one.
func resolvePluginBaseClass(catalog *framework.Catalog) datatree.ProcessFunc {
	return func(n *datatree.Node) error {
		id := n.StringValue()
		if id == "" {
			return nil
		}
		pt, ok := catalog.PluginType(id)
		if !ok {
			return fmt.Errorf("unknown plugin type %q", id)
		}
		baseClass, err := n.Parent().Ensure("base_class")
		if err != nil {
			return err
		}
		if baseClass.StringValue() == "" {
			baseClass.SetValue(pt.BaseClass)
		}
		return nil
	}
}
