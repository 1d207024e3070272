package generator

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cmsforge/cmsforge/internal/datatree"
	"github.com/cmsforge/cmsforge/internal/framework"
)

// ModuleGenerator is the root component of almost every request: one
// framework extension module with its metadata and nested components.
type ModuleGenerator struct {
	BaseGenerator
}

func newModuleGenerator(name string, data *datatree.Node) Generator {
	return &ModuleGenerator{NewBase("module", name, data)}
}

func moduleDefinition(catalog *framework.Catalog) *datatree.PropertyDefinition {
	return &datatree.PropertyDefinition{
		Name:          "module",
		Label:         "Module",
		Type:          datatree.KindMapping,
		ComponentType: "module",
		Properties: []*datatree.PropertyDefinition{
			{
				Name:     "short_name",
				Label:    "Machine name",
				Type:     datatree.KindString,
				Required: true,
			},
			{
				Name:        "name",
				Label:       "Human-readable name",
				Type:        datatree.KindString,
				ForceCreate: true,
				Process:     defaultNameFromShortName,
			},
			{
				Name:  "description",
				Label: "Description",
				Type:  datatree.KindString,
			},
			{
				Name:    "package",
				Label:   "Package",
				Type:    datatree.KindString,
				Default: "Custom",
			},
			{
				Name:    "core_version",
				Label:   "Core version constraint",
				Type:    datatree.KindString,
				Default: "^1.0",
			},
			{
				Name:     "features",
				Label:    "Feature presets",
				Type:     datatree.KindString,
				Multiple: true,
				Options:  []string{"settings_form", "content_listing"},
				Presets: map[string]datatree.Preset{
					"settings_form": {
						Label: "Settings form",
						Force: map[string][]interface{}{
							"hooks": {"form_alter", "help"},
						},
						Suggest: map[string]interface{}{
							"package": "Administration",
						},
					},
					"content_listing": {
						Label: "Content listing",
						Force: map[string][]interface{}{
							"hooks": {"theme", "help"},
						},
					},
				},
			},
			{
				Name:        "hooks",
				Label:       "Hook implementations",
				Type:        datatree.KindString,
				Multiple:    true,
				ForceCreate: true,
				Process:     validateHooks(catalog),
			},
			{
				Name:          "plugins",
				Label:         "Plugins",
				Type:          datatree.KindMapping,
				Multiple:      true,
				ComponentType: "plugin",
				Properties:    pluginDefinition(catalog).Properties,
			},
			{
				Name:          "services",
				Label:         "Services",
				Type:          datatree.KindMapping,
				Multiple:      true,
				ComponentType: "service",
				Properties:    serviceDefinition().Properties,
			},
			{
				Name:          "entity_handlers",
				Label:         "Entity handlers",
				Type:          datatree.KindMapping,
				Multiple:      true,
				ComponentType: "entity_handler",
				Properties:    entityHandlerDefinition(catalog).Properties,
			},
			{
				Name:          "permissions",
				Label:         "Permissions",
				Type:          datatree.KindMapping,
				Multiple:      true,
				ComponentType: "permission",
				Properties:    permissionDefinition().Properties,
			},
			{
				Name:          "routing",
				Label:         "Routing file",
				Type:          datatree.KindBool,
				ComponentType: "routing",
			},
			{
				Name:          "config_schema",
				Label:         "Configuration schema",
				Type:          datatree.KindMapping,
				ComponentType: "config_schema",
				Properties:    configSchemaDefinition().Properties,
			},
		},
	}
}

// validateHooks rejects hook names the framework does not dispatch.
func validateHooks(catalog *framework.Catalog) datatree.ProcessFunc {
	return func(n *datatree.Node) error {
		for _, item := range n.Items() {
			hook := item.StringValue()
			if hook != "" && !catalog.KnowsHook(hook) {
				return fmt.Errorf("unknown hook %q", hook)
			}
		}
		return nil
	}
}

// defaultNameFromShortName fills the human-readable name from the machine
// name when the author left it empty: "content_tools" becomes
// "Content Tools".
func defaultNameFromShortName(n *datatree.Node) error {
	if n.StringValue() != "" {
		return nil
	}
	shortName := n.Parent().Get("short_name")
	if shortName == nil {
		return nil
	}
	humanized := strings.ReplaceAll(shortName.StringValue(), "_", " ")
	n.SetValue(cases.Title(language.English).String(humanized))
	return nil
}
