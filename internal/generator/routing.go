package generator

import (
	"github.com/cmsforge/cmsforge/internal/datatree"
)

// RoutingGenerator produces the module's routing file. It is usually
// requested as a bare presence flag on the module, so nearly all of its data
// arrives through acquisition from the requester.
type RoutingGenerator struct {
	BaseGenerator
}

func newRoutingGenerator(name string, data *datatree.Node) Generator {
	return &RoutingGenerator{NewBase("routing", name, data)}
}

func routingDefinition() *datatree.PropertyDefinition {
	return &datatree.PropertyDefinition{
		Name:          "routing",
		Label:         "Routing file",
		Type:          datatree.KindMapping,
		ComponentType: "routing",
		Properties: []*datatree.PropertyDefinition{
			{
				Name:        "module_name",
				Label:       "Owning module",
				Type:        datatree.KindString,
				Acquisition: "$.requester.short_name",
			},
			{
				Name:        "routes",
				Label:       "Route names",
				Type:        datatree.KindString,
				Multiple:    true,
				ForceCreate: true,
			},
		},
	}
}
