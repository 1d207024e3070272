package generator

import (
	"github.com/cmsforge/cmsforge/internal/datatree"
)

// ServiceGenerator produces one container service definition plus its class
// stub.
type ServiceGenerator struct {
	BaseGenerator
}

func newServiceGenerator(name string, data *datatree.Node) Generator {
	return &ServiceGenerator{NewBase("service", name, data)}
}

// MatchTag implements Generator. Services are identified by their container
// id, so two requests for the same service id under one root merge.
func (g *ServiceGenerator) MatchTag() string {
	if sn := g.ComponentData().Get("service_name"); sn != nil {
		return sn.StringValue()
	}
	return ""
}

func serviceDefinition() *datatree.PropertyDefinition {
	return &datatree.PropertyDefinition{
		Name:          "service",
		Label:         "Service",
		Type:          datatree.KindMapping,
		ComponentType: "service",
		Properties: []*datatree.PropertyDefinition{
			{
				Name:     "service_name",
				Label:    "Container id",
				Type:     datatree.KindString,
				Required: true,
			},
			{
				Name:  "class",
				Label: "Class",
				Type:  datatree.KindString,
			},
			{
				Name:     "arguments",
				Label:    "Constructor arguments",
				Type:     datatree.KindString,
				Multiple: true,
			},
			{
				Name:        "tags",
				Label:       "Service tags",
				Type:        datatree.KindString,
				Multiple:    true,
				ForceCreate: true,
			},
		},
	}
}
