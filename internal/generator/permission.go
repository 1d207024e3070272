package generator

import (
	"github.com/cmsforge/cmsforge/internal/datatree"
)

// PermissionGenerator produces one entry in the module's permissions file.
type PermissionGenerator struct {
	BaseGenerator
}

func newPermissionGenerator(name string, data *datatree.Node) Generator {
	return &PermissionGenerator{NewBase("permission", name, data)}
}

// MatchTag implements Generator.
func (g *PermissionGenerator) MatchTag() string {
	if n := g.ComponentData().Get("permission_name"); n != nil {
		return n.StringValue()
	}
	return ""
}

func permissionDefinition() *datatree.PropertyDefinition {
	return &datatree.PropertyDefinition{
		Name:          "permission",
		Label:         "Permission",
		Type:          datatree.KindMapping,
		ComponentType: "permission",
		Properties: []*datatree.PropertyDefinition{
			{
				Name:     "permission_name",
				Label:    "Machine name",
				Type:     datatree.KindString,
				Required: true,
			},
			{
				Name:  "title",
				Label: "Title",
				Type:  datatree.KindString,
			},
			{
				Name:  "restrict_access",
				Label: "Restrict access warning",
				Type:  datatree.KindBool,
			},
		},
	}
}
