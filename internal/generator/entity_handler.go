package generator

import (
	"fmt"

	"github.com/cmsforge/cmsforge/internal/datatree"
	"github.com/cmsforge/cmsforge/internal/framework"
)

// EntityHandlerGenerator produces one entity handler class (storage, access,
// list builder, form) for an entity type.
type EntityHandlerGenerator struct {
	BaseGenerator
}

func newEntityHandlerGenerator(name string, data *datatree.Node) Generator {
	return &EntityHandlerGenerator{NewBase("entity_handler", name, data)}
}

// MatchTag implements Generator. Two handler requests for the same role
// under the same root refer to the same logical handler, whatever their
// local names are.
func (g *EntityHandlerGenerator) MatchTag() string {
	if ht := g.ComponentData().Get("handler_type"); ht != nil {
		return ht.StringValue()
	}
	return ""
}

// RequiredComponents implements Generator. Every handler is exposed to the
// container as a service named after its entity type and role.
func (g *EntityHandlerGenerator) RequiredComponents() map[string]Requirement {
	data := g.ComponentData()
	entityType, handlerType := "", ""
	if et := data.Get("entity_type"); et != nil {
		entityType = et.StringValue()
	}
	if ht := data.Get("handler_type"); ht != nil {
		handlerType = ht.StringValue()
	}
	if entityType == "" || handlerType == "" {
		return nil
	}

	values := map[string]interface{}{
		"service_name": entityType + "." + handlerType,
	}
	if class := data.Get("class"); class != nil && class.StringValue() != "" {
		values["class"] = class.StringValue()
	}
	return map[string]Requirement{
		"handler_service": {ComponentType: "service", Values: values},
	}
}

func entityHandlerDefinition(catalog *framework.Catalog) *datatree.PropertyDefinition {
	return &datatree.PropertyDefinition{
		Name:          "entity_handler",
		Label:         "Entity handler",
		Type:          datatree.KindMapping,
		ComponentType: "entity_handler",
		Properties: []*datatree.PropertyDefinition{
			{
				Name:     "entity_type",
				Label:    "Entity type id",
				Type:     datatree.KindString,
				Required: true,
			},
			{
				Name:     "handler_type",
				Label:    "Handler role",
				Type:     datatree.KindString,
				Required: true,
				Options:  catalog.HandlerTypeIDs(),
				Process:  resolveHandlerBaseClass(catalog),
			},
			{
				Name:  "class",
				Label: "Class",
				Type:  datatree.KindString,
			},
			{
				Name:  "base_class",
				Label: "Base class",
				Type:  datatree.KindString,
			},
		},
	}
}

// resolveHandlerBaseClass validates the handler role and fills the sibling
// base_class from the catalog when empty.
func resolveHandlerBaseClass(catalog *framework.Catalog) datatree.ProcessFunc {
	return func(n *datatree.Node) error {
		id := n.StringValue()
		if id == "" {
			return nil
		}
		ht, ok := catalog.HandlerType(id)
		if !ok {
			return fmt.Errorf("unknown entity handler role %q", id)
		}
		baseClass, err := n.Parent().Ensure("base_class")
		if err != nil {
			return err
		}
		if baseClass.StringValue() == "" {
			baseClass.SetValue(ht.BaseClass)
		}
		return nil
	}
}
