// Package request loads authored component requests. The authoring format is
// a YAML mapping with a `type` key naming the root component type; every
// other key is a property of that component's request schema.
package request

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cmsforge/cmsforge/internal/datatree"
	"github.com/cmsforge/cmsforge/internal/errors"
	"github.com/cmsforge/cmsforge/internal/generator"
)

// Load reads a request file and materializes the root request node.
func Load(path string, reg *generator.Registry) (*datatree.Node, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError("request_read", "cannot read request file "+path, err)
	}
	return Parse(raw, reg)
}

// Parse builds a finalized root request node from raw YAML.
func Parse(raw []byte, reg *generator.Registry) (*datatree.Node, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeValidation, "request_parse", "request file is not valid YAML")
	}
	if len(doc) == 0 {
		return nil, errors.NewValidationError("request_empty", "request file is empty")
	}

	componentType, _ := doc["type"].(string)
	if componentType == "" {
		return nil, errors.NewValidationError("request_type", "request must declare a component type")
	}
	delete(doc, "type")

	rootDef, err := reg.RootDefinition(componentType)
	if err != nil {
		return nil, err
	}

	node := datatree.NewFromDefinition(rootDef)
	if err := node.Populate(doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeValidation, "request_populate", "request does not match the component schema")
	}
	return node, nil
}
