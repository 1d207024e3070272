package emit

import (
	"gopkg.in/yaml.v3"

	"github.com/cmsforge/cmsforge/internal/collection"
)

// InfoEmitter writes the module's info file.
type InfoEmitter struct{}

// Name implements Emitter.
func (e *InfoEmitter) Name() string { return "info" }

type infoFile struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description,omitempty"`
	Package     string `yaml:"package,omitempty"`
	CoreVersion string `yaml:"core_version_requirement,omitempty"`
}

// Emit implements Emitter.
func (e *InfoEmitter) Emit(col *collection.Collection) ([]File, error) {
	mod := rootModule(col)
	if mod == nil {
		return nil, nil
	}
	shortName := moduleShortName(col)

	info := infoFile{
		Name:        stringProp(mod, "name"),
		Type:        "module",
		Description: stringProp(mod, "description"),
		Package:     stringProp(mod, "package"),
		CoreVersion: stringProp(mod, "core_version"),
	}
	content, err := yaml.Marshal(info)
	if err != nil {
		return nil, err
	}
	return []File{{Path: shortName + "/" + shortName + ".info.yml", Content: content}}, nil
}

// ServicesEmitter writes the container services file covering service
// components and the services entity handlers demand.
type ServicesEmitter struct{}

// Name implements Emitter.
func (e *ServicesEmitter) Name() string { return "services" }

type serviceEntry struct {
	Class     string   `yaml:"class,omitempty"`
	Arguments []string `yaml:"arguments,omitempty"`
	Tags      []string `yaml:"tags,omitempty"`
}

// Emit implements Emitter.
func (e *ServicesEmitter) Emit(col *collection.Collection) ([]File, error) {
	services := col.ByType("service")
	if len(services) == 0 {
		return nil, nil
	}
	shortName := moduleShortName(col)

	entries := make(map[string]serviceEntry, len(services))
	for _, svc := range services {
		id := stringProp(svc, "service_name")
		if id == "" {
			continue
		}
		entries[id] = serviceEntry{
			Class:     stringProp(svc, "class"),
			Arguments: stringListProp(svc, "arguments"),
			Tags:      stringListProp(svc, "tags"),
		}
	}

	content, err := yaml.Marshal(map[string]interface{}{"services": entries})
	if err != nil {
		return nil, err
	}
	return []File{{Path: shortName + "/" + shortName + ".services.yml", Content: content}}, nil
}

// PermissionsEmitter writes the permissions file.
type PermissionsEmitter struct{}

// Name implements Emitter.
func (e *PermissionsEmitter) Name() string { return "permissions" }

// Emit implements Emitter.
func (e *PermissionsEmitter) Emit(col *collection.Collection) ([]File, error) {
	permissions := col.ByType("permission")
	if len(permissions) == 0 {
		return nil, nil
	}
	shortName := moduleShortName(col)

	entries := make(map[string]map[string]interface{}, len(permissions))
	for _, p := range permissions {
		name := stringProp(p, "permission_name")
		if name == "" {
			continue
		}
		entry := map[string]interface{}{
			"title": stringProp(p, "title"),
		}
		if restrict := p.ComponentData().Get("restrict_access"); restrict != nil && restrict.BoolValue() {
			entry["restrict access"] = true
		}
		entries[name] = entry
	}

	content, err := yaml.Marshal(entries)
	if err != nil {
		return nil, err
	}
	return []File{{Path: shortName + "/" + shortName + ".permissions.yml", Content: content}}, nil
}

// RoutingEmitter writes the routing file when a routing component was
// collected.
type RoutingEmitter struct{}

// Name implements Emitter.
func (e *RoutingEmitter) Name() string { return "routing" }

// Emit implements Emitter.
func (e *RoutingEmitter) Emit(col *collection.Collection) ([]File, error) {
	routings := col.ByType("routing")
	if len(routings) == 0 {
		return nil, nil
	}
	shortName := moduleShortName(col)

	routes := make(map[string]interface{})
	for _, r := range routings {
		owner := stringProp(r, "module_name")
		for _, route := range stringListProp(r, "routes") {
			routes[owner+"."+route] = map[string]interface{}{
				"path": "/" + owner + "/" + route,
			}
		}
	}

	content, err := yaml.Marshal(routes)
	if err != nil {
		return nil, err
	}
	return []File{{Path: shortName + "/" + shortName + ".routing.yml", Content: content}}, nil
}

// ConfigSchemaEmitter writes the configuration schema file.
type ConfigSchemaEmitter struct{}

// Name implements Emitter.
func (e *ConfigSchemaEmitter) Name() string { return "config_schema" }

// Emit implements Emitter.
func (e *ConfigSchemaEmitter) Emit(col *collection.Collection) ([]File, error) {
	schemas := col.ByType("config_schema")
	if len(schemas) == 0 {
		return nil, nil
	}
	shortName := moduleShortName(col)

	entries := make(map[string]interface{}, len(schemas))
	for _, s := range schemas {
		id := stringProp(s, "schema_id")
		if id == "" {
			id = shortName + ".settings"
		}
		mapping := make(map[string]interface{})
		for _, key := range stringListProp(s, "entries") {
			mapping[key] = map[string]interface{}{"type": "string"}
		}
		entries[id] = map[string]interface{}{
			"type":    stringProp(s, "schema_type"),
			"mapping": mapping,
		}
	}

	content, err := yaml.Marshal(entries)
	if err != nil {
		return nil, err
	}
	return []File{{Path: shortName + "/config/schema/" + shortName + ".schema.yml", Content: content}}, nil
}
