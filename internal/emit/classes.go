package emit

import (
	"bytes"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cmsforge/cmsforge/internal/collection"
	"github.com/cmsforge/cmsforge/internal/framework"
)

var pluginClassTemplate = template.Must(template.New("plugin_class").Parse(`<?php

namespace Extension\{{ .ModuleNamespace }}\{{ .SubdirNamespace }};

use {{ .BaseClass }};

/**
 * @{{ .AnnotationID }}(
 *   id = "{{ .PluginID }}",
 *   label = "{{ .Label }}"
 * )
 */
class {{ .ClassName }} extends {{ .BaseClassShort }} {
{{ range .InjectedServices }}
  /**
   * The {{ . }} service.
   */
  protected ${{ . }};
{{ end }}
}
`))

var handlerClassTemplate = template.Must(template.New("handler_class").Parse(`<?php

namespace Extension\{{ .ModuleNamespace }}\Entity;

use {{ .BaseClass }};

/**
 * {{ .Label }} handler for the {{ .EntityType }} entity type.
 */
class {{ .ClassName }} extends {{ .BaseClassShort }} {

}
`))

var moduleFileTemplate = template.Must(template.New("module_file").Parse(`<?php

/**
 * @file
 * Hook implementations for the {{ .Name }} module.
 */
{{ range .Hooks }}
/**
 * Implements hook_{{ . }}().
 */
function {{ $.ShortName }}_{{ . }}() {

}
{{ end }}`))

// classCase converts a machine name like "hello_block" to "HelloBlock".
func classCase(machineName string) string {
	titled := cases.Title(language.English).String(strings.ReplaceAll(machineName, "_", " "))
	return strings.ReplaceAll(titled, " ", "")
}

// shortClass returns the final segment of a backslash-qualified class name.
func shortClass(qualified string) string {
	parts := strings.Split(qualified, `\`)
	return parts[len(parts)-1]
}

// PluginClassEmitter writes one annotated class stub per plugin component.
type PluginClassEmitter struct {
	catalog *framework.Catalog
}

// Name implements Emitter.
func (e *PluginClassEmitter) Name() string { return "plugin_class" }

// Emit implements Emitter.
func (e *PluginClassEmitter) Emit(col *collection.Collection) ([]File, error) {
	plugins := col.ByType("plugin")
	if len(plugins) == 0 {
		return nil, nil
	}
	shortName := moduleShortName(col)

	var files []File
	for _, p := range plugins {
		pluginID := stringProp(p, "plugin_name")
		pluginType := stringProp(p, "plugin_type")
		pt, _ := e.catalog.PluginType(pluginType)

		baseClass := stringProp(p, "base_class")
		if baseClass == "" {
			baseClass = pt.BaseClass
		}
		label := stringProp(p, "label")
		if label == "" {
			label = pluginID
		}

		var buf bytes.Buffer
		err := pluginClassTemplate.Execute(&buf, map[string]interface{}{
			"ModuleNamespace":  classCase(shortName),
			"SubdirNamespace":  strings.ReplaceAll(pt.Subdir, "/", `\`),
			"BaseClass":        baseClass,
			"BaseClassShort":   shortClass(baseClass),
			"AnnotationID":     pt.AnnotationID,
			"PluginID":         pluginID,
			"Label":            label,
			"ClassName":        classCase(pluginID),
			"InjectedServices": stringListProp(p, "injected_services"),
		})
		if err != nil {
			return nil, err
		}
		files = append(files, File{
			Path:    shortName + "/src/" + pt.Subdir + "/" + classCase(pluginID) + ".php",
			Content: buf.Bytes(),
		})
	}
	return files, nil
}

// EntityHandlerClassEmitter writes one class stub per entity handler.
type EntityHandlerClassEmitter struct {
	catalog *framework.Catalog
}

// Name implements Emitter.
func (e *EntityHandlerClassEmitter) Name() string { return "entity_handler_class" }

// Emit implements Emitter.
func (e *EntityHandlerClassEmitter) Emit(col *collection.Collection) ([]File, error) {
	handlers := col.ByType("entity_handler")
	if len(handlers) == 0 {
		return nil, nil
	}
	shortName := moduleShortName(col)

	var files []File
	for _, h := range handlers {
		entityType := stringProp(h, "entity_type")
		handlerType := stringProp(h, "handler_type")
		ht, _ := e.catalog.HandlerType(handlerType)

		baseClass := stringProp(h, "base_class")
		if baseClass == "" {
			baseClass = ht.BaseClass
		}
		className := stringProp(h, "class")
		if className == "" {
			className = classCase(entityType) + classCase(handlerType)
		}

		var buf bytes.Buffer
		err := handlerClassTemplate.Execute(&buf, map[string]interface{}{
			"ModuleNamespace": classCase(shortName),
			"BaseClass":       baseClass,
			"BaseClassShort":  shortClass(baseClass),
			"Label":           ht.Label,
			"EntityType":      entityType,
			"ClassName":       shortClass(className),
		})
		if err != nil {
			return nil, err
		}
		files = append(files, File{
			Path:    shortName + "/src/Entity/" + shortClass(className) + ".php",
			Content: buf.Bytes(),
		})
	}
	return files, nil
}

// ModuleFileEmitter writes the hook implementation skeleton file.
type ModuleFileEmitter struct{}

// Name implements Emitter.
func (e *ModuleFileEmitter) Name() string { return "module_file" }

// Emit implements Emitter.
func (e *ModuleFileEmitter) Emit(col *collection.Collection) ([]File, error) {
	mod := rootModule(col)
	if mod == nil {
		return nil, nil
	}
	hooks := stringListProp(mod, "hooks")
	if len(hooks) == 0 {
		return nil, nil
	}
	shortName := moduleShortName(col)

	var buf bytes.Buffer
	err := moduleFileTemplate.Execute(&buf, map[string]interface{}{
		"Name":      stringProp(mod, "name"),
		"ShortName": shortName,
		"Hooks":     hooks,
	})
	if err != nil {
		return nil, err
	}
	return []File{{Path: shortName + "/" + shortName + ".module", Content: buf.Bytes()}}, nil
}
