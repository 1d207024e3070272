// Package emit turns a finished component collection into in-memory source
// files: info and config YAML, class stubs, hook skeletons. Emitters are
// consumers of the resolved tree; they never mutate it.
package emit

import (
	"sort"

	"github.com/cmsforge/cmsforge/internal/collection"
	"github.com/cmsforge/cmsforge/internal/errors"
	"github.com/cmsforge/cmsforge/internal/framework"
	"github.com/cmsforge/cmsforge/internal/generator"
)

// File is one generated source file, held in memory until a front-end
// decides to write it.
type File struct {
	Path    string
	Content []byte
}

// Emitter produces zero or more files from a finished collection.
type Emitter interface {
	Name() string
	Emit(col *collection.Collection) ([]File, error)
}

// Pipeline runs a fixed emitter set over a collection.
type Pipeline struct {
	emitters []Emitter
}

// NewPipeline creates the default emitter pipeline for a framework catalog.
func NewPipeline(catalog *framework.Catalog) *Pipeline {
	if catalog == nil {
		catalog = framework.Default()
	}
	return &Pipeline{
		emitters: []Emitter{
			&InfoEmitter{},
			&ModuleFileEmitter{},
			&ServicesEmitter{},
			&PermissionsEmitter{},
			&RoutingEmitter{},
			&ConfigSchemaEmitter{},
			&PluginClassEmitter{catalog: catalog},
			&EntityHandlerClassEmitter{catalog: catalog},
		},
	}
}

// Run executes every emitter and returns the files sorted by path.
func (p *Pipeline) Run(col *collection.Collection) ([]File, error) {
	var out []File
	for _, e := range p.emitters {
		files, err := e.Emit(col)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeInternal, "emit", "emitter "+e.Name()+" failed")
		}
		out = append(out, files...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// rootModule returns the module instance a collection was resolved for, or
// nil when the root request was not a module.
func rootModule(col *collection.Collection) generator.Generator {
	root := col.Root()
	if root == nil || root.Type() != "module" {
		return nil
	}
	return root
}

func moduleShortName(col *collection.Collection) string {
	mod := rootModule(col)
	if mod == nil {
		return ""
	}
	if sn := mod.ComponentData().Get("short_name"); sn != nil {
		return sn.StringValue()
	}
	return ""
}

func stringProp(g generator.Generator, name string) string {
	if n := g.ComponentData().Get(name); n != nil {
		return n.StringValue()
	}
	return ""
}

func stringListProp(g generator.Generator, name string) []string {
	n := g.ComponentData().Get(name)
	if n == nil {
		return nil
	}
	var out []string
	for _, item := range n.Items() {
		if s := item.StringValue(); s != "" {
			out = append(out, s)
		}
	}
	return out
}
