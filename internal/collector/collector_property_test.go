//go:build property

package collector

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/cmsforge/cmsforge/internal/datatree"
	"github.com/cmsforge/cmsforge/internal/generator"
)

// TestCollectorProperties validates invariants of the resolution engine over
// generated request shapes.
func TestCollectorProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(4242)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	pluginNames := gen.SliceOfN(6, gen.OneConstOf("alpha", "beta", "gamma", "delta"))

	// Property: one canonical plugin instance per distinct plugin name, no
	// matter how often each name is requested.
	properties.Property("duplicate plugin requests collapse by name", prop.ForAll(
		func(names []string) bool {
			reg := generator.NewDefaultRegistry(nil)
			rootDef, err := reg.RootDefinition("module")
			if err != nil {
				return false
			}

			var plugins []interface{}
			distinct := make(map[string]struct{})
			for _, name := range names {
				distinct[name] = struct{}{}
				plugins = append(plugins, map[string]interface{}{
					"plugin_name": name,
					"plugin_type": "block",
				})
			}

			node := datatree.NewFromDefinition(rootDef)
			if err := node.Populate(map[string]interface{}{
				"short_name": "prop_module",
				"plugins":    plugins,
			}); err != nil {
				return false
			}

			col, err := New(reg, nil).Collect(context.Background(), node)
			if err != nil {
				return false
			}
			return len(col.ByType("plugin")) == len(distinct)
		},
		pluginNames,
	))

	// Property: every request ever made is reachable by name, as a canonical
	// entry or an alias of one.
	properties.Property("every request name resolves to an instance", prop.ForAll(
		func(names []string) bool {
			reg := generator.NewDefaultRegistry(nil)
			rootDef, err := reg.RootDefinition("module")
			if err != nil {
				return false
			}

			var plugins []interface{}
			for _, name := range names {
				plugins = append(plugins, map[string]interface{}{
					"plugin_name": name,
					"plugin_type": "block",
				})
			}

			node := datatree.NewFromDefinition(rootDef)
			if err := node.Populate(map[string]interface{}{
				"short_name": "prop_module",
				"plugins":    plugins,
			}); err != nil {
				return false
			}

			col, err := New(reg, nil).Collect(context.Background(), node)
			if err != nil {
				return false
			}

			total := 0
			for _, p := range col.ByType("plugin") {
				total += len(col.NamesOf(p))
			}
			return total == len(names)
		},
		pluginNames,
	))

	// Property: preset contributions to a multi-valued target are a set
	// union, so the active option order never changes the result.
	properties.Property("preset union is order independent", prop.ForAll(
		func(first bool) bool {
			features := []interface{}{"settings_form", "content_listing"}
			if !first {
				features = []interface{}{"content_listing", "settings_form"}
			}

			reg := generator.NewDefaultRegistry(nil)
			rootDef, err := reg.RootDefinition("module")
			if err != nil {
				return false
			}
			node := datatree.NewFromDefinition(rootDef)
			if err := node.Populate(map[string]interface{}{
				"short_name": "prop_module",
				"features":   features,
			}); err != nil {
				return false
			}

			col, err := New(reg, nil).Collect(context.Background(), node)
			if err != nil {
				return false
			}

			hooks := col.Root().ComponentData().Get("hooks")
			if hooks == nil {
				return false
			}
			seen := make(map[string]struct{})
			for _, item := range hooks.Items() {
				if _, dup := seen[item.StringValue()]; dup {
					return false
				}
				seen[item.StringValue()] = struct{}{}
			}
			return len(seen) == 3
		},
		gen.Bool(),
	))

	properties.TestingRun(t)
}
