package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmsforge/cmsforge/internal/datatree"
	"github.com/cmsforge/cmsforge/internal/framework"
)

func pluginNode(t *testing.T, values map[string]interface{}) *datatree.Node {
	t.Helper()
	node := datatree.NewFromDefinition(pluginDefinition(framework.Default()))
	require.NoError(t, node.Populate(values))
	return node
}

func TestPluginGenerator_MatchTag(t *testing.T) {
	node := pluginNode(t, map[string]interface{}{"plugin_name": "alpha", "plugin_type": "block"})
	g := newPluginGenerator("alpha", node)
	assert.Equal(t, "alpha", g.MatchTag())
}

func TestPluginGenerator_RequiredComponents(t *testing.T) {
	plain := newPluginGenerator("alpha",
		pluginNode(t, map[string]interface{}{"plugin_name": "alpha", "plugin_type": "block"}))
	assert.Empty(t, plain.RequiredComponents())

	configurable := newPluginGenerator("alpha", pluginNode(t, map[string]interface{}{
		"plugin_name":  "alpha",
		"plugin_type":  "block",
		"configurable": true,
	}))
	reqs := configurable.RequiredComponents()
	require.Contains(t, reqs, "settings_schema")
	assert.Equal(t, "config_schema", reqs["settings_schema"].ComponentType)
	assert.Equal(t, "alpha.settings", reqs["settings_schema"].Values["schema_id"])
}

func TestResolvePluginBaseClass(t *testing.T) {
	catalog := framework.Default()
	node := pluginNode(t, map[string]interface{}{"plugin_name": "alpha", "plugin_type": "block"})

	require.NoError(t, resolvePluginBaseClass(catalog)(node.Get("plugin_type")))
	assert.Equal(t, "Extension\\Core\\Block\\BlockBase", node.Get("base_class").StringValue())

	// An authored base class is left alone.
	node = pluginNode(t, map[string]interface{}{
		"plugin_name": "alpha",
		"plugin_type": "block",
		"base_class":  "My\\Base",
	})
	require.NoError(t, resolvePluginBaseClass(catalog)(node.Get("plugin_type")))
	assert.Equal(t, "My\\Base", node.Get("base_class").StringValue())
}

func TestResolvePluginBaseClass_UnknownType(t *testing.T) {
	catalog := framework.Default()
	node := pluginNode(t, map[string]interface{}{"plugin_name": "alpha", "plugin_type": "widget"})
	assert.Error(t, resolvePluginBaseClass(catalog)(node.Get("plugin_type")))
}

func TestEntityHandlerGenerator_RequiredComponents(t *testing.T) {
	node := datatree.NewFromDefinition(entityHandlerDefinition(framework.Default()))
	require.NoError(t, node.Populate(map[string]interface{}{
		"entity_type":  "node",
		"handler_type": "storage",
	}))
	g := newEntityHandlerGenerator("storage", node)

	assert.Equal(t, "storage", g.MatchTag())
	reqs := g.RequiredComponents()
	require.Contains(t, reqs, "handler_service")
	assert.Equal(t, "service", reqs["handler_service"].ComponentType)
	assert.Equal(t, "node.storage", reqs["handler_service"].Values["service_name"])
}

func TestDefaultNameFromShortName(t *testing.T) {
	node := datatree.NewFromDefinition(moduleDefinition(framework.Default()))
	require.NoError(t, node.Populate(map[string]interface{}{"short_name": "content_tools"}))
	name, err := node.Ensure("name")
	require.NoError(t, err)

	require.NoError(t, defaultNameFromShortName(name))
	assert.Equal(t, "Content Tools", name.StringValue())

	name.SetValue("My Tools")
	require.NoError(t, defaultNameFromShortName(name))
	assert.Equal(t, "My Tools", name.StringValue())
}

func TestValidateHooks(t *testing.T) {
	catalog := framework.Default()
	node := datatree.NewFromDefinition(moduleDefinition(catalog))
	require.NoError(t, node.Populate(map[string]interface{}{
		"short_name": "m",
		"hooks":      []interface{}{"install", "cron"},
	}))
	require.NoError(t, validateHooks(catalog)(node.Get("hooks")))

	require.NoError(t, node.Get("hooks").Populate([]interface{}{"made_up_hook"}))
	assert.Error(t, validateHooks(catalog)(node.Get("hooks")))
}
