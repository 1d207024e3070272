package framework

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_EmbeddedSnapshot(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{"block", "field_formatter", "field_widget"}, c.PluginTypeIDs())
	assert.Equal(t, []string{"access", "form", "list_builder", "storage"}, c.HandlerTypeIDs())

	block, ok := c.PluginType("block")
	require.True(t, ok)
	assert.Equal(t, "Extension\\Core\\Block\\BlockBase", block.BaseClass)
	assert.Equal(t, "Plugin/Block", block.Subdir)

	storage, ok := c.HandlerType("storage")
	require.True(t, ok)
	assert.NotEmpty(t, storage.BaseClass)

	_, ok = c.PluginType("theme")
	assert.False(t, ok)

	assert.True(t, c.KnowsHook("form_alter"))
	assert.False(t, c.KnowsHook("made_up_hook"))
}

func TestLoad_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	raw := `
plugin_types:
  widget:
    label: Widget
    base_class: Vendor\Widget\WidgetBase
hooks:
  - boot
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"widget"}, c.PluginTypeIDs())
	assert.True(t, c.KnowsHook("boot"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
