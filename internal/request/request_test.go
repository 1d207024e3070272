package request

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmsforge/cmsforge/internal/errors"
	"github.com/cmsforge/cmsforge/internal/generator"
)

func TestParse_ModuleRequest(t *testing.T) {
	reg := generator.NewDefaultRegistry(nil)
	raw := []byte(`
type: module
short_name: content_tools
plugins:
  - plugin_name: teaser
    plugin_type: block
`)

	node, err := Parse(raw, reg)
	require.NoError(t, err)

	assert.Equal(t, "module", node.ComponentType())
	assert.Equal(t, "content_tools", node.Get("short_name").StringValue())
	plugins := node.Get("plugins")
	require.NotNil(t, plugins)
	require.Len(t, plugins.Items(), 1)
	assert.Equal(t, "teaser", plugins.Items()[0].Get("plugin_name").StringValue())

	// The type discriminator is not request data.
	assert.Nil(t, node.Get("type"))
}

func TestParse_Failures(t *testing.T) {
	reg := generator.NewDefaultRegistry(nil)

	_, err := Parse([]byte("{"), reg)
	assert.True(t, errors.HasCode(err, "request_parse"))

	_, err = Parse([]byte(""), reg)
	assert.True(t, errors.HasCode(err, "request_empty"))

	_, err = Parse([]byte("short_name: x"), reg)
	assert.True(t, errors.HasCode(err, "request_type"))

	_, err = Parse([]byte("type: theme"), reg)
	assert.True(t, errors.HasCode(err, errors.CodeUnknownComponentType))

	_, err = Parse([]byte("type: module\nnonsense: x"), reg)
	assert.True(t, errors.HasCode(err, "request_populate"))
}

func TestLoad(t *testing.T) {
	reg := generator.NewDefaultRegistry(nil)
	path := filepath.Join(t.TempDir(), "request.yml")
	require.NoError(t, os.WriteFile(path, []byte("type: module\nshort_name: m\n"), 0o644))

	node, err := Load(path, reg)
	require.NoError(t, err)
	assert.Equal(t, "m", node.Get("short_name").StringValue())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"), reg)
	assert.True(t, errors.HasCode(err, "request_read"))
}
