package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmsforge/cmsforge/internal/datatree"
	"github.com/cmsforge/cmsforge/internal/errors"
)

func TestDefaultRegistry_Types(t *testing.T) {
	reg := NewDefaultRegistry(nil)
	assert.Equal(t, []string{
		"config_schema", "entity_handler", "module", "permission",
		"plugin", "routing", "service",
	}, reg.Types())
}

func TestRegistry_UnknownType(t *testing.T) {
	reg := NewDefaultRegistry(nil)

	_, err := reg.Get("theme", "x", nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeUnknownComponentType))

	_, err = reg.RootDefinition("theme")
	assert.Error(t, err)
}

func TestRegistry_PropertyDefinition(t *testing.T) {
	reg := NewDefaultRegistry(nil)

	pd, err := reg.PropertyDefinition("module", "short_name")
	require.NoError(t, err)
	assert.True(t, pd.Required)

	_, err = reg.PropertyDefinition("module", "nonsense")
	assert.Error(t, err)
}

func TestRegistry_Get(t *testing.T) {
	reg := NewDefaultRegistry(nil)
	rootDef, err := reg.RootDefinition("module")
	require.NoError(t, err)
	node := datatree.NewFromDefinition(rootDef)

	g, err := reg.Get("module", "my_module", node)
	require.NoError(t, err)
	assert.Equal(t, "module", g.Type())
	assert.Equal(t, "my_module", g.Name())
	assert.Same(t, node, g.ComponentData())
}
