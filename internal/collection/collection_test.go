package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmsforge/cmsforge/internal/errors"
	"github.com/cmsforge/cmsforge/internal/generator"
)

type fakeGenerator struct {
	generator.BaseGenerator
	tag string
}

func (g *fakeGenerator) MatchTag() string { return g.tag }

func fake(componentType, name, tag string) *fakeGenerator {
	base := generator.NewBase(componentType, name, nil)
	return &fakeGenerator{BaseGenerator: base, tag: tag}
}

func TestCollection_AddAndLookup(t *testing.T) {
	c := New()
	root := fake("module", "test_module", "")
	plugin := fake("plugin", "alpha", "alpha")

	require.NoError(t, c.AddComponent("test_module", root, nil))
	require.NoError(t, c.AddComponent("alpha", plugin, root))

	assert.Equal(t, 2, c.Len())
	assert.Same(t, root, c.Root())
	assert.Same(t, plugin, c.Get("alpha"))
	assert.Len(t, c.ByType("plugin"), 1)

	requester, ok := c.RequesterOf(plugin)
	require.True(t, ok)
	assert.Same(t, root, requester)
}

func TestCollection_DuplicateNameSameRequester(t *testing.T) {
	c := New()
	root := fake("module", "test_module", "")
	require.NoError(t, c.AddComponent("test_module", root, nil))
	require.NoError(t, c.AddComponent("alpha", fake("plugin", "alpha", "alpha"), root))

	err := c.AddComponent("alpha", fake("plugin", "alpha", "beta"), root)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeDuplicateName))
}

func TestCollection_SameNameDifferentRequesters(t *testing.T) {
	c := New()
	root := fake("module", "test_module", "")
	plugin := fake("plugin", "alpha", "alpha")
	require.NoError(t, c.AddComponent("test_module", root, nil))
	require.NoError(t, c.AddComponent("alpha", plugin, root))

	// A same-named request from a different component is not a name clash.
	assert.NoError(t, c.AddComponent("alpha", fake("service", "alpha", "alpha"), plugin))
}

func TestCollection_GetMatchingSameRootAndTag(t *testing.T) {
	c := New()
	root := fake("module", "test_module", "")
	plugin := fake("plugin", "alpha", "alpha")
	handler := fake("entity_handler", "node_storage", "storage")
	require.NoError(t, c.AddComponent("test_module", root, nil))
	require.NoError(t, c.AddComponent("alpha", plugin, root))
	require.NoError(t, c.AddComponent("node_storage", handler, root))

	// Requested again deeper in the graph, the key still resolves to the
	// same root ancestor and matches the existing instance.
	candidate := fake("entity_handler", "content_storage", "storage")
	assert.Same(t, handler, c.GetMatching(candidate, plugin))
}

func TestCollection_GetMatchingDistinguishesTags(t *testing.T) {
	c := New()
	root := fake("module", "test_module", "")
	require.NoError(t, c.AddComponent("test_module", root, nil))
	require.NoError(t, c.AddComponent("storage", fake("entity_handler", "storage", "storage"), root))

	candidate := fake("entity_handler", "access", "access")
	assert.Nil(t, c.GetMatching(candidate, root))
}

func TestCollection_GetMatchingDistinguishesRoots(t *testing.T) {
	c := New()
	rootA := fake("module", "module_a", "")
	rootB := fake("module", "module_b", "")
	handlerA := fake("entity_handler", "storage", "storage")
	require.NoError(t, c.AddComponent("module_a", rootA, nil))
	require.NoError(t, c.AddComponent("module_b", rootB, nil))
	require.NoError(t, c.AddComponent("storage", handlerA, rootA))

	candidate := fake("entity_handler", "storage", "storage")
	assert.Nil(t, c.GetMatching(candidate, rootB), "matching never crosses root ancestors")
}

func TestCollection_AliasNamesCountTowardInstance(t *testing.T) {
	c := New()
	root := fake("module", "test_module", "")
	handler := fake("entity_handler", "node_storage", "storage")
	require.NoError(t, c.AddComponent("test_module", root, nil))
	require.NoError(t, c.AddComponent("node_storage", handler, root))
	c.AddAliasedComponent("content_storage", handler, root)

	assert.Equal(t, []string{"content_storage", "node_storage"}, c.NamesOf(handler))
	assert.Equal(t, 2, c.Len(), "aliases do not create canonical entries")
}
