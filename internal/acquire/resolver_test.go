package acquire

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmsforge/cmsforge/internal/datatree"
	"github.com/cmsforge/cmsforge/internal/errors"
)

func TestJSONPathEvaluator_Evaluate(t *testing.T) {
	eval := NewJSONPathEvaluator()

	value, err := eval.Evaluate("$.requester.short_name", map[string]interface{}{
		"requester": map[string]interface{}{"short_name": "content_tools"},
	})
	require.NoError(t, err)
	assert.Equal(t, "content_tools", value)
}

func TestJSONPathEvaluator_InvalidExpression(t *testing.T) {
	eval := NewJSONPathEvaluator()

	_, err := eval.Evaluate("$[", map[string]interface{}{})
	assert.Error(t, err)
}

func TestJSONPathEvaluator_NoMatch(t *testing.T) {
	eval := NewJSONPathEvaluator()

	_, err := eval.Evaluate("$.requester.missing", map[string]interface{}{
		"requester": map[string]interface{}{"short_name": "x"},
	})
	assert.Error(t, err)
}

func acquisitionDefinition() *datatree.PropertyDefinition {
	return &datatree.PropertyDefinition{
		Name:          "routing",
		Type:          datatree.KindMapping,
		ComponentType: "routing",
		Properties: []*datatree.PropertyDefinition{
			{Name: "module_name", Type: datatree.KindString, Acquisition: "$.requester.short_name"},
			{Name: "title", Type: datatree.KindString},
		},
	}
}

func requesterData(t *testing.T) *datatree.Node {
	t.Helper()
	def := &datatree.PropertyDefinition{
		Name:          "module",
		Type:          datatree.KindMapping,
		ComponentType: "module",
		Properties: []*datatree.PropertyDefinition{
			{Name: "short_name", Type: datatree.KindString},
		},
	}
	node := datatree.NewFromDefinition(def)
	require.NoError(t, node.Populate(map[string]interface{}{"short_name": "content_tools"}))
	return node
}

func TestResolver_AcquiresValue(t *testing.T) {
	resolver := NewResolver(NewJSONPathEvaluator(), nil)
	node := datatree.NewFromDefinition(acquisitionDefinition())

	require.NoError(t, resolver.Resolve(context.Background(), node, requesterData(t)))
	assert.Equal(t, "content_tools", node.Get("module_name").StringValue())
}

func TestResolver_MissingRequester(t *testing.T) {
	resolver := NewResolver(NewJSONPathEvaluator(), nil)
	node := datatree.NewFromDefinition(acquisitionDefinition())

	err := resolver.Resolve(context.Background(), node, nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeAcquisitionNoRequester))
}

func TestResolver_EvaluationFailureCarriesDiagnostics(t *testing.T) {
	def := acquisitionDefinition()
	def.Properties[0].Acquisition = "$.requester.does_not_exist"
	resolver := NewResolver(NewJSONPathEvaluator(), nil)
	node := datatree.NewFromDefinition(def)

	err := resolver.Resolve(context.Background(), node, requesterData(t))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeAcquisitionEval))

	var fe *errors.ForgeError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "$.requester.does_not_exist", fe.Context["expression"])
	assert.NotNil(t, fe.Context["requester_data"])
}

func TestResolver_NoAcquisitionsNoRequesterNeeded(t *testing.T) {
	def := &datatree.PropertyDefinition{
		Name:          "module",
		Type:          datatree.KindMapping,
		ComponentType: "module",
		Properties: []*datatree.PropertyDefinition{
			{Name: "short_name", Type: datatree.KindString},
		},
	}
	resolver := NewResolver(NewJSONPathEvaluator(), nil)
	node := datatree.NewFromDefinition(def)

	// The root request has no requester; that is fine as long as nothing in
	// the tree declares an acquisition.
	assert.NoError(t, resolver.Resolve(context.Background(), node, nil))
}

func TestResolver_LeavesNestedComponentSubtreesAlone(t *testing.T) {
	def := &datatree.PropertyDefinition{
		Name:          "module",
		Type:          datatree.KindMapping,
		ComponentType: "module",
		Properties: []*datatree.PropertyDefinition{
			{Name: "short_name", Type: datatree.KindString},
			{
				Name:          "routing",
				Type:          datatree.KindMapping,
				ComponentType: "routing",
				Properties:    acquisitionDefinition().Properties,
			},
		},
	}
	resolver := NewResolver(NewJSONPathEvaluator(), nil)
	node := datatree.NewFromDefinition(def)
	require.NoError(t, node.Populate(map[string]interface{}{
		"short_name": "content_tools",
		"routing":    map[string]interface{}{"title": "overview"},
	}))

	// Only the routing subtree declares an acquisition, and routing is a
	// component: it resolves as its own request with its own requester.
	// The module request carries no requester and must still succeed.
	require.NoError(t, resolver.Resolve(context.Background(), node, nil))
	assert.Nil(t, node.GetPath("routing/module_name"))
}
