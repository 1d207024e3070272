//go:build property

package datatree

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestNodeProperties validates structural invariants of the data tree.
func TestNodeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1337)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	listDef := &PropertyDefinition{
		Name:     "hooks",
		Type:     KindString,
		Multiple: true,
	}

	// Property: item names are always the list name plus the item index.
	properties.Property("item names follow the list name and index", prop.ForAll(
		func(count int) bool {
			node := NewFromDefinition(listDef)
			for i := 0; i < count; i++ {
				if _, err := node.AppendValue(fmt.Sprintf("v%d", i)); err != nil {
					return false
				}
			}
			for i, item := range node.Items() {
				if item.Name() != fmt.Sprintf("hooks_%d", i) {
					return false
				}
			}
			return len(node.Items()) == count
		},
		gen.IntRange(0, 32),
	))

	// Property: merging a node into itself twice never reports a change the
	// second time.
	properties.Property("merge is idempotent", prop.ForAll(
		func(values []string) bool {
			dst := NewFromDefinition(listDef)
			src := NewFromDefinition(listDef)
			for _, v := range values {
				if _, err := src.AppendValue(v); err != nil {
					return false
				}
			}
			dst.Merge(src)
			return !dst.Merge(src)
		},
		gen.SliceOfN(5, gen.OneConstOf("a", "b", "c")),
	))

	// Property: AppendUnique never yields two items with equal values.
	properties.Property("append unique keeps the list a set", prop.ForAll(
		func(values []string) bool {
			node := NewFromDefinition(listDef)
			for _, v := range values {
				if _, err := node.AppendUnique(v); err != nil {
					return false
				}
			}
			seen := make(map[string]struct{})
			for _, item := range node.Items() {
				if _, dup := seen[item.StringValue()]; dup {
					return false
				}
				seen[item.StringValue()] = struct{}{}
			}
			return true
		},
		gen.SliceOfN(10, gen.OneConstOf("a", "b", "c", "d")),
	))

	properties.TestingRun(t)
}
