// Package process applies the ordered processing passes over a request's
// data tree before a component is instantiated from it: force-create, preset
// expansion, and processing callbacks. The preset pass runs once per overall
// resolution, at the root request, before any recursion.
package process

import (
	"context"
	"sort"
	"strings"

	"github.com/cmsforge/cmsforge/internal/datatree"
	"github.com/cmsforge/cmsforge/internal/errors"
	"github.com/cmsforge/cmsforge/internal/logging"
)

// Processor runs the three data passes in fixed order.
type Processor struct {
	logger logging.Logger
}

// NewProcessor creates a processor.
func NewProcessor(logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Processor{logger: logger.WithComponent("process")}
}

// Process applies the passes to the node's subtree. Presets apply only when
// root is true so that every preset-forced value exists before the collector
// recurses anywhere; callbacks always run last so they see forced values.
func (p *Processor) Process(ctx context.Context, node *datatree.Node, root bool) error {
	if err := p.forceCreate(node); err != nil {
		return err
	}
	if root {
		if err := p.applyPresets(ctx, node); err != nil {
			return err
		}
	}
	return p.runCallbacks(node)
}

// forceCreate ensures every property flagged force-create exists, so
// downstream passes and emitters can address it without nil checks.
func (p *Processor) forceCreate(node *datatree.Node) error {
	return node.Walk(func(n *datatree.Node) error {
		if n.IsMultiple() || n.Definition().Type != datatree.KindMapping {
			return nil
		}
		for _, pd := range n.Definition().Properties {
			if !pd.ForceCreate {
				continue
			}
			if _, err := n.Ensure(pd.Name); err != nil {
				return errors.Wrap(err, errors.ErrorTypeValidation, "force_create", "cannot force-create property")
			}
		}
		return nil
	})
}

// applyPresets resolves the forced and suggested values of every selected
// preset option in the tree. Forced values are appended to their targets;
// with several active options contributing to the same multi-valued target
// the contributions accumulate as a set union, never overwriting each other.
// Suggested values fill targets the author left empty and touch nothing else.
func (p *Processor) applyPresets(ctx context.Context, node *datatree.Node) error {
	return node.Walk(func(n *datatree.Node) error {
		def := n.Definition()
		if len(def.Presets) == 0 || n.IsEmpty() {
			return nil
		}
		// Passes act on property nodes; list items are skipped so a
		// multi-valued enum applies its presets exactly once.
		if n.Parent() != nil && n.Parent().IsMultiple() {
			return nil
		}

		for _, selected := range selectedOptions(n) {
			preset, ok := def.Presets[selected]
			if !ok {
				continue
			}
			p.logger.Debug(ctx, "applying preset", "property", n.Path(), "option", selected)
			if err := p.applyPreset(n, preset); err != nil {
				return err
			}
		}
		return nil
	})
}

func (p *Processor) applyPreset(n *datatree.Node, preset datatree.Preset) error {
	scope := n.Parent()
	if scope == nil {
		scope = n
	}

	for _, target := range sortedTargets(preset.Force) {
		targetNode, err := ensurePath(scope, target)
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeValidation, "preset_target", "preset forces values into an unknown property")
		}
		for _, v := range preset.Force[target] {
			if _, err := targetNode.AppendUnique(v); err != nil {
				return errors.Wrap(err, errors.ErrorTypeValidation, "preset_target", "preset forced value does not fit its target")
			}
		}
	}

	for _, target := range sortedSuggestTargets(preset.Suggest) {
		targetNode, err := ensurePath(scope, target)
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeValidation, "preset_target", "preset suggests a value for an unknown property")
		}
		// Schema defaults yield to suggestions; authored values never do.
		if !targetNode.IsEmpty() && !targetNode.IsDefaulted() {
			continue
		}
		if err := targetNode.Populate(preset.Suggest[target]); err != nil {
			return errors.Wrap(err, errors.ErrorTypeValidation, "preset_target", "preset suggested value does not fit its target")
		}
	}
	return nil
}

// runCallbacks invokes each property's processing callback. Runs after
// presets so callbacks observe preset-forced values.
func (p *Processor) runCallbacks(node *datatree.Node) error {
	return node.Walk(func(n *datatree.Node) error {
		if n.Definition().Process == nil {
			return nil
		}
		if n.Parent() != nil && n.Parent().IsMultiple() {
			return nil
		}
		if err := n.Definition().Process(n); err != nil {
			return errors.Wrap(err, errors.ErrorTypeValidation, "process_callback", "processing callback failed")
		}
		return nil
	})
}

// selectedOptions returns the chosen option values of an enumerated
// property, one for a scalar, several for a multi-valued one.
func selectedOptions(n *datatree.Node) []string {
	if !n.IsMultiple() {
		if s := n.StringValue(); s != "" {
			return []string{s}
		}
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

// ensurePath resolves a preset target path against the preset property's
// parent, creating addressed properties along the way. ".." climbs a level
// so presets can reach past their immediate siblings.
func ensurePath(base *datatree.Node, path string) (*datatree.Node, error) {
	current := base
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			current = current.Parent()
			if current == nil {
				return nil, errors.NewValidationError("preset_target", "preset target escapes the data tree")
			}
		default:
			next, err := current.Ensure(seg)
			if err != nil {
				return nil, err
			}
			current = next
		}
	}
	return current, nil
}

func sortedTargets(m map[string][]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSuggestTargets(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
