// Package collector implements the recursive request-resolution engine: it
// turns a root request node into a deduplicated collection of generator
// instances, acquiring data between parent and child requests, processing
// each request's data, and recursing into data-defined children and
// generator-declared requirements until no component demands anything more.
package collector

import (
	"context"
	stderrors "errors"
	"sort"

	"github.com/cmsforge/cmsforge/internal/acquire"
	"github.com/cmsforge/cmsforge/internal/collection"
	"github.com/cmsforge/cmsforge/internal/datatree"
	"github.com/cmsforge/cmsforge/internal/errors"
	"github.com/cmsforge/cmsforge/internal/generator"
	"github.com/cmsforge/cmsforge/internal/logging"
	"github.com/cmsforge/cmsforge/internal/process"
)

// DefaultMaxDepth bounds the component request tree. Hitting it means a
// generator declares requirements that never settle; failing with a
// diagnostic beats exhausting the stack.
const DefaultMaxDepth = 64

// Options configures a Collector.
type Options struct {
	// Evaluator handles acquisition expressions. Defaults to JSONPath.
	Evaluator acquire.Evaluator
	// MaxDepth bounds the recursion. Defaults to DefaultMaxDepth.
	MaxDepth int
	Logger   logging.Logger
}

// Collector drives resolution runs. A Collector is reusable across runs but
// a single run is strictly single-threaded and each run gets its own fresh
// Collection.
type Collector struct {
	registry  *generator.Registry
	resolver  *acquire.Resolver
	processor *process.Processor
	maxDepth  int
	logger    logging.Logger
}

// New creates a collector over a generator registry.
func New(registry *generator.Registry, opts *Options) *Collector {
	if opts == nil {
		opts = &Options{}
	}
	eval := opts.Evaluator
	if eval == nil {
		eval = acquire.NewJSONPathEvaluator()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Collector{
		registry:  registry,
		resolver:  acquire.NewResolver(eval, logger),
		processor: process.NewProcessor(logger),
		maxDepth:  maxDepth,
		logger:    logger.WithComponent("collector"),
	}
}

// Collect resolves a root request into a fresh component collection. Any
// error means no valid component tree was produced; there is no partial
// result mode.
func (c *Collector) Collect(ctx context.Context, root *datatree.Node) (*collection.Collection, error) {
	col := collection.New()
	tr := &trace{}
	if _, err := c.resolve(ctx, root, nil, col, tr); err != nil {
		return nil, err
	}
	return col, nil
}

// resolve handles one request node: acquisition, processing, instantiation
// or duplicate matching, then recursion into data-defined children and
// generator-required subcomponents.
func (c *Collector) resolve(ctx context.Context, node *datatree.Node, requester generator.Generator, col *collection.Collection, tr *trace) (generator.Generator, error) {
	name := node.Name()
	componentType := node.ComponentType()

	if tr.depth() >= c.maxDepth {
		return nil, errors.NewMaxDepthError(c.maxDepth).
			WithComponent(componentType).
			WithContext("request_chain", tr.chain())
	}
	tr.push(name, componentType)
	defer tr.pop()

	c.logger.Debug(ctx, "resolving request", "name", name, "type", componentType, "chain", tr.chain())

	var requesterData *datatree.Node
	if requester != nil {
		requesterData = requester.ComponentData()
	}
	if err := c.resolver.Resolve(ctx, node, requesterData); err != nil {
		return nil, withChain(err, tr)
	}

	if err := c.processor.Process(ctx, node, requester == nil); err != nil {
		return nil, withChain(err, tr)
	}

	if err := c.validateRequired(node); err != nil {
		return nil, withChain(err, tr)
	}

	candidate, err := c.registry.Get(componentType, name, node)
	if err != nil {
		return nil, withChain(err, tr)
	}

	instance := candidate
	if match := col.GetMatching(candidate, requester); match != nil {
		changed := match.MergeComponentData(node)
		col.AddAliasedComponent(name, match, requester)
		if !changed {
			// The existing component already resolved its children; with no
			// new data there is nothing further to discover.
			c.logger.Debug(ctx, "duplicate request short-circuited", "name", name, "type", componentType)
			return match, nil
		}
		c.logger.Debug(ctx, "duplicate request merged", "name", name, "type", componentType)
		instance = match
	} else {
		if err := col.AddComponent(name, candidate, requester); err != nil {
			return nil, withChain(err, tr)
		}
	}

	childNames, err := c.resolveDataChildren(ctx, node, instance, col, tr)
	if err != nil {
		return nil, err
	}

	if err := c.resolveRequirements(ctx, instance, childNames, col, tr); err != nil {
		return nil, err
	}

	return instance, nil
}

// resolveDataChildren recurses into every non-empty component-typed property
// of the node and returns the set of local names those child requests used.
func (c *Collector) resolveDataChildren(ctx context.Context, node *datatree.Node, instance generator.Generator, col *collection.Collection, tr *trace) (map[string]struct{}, error) {
	childNames := make(map[string]struct{})

	for _, prop := range node.Children() {
		if !prop.IsComponent() || prop.IsEmpty() {
			continue
		}
		def := prop.Definition()

		switch {
		case def.Type == datatree.KindBool && !def.Multiple:
			// The boolean is purely a presence flag in the authoring format:
			// expand it into a fresh default data node for the declared type.
			rootDef, err := c.registry.RootDefinition(def.ComponentType)
			if err != nil {
				return nil, withChain(err, tr)
			}
			childNames[prop.Name()] = struct{}{}
			child := datatree.NewNamed(rootDef, prop.Name())
			if _, err := c.resolve(ctx, child, instance, col, tr); err != nil {
				return nil, err
			}

		case prop.IsMultiple():
			childNames[prop.Name()] = struct{}{}
			for _, item := range prop.Items() {
				childNames[item.Name()] = struct{}{}
				if _, err := c.resolve(ctx, item, instance, col, tr); err != nil {
					return nil, err
				}
			}

		default:
			childNames[prop.Name()] = struct{}{}
			if _, err := c.resolve(ctx, prop, instance, col, tr); err != nil {
				return nil, err
			}
		}
	}

	return childNames, nil
}

// resolveRequirements materializes and recurses into the instance's declared
// required subcomponents. Their keys share one namespace with the
// data-driven child names and must be disjoint from them.
func (c *Collector) resolveRequirements(ctx context.Context, instance generator.Generator, childNames map[string]struct{}, col *collection.Collection, tr *trace) error {
	requirements := instance.RequiredComponents()
	if len(requirements) == 0 {
		return nil
	}

	keys := make([]string, 0, len(requirements))
	for key := range requirements {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, taken := childNames[key]; taken {
			return errors.NewDuplicateKeyError(key).
				WithComponent(instance.Type()).
				WithContext("request_chain", tr.chain())
		}

		req := requirements[key]
		rootDef, err := c.registry.RootDefinition(req.ComponentType)
		if err != nil {
			return withChain(err, tr)
		}

		child := datatree.NewNamed(rootDef, key)
		values := make(map[string]interface{}, len(req.Values))
		for k, v := range req.Values {
			values[k] = v
		}
		if err := child.Populate(values); err != nil {
			return withChain(errors.Wrap(err, errors.ErrorTypeValidation, "required_component",
				"generator-required subcomponent record is invalid"), tr)
		}

		if _, err := c.resolve(ctx, child, instance, col, tr); err != nil {
			return err
		}
	}

	return nil
}

// validateRequired checks this request's required properties after
// acquisition and processing had their chance to fill them, including those
// nested in non-component mapping children. Component-typed subtrees are
// separate requests and validate themselves.
func (c *Collector) validateRequired(node *datatree.Node) error {
	return node.WalkOwn(func(n *datatree.Node) error {
		def := n.Definition()
		if def.Multiple || def.Type != datatree.KindMapping {
			return nil
		}
		for _, pd := range def.Properties {
			if !pd.Required || pd.ComponentType != "" {
				continue
			}
			child := n.Get(pd.Name)
			if child == nil || child.IsEmpty() {
				return errors.NewValidationError("missing_required",
					"required property "+pd.Name+" is empty on "+n.Path())
			}
		}
		return nil
	})
}

// withChain attaches the request chain to a ForgeError on its way up.
func withChain(err error, tr *trace) error {
	var fe *errors.ForgeError
	if stderrors.As(err, &fe) {
		if fe.Context == nil || fe.Context["request_chain"] == nil {
			fe.WithContext("request_chain", tr.chain())
		}
		return fe
	}
	return err
}
