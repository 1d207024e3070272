package acquire

import (
	"context"

	"github.com/cmsforge/cmsforge/internal/datatree"
	"github.com/cmsforge/cmsforge/internal/errors"
	"github.com/cmsforge/cmsforge/internal/logging"
)

// Resolver applies acquisition expressions to a request node's data tree.
// Acquisition failures are not recoverable locally: they abort the whole
// resolution run.
type Resolver struct {
	eval   Evaluator
	logger logging.Logger
}

// NewResolver creates a resolver around an expression evaluator.
func NewResolver(eval Evaluator, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{eval: eval, logger: logger.WithComponent("acquire")}
}

// Resolve walks the part of the node's subtree belonging to this request
// and, for every property declaring an acquisition expression, evaluates it
// against the requester's data and sets the property's value in place.
// Component-typed descendants split into their own requests later and
// acquire against their own requester then. A nil requesterData is only
// legal when the request declares no acquisitions; the root request is the
// one place that can happen.
func (r *Resolver) Resolve(ctx context.Context, node *datatree.Node, requesterData *datatree.Node) error {
	if err := r.materialize(node); err != nil {
		return err
	}
	return node.WalkOwn(func(n *datatree.Node) error {
		expr := n.Definition().Acquisition
		if expr == "" {
			return nil
		}

		if requesterData == nil {
			return errors.NewAcquisitionError(
				errors.CodeAcquisitionNoRequester,
				"property declares acquisition but the request has no requester",
				nil,
			).WithContext("expression", expr).WithContext("property", n.Path())
		}

		snapshot := requesterData.Export()
		result, err := r.eval.Evaluate(expr, map[string]interface{}{
			RequesterVar: snapshot,
		})
		if err != nil {
			r.logger.Error(ctx, err, "acquisition expression failed",
				"expression", expr,
				"property", n.Path(),
				"requester_data", snapshot,
			)
			return errors.NewAcquisitionError(
				errors.CodeAcquisitionEval,
				"acquisition expression failed",
				err,
			).WithContext("expression", expr).
				WithContext("property", n.Path()).
				WithContext("requester_data", snapshot)
		}

		r.logger.Debug(ctx, "acquired value", "expression", expr, "property", n.Path())
		return r.apply(n, result)
	})
}

// materialize ensures every property declaring an acquisition exists before
// evaluation; acquisition targets are usually absent from the authored data.
func (r *Resolver) materialize(node *datatree.Node) error {
	return node.WalkOwn(func(n *datatree.Node) error {
		if n.IsMultiple() || n.Definition().Type != datatree.KindMapping {
			return nil
		}
		for _, pd := range n.Definition().Properties {
			if pd.Acquisition == "" || pd.ComponentType != "" {
				continue
			}
			if _, err := n.Ensure(pd.Name); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Resolver) apply(n *datatree.Node, result interface{}) error {
	if !n.IsMultiple() {
		n.SetValue(result)
		return nil
	}
	values, ok := result.([]interface{})
	if !ok {
		values = []interface{}{result}
	}
	for _, v := range values {
		if _, err := n.AppendValue(v); err != nil {
			return errors.NewAcquisitionError(
				errors.CodeAcquisitionEval,
				"acquired value does not fit the target property",
				err,
			).WithContext("property", n.Path())
		}
	}
	return nil
}
