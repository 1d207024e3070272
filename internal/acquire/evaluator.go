// Package acquire resolves acquisition expressions: small path expressions
// that pull a value out of a requesting component's finalized data into a
// newly created component's data, evaluated before any other processing of
// the request.
package acquire

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
)

// RequesterVar is the fixed variable name the requester's data tree is
// exposed under in the evaluation context.
const RequesterVar = "requester"

// Evaluator evaluates an acquisition expression against a context. The
// expression language itself is a black box to the resolver; the default
// implementation speaks JSONPath.
type Evaluator interface {
	Evaluate(expression string, context map[string]interface{}) (interface{}, error)
}

// JSONPathEvaluator evaluates JSONPath expressions with ojg. An expression
// addressing the requester looks like `$.requester.short_name`.
type JSONPathEvaluator struct{}

// NewJSONPathEvaluator returns the default expression evaluator.
func NewJSONPathEvaluator() *JSONPathEvaluator {
	return &JSONPathEvaluator{}
}

// Evaluate implements Evaluator.
func (e *JSONPathEvaluator) Evaluate(expression string, context map[string]interface{}) (interface{}, error) {
	x, err := jp.ParseString(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath %q: %w", expression, err)
	}

	results := x.Get(context)
	if len(results) == 0 {
		return nil, fmt.Errorf("jsonpath %q matched nothing", expression)
	}
	if len(results) == 1 {
		return results[0], nil
	}
	return results, nil
}
