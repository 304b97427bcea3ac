// Package objective turns user-supplied formulas into root-finding objectives.
package objective

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/Knetic/govaluate"

	"github.com/san-kum/rootlab/internal/roots"
)

// Variable is the name of the free variable in an expression.
const Variable = "x"

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

var functions = map[string]govaluate.ExpressionFunction{
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"asin":  unary(math.Asin),
	"acos":  unary(math.Acos),
	"atan":  unary(math.Atan),
	"sinh":  unary(math.Sinh),
	"cosh":  unary(math.Cosh),
	"tanh":  unary(math.Tanh),
	"exp":   unary(math.Exp),
	"log":   unary(math.Log),
	"log10": unary(math.Log10),
	"sqrt":  unary(math.Sqrt),
	"abs":   unary(math.Abs),
	"pow": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("pow expects 2 arguments, got %d", len(args))
		}
		return math.Pow(toFloat(args[0]), toFloat(args[1])), nil
	},
}

// Expression is a compiled formula in the single variable x.
type Expression struct {
	source string
	expr   *govaluate.EvaluableExpression

	mu     sync.Mutex
	params map[string]interface{}
}

// Parse compiles src. Any identifier other than x, pi and e is rejected.
func Parse(src string) (*Expression, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("objective: empty expression")
	}

	parsed, err := govaluate.NewEvaluableExpressionWithFunctions(src, functions)
	if err != nil {
		return nil, fmt.Errorf("objective: parse %q: %w", src, err)
	}

	for _, v := range parsed.Vars() {
		if v == Variable {
			continue
		}
		if _, ok := constants[v]; !ok {
			return nil, fmt.Errorf("objective: unknown identifier %q in %q", v, src)
		}
	}

	params := map[string]interface{}{Variable: 0.0}
	for name, val := range constants {
		params[name] = val
	}

	return &Expression{source: src, expr: parsed, params: params}, nil
}

// MustParse is like Parse but panics on error. Intended for presets.
func MustParse(src string) *Expression {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Expression) String() string { return e.source }

// Eval evaluates the expression at x.
func (e *Expression) Eval(x float64) (float64, error) {
	e.mu.Lock()
	e.params[Variable] = x
	v, err := e.expr.Evaluate(e.params)
	e.mu.Unlock()
	if err != nil {
		return math.NaN(), fmt.Errorf("objective: evaluate %q at x=%g: %w", e.source, x, err)
	}

	switch t := v.(type) {
	case float64:
		return t, nil
	case bool:
		return math.NaN(), fmt.Errorf("objective: %q is a predicate, not a number", e.source)
	default:
		return math.NaN(), fmt.Errorf("objective: %q returned %T", e.source, v)
	}
}

// Func adapts the expression to roots.Func. Evaluation errors become NaN,
// which the solvers report as numerical instability.
func (e *Expression) Func() roots.Func {
	return func(x float64) float64 {
		v, err := e.Eval(x)
		if err != nil {
			return math.NaN()
		}
		return v
	}
}

func unary(fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
		}
		return fn(toFloat(args[0])), nil
	}
}

func toFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return math.NaN()
	}
}
