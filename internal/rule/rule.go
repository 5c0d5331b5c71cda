// Package rule compiles user-supplied trigger expressions.
//
// A rule is an expr-lang boolean expression evaluated against the current
// pull geometry, for example:
//
//	pull >= threshold && !dragging
//	progress >= 0.5 || pull > viewport / 3
package rule

import (
	"fmt"

	"pullrefresh/internal/util"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Env holds the values a rule can reference.
type Env struct {
	Pull      float64 `expr:"pull"`      // rows pulled past the top edge
	Threshold float64 `expr:"threshold"` // configured trigger distance
	Progress  float64 `expr:"progress"`  // pull / threshold, clamped to [0, 1]
	Dragging  bool    `expr:"dragging"`
	Viewport  float64 `expr:"viewport"` // visible rows
	Content   float64 `expr:"content"`  // content rows
}

// Rule is a compiled trigger expression.
type Rule struct {
	source  string
	program *vm.Program
}

func compileOptions() []expr.Option {
	return []expr.Option{
		expr.Env(Env{}),
		expr.AsBool(),
		expr.Function("clamp", clampFunc,
			new(func(float64, float64, float64) float64),
		),
	}
}

// Compile parses code. The expression must evaluate to a boolean.
func Compile(code string) (*Rule, error) {
	program, err := expr.Compile(code, compileOptions()...)
	if err != nil {
		return nil, fmt.Errorf("invalid trigger %q: %w", code, err)
	}
	return &Rule{source: code, program: program}, nil
}

// Eval runs the rule. Runtime errors count as not triggered.
func (r *Rule) Eval(env Env) bool {
	out, err := expr.Run(r.program, env)
	if err != nil {
		return false
	}
	ok, _ := out.(bool)
	return ok
}

func (r *Rule) String() string {
	return r.source
}

// clamp bounds a value.
// Usage: clamp(pull, 0, threshold)
func clampFunc(params ...any) (any, error) {
	if len(params) != 3 {
		return nil, fmt.Errorf("clamp: expected 3 arguments, got %d", len(params))
	}
	var vals [3]float64
	for i, p := range params {
		switch v := p.(type) {
		case float64:
			vals[i] = v
		case int:
			vals[i] = float64(v)
		default:
			return nil, fmt.Errorf("clamp: expected number, got %T", p)
		}
	}
	return util.Clamp(vals[0], vals[1], vals[2]), nil
}
