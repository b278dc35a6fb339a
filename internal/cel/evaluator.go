// Package cel wraps github.com/google/cel-go with the small surface
// tablekit needs: compiling a boolean predicate once and evaluating it
// against a map-shaped input per attribute.
package cel

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"
)

// AttrVar is the variable name predicate expressions use to reference
// the attribute descriptor (e.g., "attr.builtin && attr.name != 'fps'").
const AttrVar = "attr"

// Predicate is a compiled CEL expression that yields a boolean.
type Predicate struct {
	prg cel.Program
}

// newEnv creates the CEL environment with the extensions predicate
// authors commonly need (string helpers, list macros).
func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable(AttrVar, cel.DynType),
		celext.Strings(),
		celext.Lists(),
	)
}

// CompilePredicate compiles a boolean CEL expression. The expression
// must reference the input through the "attr" variable.
func CompilePredicate(expr string) (*Predicate, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("cel environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("compile %q: expression must yield bool, got %s", expr, out)
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}
	return &Predicate{prg: prg}, nil
}

// Eval evaluates the predicate against the given input. Non-boolean
// results are an error rather than a silent false so misauthored
// expressions surface immediately.
func (p *Predicate) Eval(input map[string]any) (bool, error) {
	out, _, err := p.prg.Eval(map[string]any{AttrVar: input})
	if err != nil {
		return false, fmt.Errorf("eval: %w", err)
	}
	b, ok := out.(types.Bool)
	if !ok {
		return false, fmt.Errorf("eval: expression yielded %s, want bool", out.Type().TypeName())
	}
	return bool(b), nil
}
