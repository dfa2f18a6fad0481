package match

import (
	"fmt"
	"reflect"

	"github.com/google/cel-go/cel"

	"github.com/aryankumar/parex/pkg/parex"
)

// Expr matches items with a CEL expression.
//
// The expression sees four variables: path, name and kind (strings) and
// depth (int). It must evaluate to a bool, for example:
//
//	name.endsWith(".go") && depth <= 2 && kind == "primary"
type Expr struct {
	source  string
	program cel.Program
}

var exprEnv = mustExprEnv()

func mustExprEnv() *cel.Env {
	env, err := cel.NewEnv(
		cel.Variable("path", cel.StringType),
		cel.Variable("name", cel.StringType),
		cel.Variable("kind", cel.StringType),
		cel.Variable("depth", cel.IntType),
	)
	if err != nil {
		panic(fmt.Sprintf("match: building CEL environment: %v", err))
	}
	return env
}

// NewExpr compiles a CEL expression into a predicate.
// Syntax, type and non-bool output errors yield a fatal invalid-pattern failure.
func NewExpr(source string) (*Expr, error) {
	ast, issues := exprEnv.Compile(source)
	if issues != nil {
		if err := issues.Err(); err != nil {
			return nil, parex.InvalidPattern(source, err)
		}
	}

	if !reflect.DeepEqual(ast.OutputType(), cel.BoolType) {
		return nil, parex.InvalidPattern(source,
			fmt.Errorf("expected a bool expression output, but got '%s'", ast.OutputType()))
	}

	prg, err := exprEnv.Program(ast)
	if err != nil {
		return nil, parex.InvalidPattern(source, fmt.Errorf("expression construction: %w", err))
	}

	return &Expr{source: source, program: prg}, nil
}

// String returns the expression source
func (e *Expr) String() string {
	return e.source
}

// Match implements parex.Predicate.
// An evaluation error counts as a non-match since predicates have no error channel.
func (e *Expr) Match(item parex.Item) bool {
	out, _, err := e.program.Eval(map[string]any{
		"path":  item.Path,
		"name":  item.Name,
		"kind":  item.Kind.String(),
		"depth": int64(item.Depth),
	})
	if err != nil {
		return false
	}

	matched, ok := out.Value().(bool)
	return ok && matched
}
