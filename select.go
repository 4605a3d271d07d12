package hdf5struct

import (
	"errors"
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"

	"github.com/scigolib/hdf5struct/internal/utils"
)

// Select returns every dataset below g, in Walk order, for which expression
// evaluates to true. The expression is written in the expr language
// (github.com/expr-lang/expr) and sees these variables:
//
//	name      string   last path component
//	path      string   absolute path
//	rank      int      number of dimensions
//	dims      []int    dimension sizes
//	type      string   element type ("float64", "int32", "string", "compound", "other")
//	elements  int      product of dims
//
// For example `type == "float64" && rank == 2 && dims[0] > 100`.
func (g *Group) Select(expression string) ([]*Dataset, error) {
	program, err := compileSelect(expression)
	if err != nil {
		return nil, err
	}

	var out []*Dataset
	err = g.Walk(func(_ string, e Entry) error {
		ds, ok := e.(*Dataset)
		if !ok {
			return nil
		}
		result, err := exprlang.Run(program, selectEnv(ds))
		if err != nil {
			return fmt.Errorf("select %q on %s: %w", expression, ds.path, err)
		}
		if match, _ := result.(bool); match {
			out = append(out, ds)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func compileSelect(expression string) (*exprvm.Program, error) {
	if expression == "" {
		return nil, errors.New("select: expression must not be empty")
	}
	program, err := exprlang.Compile(expression,
		exprlang.Env(selectEnv(&Dataset{dims: []int{}})),
		exprlang.AsBool(),
	)
	if err != nil {
		return nil, utils.WrapError(fmt.Sprintf("select %q", expression), err)
	}
	return program, nil
}

func selectEnv(ds *Dataset) map[string]any {
	return map[string]any{
		"name":     ds.Name(),
		"path":     ds.path,
		"rank":     len(ds.dims),
		"dims":     ds.Dims(),
		"type":     ds.etype.String(),
		"elements": ds.count,
	}
}
