package syntax

import "github.com/t14raptor/go-fast/ast"

// Transformer modifies a syntax tree before it is printed.
// Transformers receive ownership of the tree and return a (possibly new) tree.
type Transformer interface {
	// Transform processes the tree and returns the result.
	// The returned tree may be the same instance (modified in place)
	// or a completely new one.
	Transform(program *ast.Program) (*ast.Program, error)
}

// TransformerFunc is an adapter to use a function as a Transformer.
type TransformerFunc func(*ast.Program) (*ast.Program, error)

// Transform implements the Transformer interface.
func (f TransformerFunc) Transform(p *ast.Program) (*ast.Program, error) {
	return f(p)
}

// Chain returns a Transformer that applies each transformer in order,
// feeding the result of one to the next. It stops at the first error.
func Chain(transformers ...Transformer) Transformer {
	return TransformerFunc(func(p *ast.Program) (*ast.Program, error) {
		var err error
		for _, t := range transformers {
			if t == nil {
				continue
			}
			if p, err = t.Transform(p); err != nil {
				return nil, err
			}
		}
		return p, nil
	})
}
