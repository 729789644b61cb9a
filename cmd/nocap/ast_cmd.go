package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/nocap-js/nocap"
	"github.com/nocap-js/nocap/astutil"
	"github.com/nocap-js/nocap/parser"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/t14raptor/go-fast/ast"
)

func newASTCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ast [file]",
		Short: "Display the syntax tree as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := getSource(cmd, args)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			opts := getNocapOptions(v, src.name(), cmd.ErrOrStderr())

			var program *ast.Program
			if rewrite, _ := cmd.Flags().GetBool("rewrite"); rewrite {
				result, err := nocap.Rewrite(ctx, src.code, opts...)
				if err != nil {
					return err
				}
				program = result.Program()
			} else {
				program, err = nocap.Parse(ctx, src.code, opts...)
				if err != nil {
					return err
				}
			}

			file := parser.NewFile(src.name(), src.code)
			out, err := marshalJSON(cmd.OutOrStdout(), nodeToJSON(program, file))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringP("code", "c", "", "code to parse")
	cmd.Flags().Bool("stdin", false, "read code from stdin")
	cmd.Flags().Bool("rewrite", false, "show the tree after the slang rewrite")
	return cmd
}

// ASTNode represents a node in the JSON AST output
type ASTNode struct {
	Type     string     `json:"type"`
	Value    any        `json:"value,omitempty"`
	Line     int        `json:"line,omitempty"`
	Column   int        `json:"column,omitempty"`
	Children []*ASTNode `json:"children,omitempty"`
}

// nodeToJSON converts the tree rooted at node. Positions are resolved
// against file; nodes synthesized by the rewrite have none.
func nodeToJSON(node any, file *parser.File) *ASTNode {
	if node == nil {
		return nil
	}
	root := &ASTNode{}
	stack := []*ASTNode{root}
	astutil.Apply(node, func(c *astutil.Cursor) bool {
		n := &ASTNode{
			Type:  strings.TrimPrefix(fmt.Sprintf("%T", c.Node()), "*ast."),
			Value: nodeValue(c.Node()),
		}
		if idx, ok := nodeStart(c.Node()); ok {
			if pos := file.Position(idx); pos.IsValid() {
				n.Line = pos.Line
				n.Column = pos.Column
			}
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, n)
		stack = append(stack, n)
		return true
	}, func(c *astutil.Cursor) bool {
		stack = stack[:len(stack)-1]
		return true
	})
	if len(root.Children) == 0 {
		return nil
	}
	return root.Children[0]
}

// nodeValue returns the scalar detail shown for leaf and operator nodes.
func nodeValue(node any) any {
	switch n := node.(type) {
	case *ast.Identifier:
		return n.Name
	case *ast.NumberLiteral:
		if n.Raw != nil {
			return *n.Raw
		}
		return n.Value
	case *ast.StringLiteral:
		return n.Value
	case *ast.BinaryExpression:
		return fmt.Sprint(n.Operator)
	case *ast.AssignExpression:
		return fmt.Sprint(n.Operator)
	case *ast.UpdateExpression:
		return fmt.Sprint(n.Operator)
	case *ast.ArrowFunctionLiteral:
		if n.Async {
			return "async"
		}
	case *ast.FunctionLiteral:
		if n.Async {
			return "async"
		}
	}
	return nil
}

// nodeStart returns the index a node starts at, for the kinds that record
// one directly.
func nodeStart(node any) (ast.Idx, bool) {
	switch n := node.(type) {
	case *ast.Identifier:
		return n.Idx, true
	case *ast.NumberLiteral:
		return n.Idx, true
	case *ast.VariableDeclaration:
		return n.Idx, true
	case *ast.ReturnStatement:
		return n.Return, true
	case *ast.ThrowStatement:
		return n.Throw, true
	case *ast.TryStatement:
		return n.Try, true
	case *ast.ForStatement:
		return n.For, true
	case *ast.FunctionLiteral:
		return n.Function, true
	case *ast.ArrowFunctionLiteral:
		return n.Start, true
	case *ast.AwaitExpression:
		return n.Await, true
	case *ast.NewExpression:
		return n.New, true
	}
	return 0, false
}
