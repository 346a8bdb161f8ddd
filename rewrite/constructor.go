package rewrite

import (
	"log/slog"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/panyam/snippet/decl"
	"github.com/panyam/snippet/parser"
)

// LegacyCreateElement is spliced into the body of a render function when
// the target framework expects render functions to pick up their element
// factory from the instance (generation 2 JSX).
const LegacyCreateElement = "var h = this.$createElement;"

// ConstructorCall is a top level `new Vue({...})` (or `Vue({...})`)
// expression statement.
type ConstructorCall struct {
	Statement *ts.Node
	Call      *ts.Node
	Args      *ts.Node // nil for `new Vue` without an argument list
	Options   *ts.Node // first argument, nil for `new Vue()`
}

// FindConstructorCall checks whether stmt is an expression statement calling
// the constructor named ctor.  A trailing member call chain is allowed, eg
//
//	new Vue({...}).$mount('#app')
func FindConstructorCall(stmt *ts.Node, source []byte, ctor string) *ConstructorCall {
	if stmt == nil || stmt.Kind() != "expression_statement" {
		return nil
	}
	exprs := parser.NamedChildren(stmt)
	if len(exprs) == 0 {
		return nil
	}
	call := matchConstructor(exprs[0], source, ctor)
	if call == nil {
		return nil
	}
	out := &ConstructorCall{Statement: stmt, Call: call}
	if args := call.ChildByFieldName("arguments"); args != nil && args.Kind() == "arguments" {
		out.Args = args
		if opts := parser.NamedChildren(args); len(opts) > 0 {
			out.Options = opts[0]
		}
	}
	return out
}

func matchConstructor(expr *ts.Node, source []byte, ctor string) *ts.Node {
	for expr != nil {
		switch expr.Kind() {
		case "new_expression":
			if parser.Text(expr.ChildByFieldName("constructor"), source) == ctor {
				return expr
			}
			return nil
		case "call_expression":
			fn := expr.ChildByFieldName("function")
			if fn == nil {
				return nil
			}
			if fn.Kind() == "identifier" && parser.Text(fn, source) == ctor {
				return expr
			}
			if fn.Kind() != "member_expression" {
				return nil
			}
			expr = fn.ChildByFieldName("object")
		case "member_expression":
			expr = expr.ChildByFieldName("object")
		case "parenthesized_expression":
			inner := parser.NamedChildren(expr)
			if len(inner) == 0 {
				return nil
			}
			expr = inner[0]
		default:
			return nil
		}
	}
	return nil
}

// RenderFunctionStart returns the byte offset just inside the opening brace
// of a `render` function declared on an options object literal, or -1.
// Both `render() {}` and `render: function () {}` are recognised.  Arrow
// functions are skipped as they do not get their own `this`.
func RenderFunctionStart(options *ts.Node, source []byte) int {
	if options == nil || options.Kind() != "object" {
		return -1
	}
	for _, prop := range parser.NamedChildren(options) {
		var body *ts.Node
		switch prop.Kind() {
		case "method_definition":
			if parser.PropertyName(prop.ChildByFieldName("name"), source) == "render" {
				body = prop.ChildByFieldName("body")
			}
		case "pair":
			if parser.PropertyName(prop.ChildByFieldName("key"), source) != "render" {
				continue
			}
			value := prop.ChildByFieldName("value")
			if value == nil {
				continue
			}
			switch value.Kind() {
			case "function_expression", "function", "generator_function":
				body = value.ChildByFieldName("body")
			}
		}
		if body != nil && body.Kind() == "statement_block" {
			return int(body.StartByte()) + 1
		}
	}
	return -1
}

// ConstructorEdits turns the constructor statement into `;return <options>`.
// When legacy is set and the options carry a render function, the element
// creation helper is spliced in at the top of that function.
func ConstructorEdits(c *ConstructorCall, source []byte, legacy bool) (edits decl.Edits) {
	if c == nil || c.Args == nil {
		return nil
	}
	stmt := parser.SpanOf(c.Statement)
	if c.Options == nil {
		return emptyReturn(stmt)
	}
	opts := parser.SpanOf(c.Options)
	edits.Add(decl.ReplaceRange(stmt.Pos(), opts.Pos(), ";return "))
	if legacy {
		if pos := RenderFunctionStart(c.Options, source); pos >= 0 {
			edits.Add(decl.Insert(pos, LegacyCreateElement))
		}
	}
	edits.Add(decl.Delete(opts.End(), stmt.End()))
	return
}

// emptyReturn handles a constructor call with an empty argument list.  The
// statement collapses to a bare `;return ` which makes the snippet evaluate
// to undefined rather than failing here.
func emptyReturn(stmt decl.NodeInfo) decl.Edits {
	slog.Warn("Constructor called without an options object, emitting an empty return", "start", stmt.Pos(), "end", stmt.End())
	return decl.Edits{decl.Replace(stmt, ";return ")}
}
