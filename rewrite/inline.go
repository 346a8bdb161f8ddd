package rewrite

import (
	"fmt"
	"log/slog"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/panyam/snippet/parser"
)

// InlineRenderModule flattens the output of a module emitting template
// compiler, ie:
//
//	import { h as _h } from "vue"
//	export function render(_ctx, _cache) { ... }
//
// into a plain statement sequence that reads its parameters from
// `arguments`:
//
//	var [_ctx, _cache] = arguments
//	const { h: _h } = require("vue")
//	...
//
// Other top level statements (hoisted constants) are kept verbatim between
// the require line and the body.  A module without a framework import gets
// an empty require line; one without an exported function gets empty
// parameters and body.
func InlineRenderModule(module, frameworkModule string) (string, error) {
	tree, err := parser.Parse(module)
	if err != nil {
		return "", fmt.Errorf("cannot parse render module: %w", err)
	}
	defer tree.Close()

	var params []string
	var requireLine, body string
	var hoisted []string
	foundRender := false
	for _, stmt := range parser.NamedChildren(tree.Root) {
		switch stmt.Kind() {
		case "import_statement":
			imp := NewImportDecl(stmt, tree.Source)
			if imp.Module != frameworkModule {
				slog.Debug("Ignoring non framework import in render module", "module", imp.Module)
				continue
			}
			if imp.Default == "" && imp.Namespace == "" {
				requireLine = imp.NamedRequire()
			} else {
				requireLine = imp.RequireText()
			}
		case "export_statement":
			fn := stmt.ChildByFieldName("declaration")
			if foundRender || fn == nil || fn.Kind() != "function_declaration" {
				continue
			}
			foundRender = true
			params = simpleParams(fn.ChildByFieldName("parameters"), tree.Source)
			if b := fn.ChildByFieldName("body"); b != nil {
				body = module[b.StartByte()+1 : b.EndByte()-1]
			}
		default:
			hoisted = append(hoisted, tree.Text(stmt))
		}
	}
	if !foundRender {
		slog.Warn("Render module has no exported function, inlining an empty body")
	}

	lines := []string{fmt.Sprintf("var [%s] = arguments", strings.Join(params, ", ")), requireLine}
	lines = append(lines, hoisted...)
	lines = append(lines, body)
	return strings.Join(lines, "\n"), nil
}

// simpleParams flattens a formal parameter list to plain identifiers.
// Defaults keep their name.  Destructured params leave a hole so the
// positions of the params after them still line up with `arguments`.
func simpleParams(params *ts.Node, source []byte) (out []string) {
	for _, p := range parser.NamedChildren(params) {
		name := ""
		switch p.Kind() {
		case "identifier":
			name = parser.Text(p, source)
		case "assignment_pattern":
			if left := p.ChildByFieldName("left"); left != nil && left.Kind() == "identifier" {
				name = parser.Text(left, source)
			}
		case "rest_pattern":
			if id := parser.ChildByKind(p, "identifier"); id != nil {
				name = "..." + parser.Text(id, source)
			}
		}
		out = append(out, name)
	}
	return
}
