package rewrite

import (
	"fmt"
	"strings"

	gfn "github.com/panyam/goutils/fn"
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/panyam/snippet/decl"
	"github.com/panyam/snippet/parser"
)

// ImportSpecifier is one `name as alias` entry of a named import.
type ImportSpecifier struct {
	Imported string // Name exported by the module, as written (may be a quoted string)
	Local    string // Name bound in the importing scope
}

func (s ImportSpecifier) binding() string {
	if s.Imported == s.Local {
		return s.Local
	}
	return s.Imported + ": " + s.Local
}

// ImportDecl is the flattened form of an import statement.
type ImportDecl struct {
	decl.NodeInfo

	Source    string // module literal exactly as written, quotes included
	Module    string // module id without quotes
	Default   string
	Namespace string
	Named     []ImportSpecifier
}

// NewImportDecl reads an import_statement node.
func NewImportDecl(node *ts.Node, source []byte) *ImportDecl {
	out := &ImportDecl{NodeInfo: parser.SpanOf(node)}
	if src := node.ChildByFieldName("source"); src != nil {
		out.Source = parser.Text(src, source)
		out.Module = parser.StringValue(src, source)
	}
	clause := parser.ChildByKind(node, "import_clause")
	for _, child := range parser.NamedChildren(clause) {
		switch child.Kind() {
		case "identifier":
			out.Default = parser.Text(child, source)
		case "namespace_import":
			if id := parser.ChildByKind(child, "identifier"); id != nil {
				out.Namespace = parser.Text(id, source)
			}
		case "named_imports":
			for _, spec := range parser.NamedChildren(child) {
				if spec.Kind() != "import_specifier" {
					continue
				}
				name := parser.Text(spec.ChildByFieldName("name"), source)
				local := name
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					local = parser.Text(alias, source)
				}
				out.Named = append(out.Named, ImportSpecifier{Imported: name, Local: local})
			}
		}
	}
	return out
}

// LocalNames returns every name this import binds, default first, then the
// namespace, then named specifiers in source order.
func (d *ImportDecl) LocalNames() (out []string) {
	if d.Default != "" {
		out = append(out, d.Default)
	}
	if d.Namespace != "" {
		out = append(out, d.Namespace)
	}
	return append(out, gfn.Map(d.Named, func(s ImportSpecifier) string { return s.Local })...)
}

func (d *ImportDecl) requireCall() string {
	return fmt.Sprintf("require(%s)", d.Source)
}

// NamedRequire is the destructuring form for the named specifiers only:
//
//	const { a, b: c } = require('m')
//
// It returns "" when there are no named specifiers.
func (d *ImportDecl) NamedRequire() string {
	if len(d.Named) == 0 {
		return ""
	}
	bindings := gfn.Map(d.Named, ImportSpecifier.binding)
	return fmt.Sprintf("const { %s } = %s", strings.Join(bindings, ", "), d.requireCall())
}

// RequireText is the full runtime replacement for the import statement.
// The default binding receives the whole module as the runtime resolver
// hands it back.
func (d *ImportDecl) RequireText() string {
	var parts []string
	if d.Default != "" {
		parts = append(parts, fmt.Sprintf("const %s = %s;", d.Default, d.requireCall()))
	}
	if d.Namespace != "" {
		parts = append(parts, fmt.Sprintf("const %s = %s;", d.Namespace, d.requireCall()))
	}
	if named := d.NamedRequire(); named != "" {
		parts = append(parts, named+";")
	}
	if len(parts) == 0 {
		// import 'side-effect'
		return d.requireCall() + ";"
	}
	return strings.Join(parts, " ")
}

// ImportEdit rewrites a single import declaration into a require assignment
// covering exactly the span of the declaration.
func ImportEdit(node *ts.Node, source []byte) decl.Edit {
	imp := NewImportDecl(node, source)
	return decl.Replace(imp, imp.RequireText())
}

// ImportedNames returns the local names bound by an import_statement node.
func ImportedNames(node *ts.Node, source []byte) []string {
	return NewImportDecl(node, source).LocalNames()
}
