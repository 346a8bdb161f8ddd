package rewrite

import (
	"fmt"
	"strings"

	gfn "github.com/panyam/goutils/fn"
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/panyam/snippet/parser"
)

// Capturer collects the names declared at the top level of a script so they
// can be exposed as component state.  Order is first-seen order; duplicates
// are kept (they only produce a repeated key in the accessor).
type Capturer struct {
	Names []string
}

// Statement records the names declared by one top level statement.
func (c *Capturer) Statement(stmt *ts.Node, source []byte) {
	switch stmt.Kind() {
	case "import_statement":
		c.Names = append(c.Names, ImportedNames(stmt, source)...)
	case "lexical_declaration", "variable_declaration":
		for _, declarator := range parser.NamedChildren(stmt) {
			if declarator.Kind() != "variable_declarator" {
				continue
			}
			c.Names = append(c.Names, patternNames(declarator.ChildByFieldName("name"), source)...)
		}
	case "function_declaration", "generator_function_declaration", "class_declaration":
		if name := stmt.ChildByFieldName("name"); name != nil {
			c.Names = append(c.Names, parser.Text(name, source))
		}
	case "export_statement":
		if parser.HasToken(stmt, "default") {
			return
		}
		if d := stmt.ChildByFieldName("declaration"); d != nil {
			c.Statement(d, source)
		}
	}
}

// patternNames returns the identifiers bound by a binding pattern.
func patternNames(n *ts.Node, source []byte) (out []string) {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case "identifier", "shorthand_property_identifier_pattern":
		return []string{parser.Text(n, source)}
	case "object_pattern", "array_pattern":
		for _, child := range parser.NamedChildren(n) {
			out = append(out, patternNames(child, source)...)
		}
	case "pair_pattern":
		return patternNames(n.ChildByFieldName("value"), source)
	case "object_assignment_pattern", "assignment_pattern":
		return patternNames(n.ChildByFieldName("left"), source)
	case "rest_pattern":
		for _, child := range parser.NamedChildren(n) {
			out = append(out, patternNames(child, source)...)
		}
	}
	return
}

// AccessorText is appended to the script so that evaluating it returns an
// object whose data() exposes every captured binding.
func (c *Capturer) AccessorText() string {
	pairs := gfn.Map(c.Names, func(name string) string { return name + ":" + name })
	return fmt.Sprintf(";return {data(){return {%s}}}", strings.Join(pairs, ","))
}
