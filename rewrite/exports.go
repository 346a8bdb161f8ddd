package rewrite

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/panyam/snippet/decl"
	"github.com/panyam/snippet/parser"
)

// exportEdits drops module export syntax that has no meaning inside a
// function body.  `export const a = 1` keeps its declaration, export lists
// and re-exports are removed altogether.  Default exports are left alone -
// they are split out before rewriting when the form calls for it.
func exportEdits(stmt *ts.Node) decl.Edits {
	if parser.HasToken(stmt, "default") {
		return nil
	}
	if d := stmt.ChildByFieldName("declaration"); d != nil {
		return decl.Edits{decl.Delete(int(stmt.StartByte()), int(d.StartByte()))}
	}
	return decl.Edits{decl.Replace(parser.SpanOf(stmt), "")}
}
