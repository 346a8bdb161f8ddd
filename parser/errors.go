package parser

import (
	"fmt"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/panyam/snippet/decl"
)

// ParseError is reported when the script parser cannot make sense of the
// input.  Line and Column are 1 based.
type ParseError struct {
	decl.NodeInfo
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Msg)
}

// NewParseError describes an ERROR or MISSING node.
func NewParseError(n *ts.Node, source []byte) *ParseError {
	pos := n.StartPosition()
	out := &ParseError{
		NodeInfo: SpanOf(n),
		Line:     int(pos.Row) + 1,
		Column:   int(pos.Column) + 1,
	}
	if n.IsMissing() {
		out.Msg = fmt.Sprintf("missing %q", n.Kind())
	} else {
		snippet := Text(n, source)
		if len(snippet) > 40 {
			snippet = snippet[:40] + "..."
		}
		out.Msg = fmt.Sprintf("unexpected %q", snippet)
	}
	return out
}

// FirstError returns the first (in document order) error or missing node
// below n, or nil.
func FirstError(n *ts.Node) *ts.Node {
	if n == nil {
		return nil
	}
	if n.IsError() || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if bad := FirstError(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}
