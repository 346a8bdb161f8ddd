package parser

import (
	"errors"
	"fmt"
	"log/slog"

	ts "github.com/tree-sitter/go-tree-sitter"
	tsjs "github.com/tree-sitter/tree-sitter-javascript/bindings/go"

	"github.com/panyam/snippet/decl"
)

// The javascript grammar also understands JSX so a single language serves
// both plain and JSX snippets.
var javascript = ts.NewLanguage(tsjs.Language())

// Tree is a parsed script.  It owns the underlying tree-sitter tree and must
// be closed once the traversal that needed it is done.
type Tree struct {
	Source []byte
	Root   *ts.Node
	tree   *ts.Tree
}

// Close releases the native tree.
func (t *Tree) Close() {
	if t != nil && t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

// Text returns the source text covered by a node.
func (t *Tree) Text(n *ts.Node) string {
	return Text(n, t.Source)
}

// Parse parses a script (module syntax and JSX allowed).  Any syntax error
// anywhere in the text fails the whole parse with a *ParseError - we do not
// try to rewrite partially recovered trees.
func Parse(src string) (*Tree, error) {
	p := ts.NewParser()
	defer p.Close()
	if err := p.SetLanguage(javascript); err != nil {
		return nil, fmt.Errorf("cannot load javascript grammar: %w", err)
	}

	source := []byte(src)
	tree := p.Parse(source, nil)
	if tree == nil {
		return nil, errors.New("parser did not produce a tree")
	}
	root := tree.RootNode()
	if root.HasError() {
		defer tree.Close()
		bad := FirstError(root)
		if bad == nil {
			bad = root
		}
		perr := NewParseError(bad, source)
		slog.Debug("Parse failed", "line", perr.Line, "column", perr.Column, "msg", perr.Msg)
		return nil, perr
	}
	return &Tree{Source: source, Root: root, tree: tree}, nil
}

// SpanOf converts a tree-sitter node range into a decl.NodeInfo.
func SpanOf(n *ts.Node) decl.NodeInfo {
	return decl.Span(int(n.StartByte()), int(n.EndByte()))
}
