package parser

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// Text returns the source covered by n.
func Text(n *ts.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return string(source[n.StartByte():n.EndByte()])
}

// NamedChildren returns the named children of a node, leaving out comments.
func NamedChildren(n *ts.Node) (out []*ts.Node) {
	if n == nil {
		return nil
	}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child == nil || child.Kind() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return
}

// ChildByKind returns the first direct child whose kind is one of kinds.
func ChildByKind(n *ts.Node, kinds ...string) *ts.Node {
	if n == nil {
		return nil
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		for _, k := range kinds {
			if child.Kind() == k {
				return child
			}
		}
	}
	return nil
}

// HasToken reports whether one of the anonymous children of n is the given
// keyword/punctuation (eg "default" in an export statement).
func HasToken(n *ts.Node, token string) bool {
	return ChildByKind(n, token) != nil
}

// StringValue returns the contents of a string literal node without its
// quotes.  Escapes are left alone.
func StringValue(n *ts.Node, source []byte) string {
	s := Text(n, source)
	if len(s) >= 2 {
		q := s[0]
		if (q == '\'' || q == '"' || q == '`') && s[len(s)-1] == q {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// PropertyName returns the name of an object property key - identifiers,
// string keys and computed keys are handled; computed keys return their
// inner text.
func PropertyName(key *ts.Node, source []byte) string {
	if key == nil {
		return ""
	}
	switch key.Kind() {
	case "string":
		return StringValue(key, source)
	case "computed_property_name":
		return strings.Trim(Text(key, source), "[] ")
	}
	return Text(key, source)
}
