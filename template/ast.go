package template

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/panyam/snippet/decl"
)

// Node is an element or a text run in a template.
type Node interface {
	decl.Node
	isNode()
}

// Text is a run of character data, possibly with {{ }} interpolations.
type Text struct {
	decl.NodeInfo
	Value string
}

// Attr is one attribute as written, name in its original case.
type Attr struct {
	Name  string
	Value string
}

// Element is a tag and its children.  Component is set for tags that are not
// standard HTML elements.
type Element struct {
	decl.NodeInfo
	Tag       string
	Atom      atom.Atom
	Component bool
	Attrs     []Attr
	Children  []Node
}

func (t *Text) isNode()    {}
func (e *Element) isNode() {}

func (e *Element) String() string {
	return fmt.Sprintf("<%s> at %d", e.Tag, e.Pos())
}

// ParseError reports malformed markup.
type ParseError struct {
	decl.NodeInfo
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("template error at %d: %s", e.Pos(), e.Msg)
}

var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true, atom.Embed: true,
	atom.Hr: true, atom.Img: true, atom.Input: true, atom.Link: true, atom.Meta: true,
	atom.Source: true, atom.Track: true, atom.Wbr: true,
}

// Parse builds the element tree of a template.  Tags and attribute names keep
// the case they were written in, which matters for component names and
// camelCase props.
//
// The tokenizer is not an expression parser: an interpolation like
// {{ a<b }} reads as the start of a <b> tag.  Write {{ a < b }} instead.
func Parse(src string) ([]Node, error) {
	z := html.NewTokenizer(strings.NewReader(src))
	root := &Element{}
	stack := []*Element{root}
	offset := 0
	for {
		tt := z.Next()
		raw := z.Raw()
		start := offset
		offset += len(raw)
		top := stack[len(stack)-1]

		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return nil, z.Err()
			}
			if len(stack) > 1 {
				return nil, &ParseError{NodeInfo: top.NodeInfo, Msg: fmt.Sprintf("unclosed <%s>", top.Tag)}
			}
			return root.Children, nil
		case html.TextToken:
			top.Children = append(top.Children, &Text{NodeInfo: decl.Span(start, offset), Value: string(z.Text())})
		case html.StartTagToken, html.SelfClosingTagToken:
			el := newElement(z, raw, start, offset)
			top.Children = append(top.Children, el)
			if tt == html.StartTagToken && !voidElements[el.Atom] {
				stack = append(stack, el)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if voidElements[atom.Lookup(name)] {
				continue
			}
			i := len(stack) - 1
			for i > 0 && !strings.EqualFold(stack[i].Tag, string(name)) {
				i--
			}
			if i == 0 {
				return nil, &ParseError{NodeInfo: decl.Span(start, offset), Msg: fmt.Sprintf("unexpected closing tag </%s>", name)}
			}
			if i != len(stack)-1 {
				open := stack[len(stack)-1]
				return nil, &ParseError{NodeInfo: open.NodeInfo, Msg: fmt.Sprintf("<%s> closed by </%s>", open.Tag, name)}
			}
			top.StopPos = offset
			stack = stack[:i]
		}
	}
}

func newElement(z *html.Tokenizer, raw []byte, start, end int) *Element {
	name, hasAttr := z.TagName()
	el := &Element{NodeInfo: decl.Span(start, end), Atom: atom.Lookup(name)}
	// raw is "<" + name as written
	el.Tag = string(raw[1 : 1+len(name)])
	el.Component = el.Atom == 0
	cursor := 1 + len(name)
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		var orig string
		orig, cursor = originalName(raw, key, cursor)
		el.Attrs = append(el.Attrs, Attr{Name: orig, Value: string(val)})
	}
	return el
}

// originalName recovers the case of an attribute name, which the tokenizer
// lowercases, by finding it in the raw tag text from cursor on.
func originalName(raw, lower []byte, cursor int) (string, int) {
	folded := asciiLower(raw)
	for i := cursor; i+len(lower) <= len(raw); {
		j := bytes.Index(folded[i:], lower)
		if j < 0 {
			break
		}
		pos := i + j
		end := pos + len(lower)
		if isSpace(raw[pos-1]) && (end == len(raw) || isNameEnd(raw[end])) {
			return string(raw[pos:end]), end
		}
		i = pos + 1
	}
	return string(lower), cursor
}

// asciiLower keeps byte offsets intact, unlike bytes.ToLower on non ASCII text.
func asciiLower(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isNameEnd(c byte) bool {
	return isSpace(c) || c == '=' || c == '/' || c == '>'
}
