// Package template compiles markup templates into render functions.  Two
// output dialects are supported: a legacy render body that runs inside
// with(this) against instance helpers, and a module importing its helpers
// from the framework and exporting a render function.
package template

import (
	"fmt"
	"log/slog"

	"golang.org/x/net/html/atom"

	"github.com/panyam/snippet/decl"
)

// Compiler is the markup template compiler.  It holds no state and can be
// shared.
type Compiler struct {
}

func New() *Compiler {
	return &Compiler{}
}

// Compile turns template markup into a legacy render body when opts target
// the legacy element creation API, otherwise into a render module.
func (c *Compiler) Compile(src string, opts decl.Options) (string, error) {
	nodes, err := Parse(src)
	if err != nil {
		return "", err
	}
	root := rootElement(nodes)
	if opts.LegacyElementCreation() {
		g := newGenerator(legacyDialect{})
		expr, err := g.node(root)
		if err != nil {
			return "", err
		}
		return "with(this){return " + expr + "}", nil
	}

	m := newModuleDialect()
	g := newGenerator(m)
	expr, err := g.node(root)
	if err != nil {
		return "", err
	}
	framework := opts.FrameworkModule
	if framework == "" {
		framework = decl.DefaultOptions().FrameworkModule
	}
	return m.module(expr, framework), nil
}

// rootElement returns the single root of a template, wrapping the nodes in
// a synthetic <div> when there is not exactly one plain element.
func rootElement(nodes []Node) *Element {
	var significant []Node
	for _, n := range nodes {
		if t, ok := n.(*Text); ok {
			if _, keep := condense(t.Value); !keep {
				continue
			}
		}
		significant = append(significant, n)
	}
	if len(significant) == 1 {
		if el, ok := significant[0].(*Element); ok && el.Atom != atom.Template && !hasStructuralDirective(el) {
			return el
		}
	}
	slog.Debug("Wrapping template roots in a div", "roots", len(significant))
	return &Element{Tag: "div", Atom: atom.Div, Children: nodes}
}

func hasStructuralDirective(el *Element) bool {
	for _, a := range el.Attrs {
		switch a.Name {
		case "v-if", "v-else-if", "v-else", "v-for":
			return true
		}
	}
	return false
}

type branch struct {
	cond string
	el   *Element
	dirs *Directives
}

type generator struct {
	dialect    dialect
	directives map[*Element]*Directives
}

func newGenerator(d dialect) *generator {
	return &generator{dialect: d, directives: map[*Element]*Directives{}}
}

func (g *generator) analyze(el *Element) (*Directives, error) {
	if d, ok := g.directives[el]; ok {
		return d, nil
	}
	d, err := analyze(el)
	if err != nil {
		return nil, err
	}
	g.directives[el] = d
	return d, nil
}

// node renders an element including its v-for, but not its v-if.
func (g *generator) node(el *Element) (string, error) {
	d, err := g.analyze(el)
	if err != nil {
		return "", err
	}
	kids, hasList, err := g.children(el.Children)
	if err != nil {
		return "", err
	}
	out := g.dialect.element(el, d, kids, hasList)
	if d.For != nil {
		out = g.dialect.list(d.For, out)
	}
	return out, nil
}

func (g *generator) children(nodes []Node) (out []string, hasList bool, err error) {
	for i := 0; i < len(nodes); i++ {
		switch n := nodes[i].(type) {
		case *Text:
			text, keep := condense(n.Value)
			if !keep {
				continue
			}
			parts, err := splitInterpolations(text)
			if err != nil {
				return nil, false, &ParseError{NodeInfo: n.NodeInfo, Msg: err.Error()}
			}
			out = append(out, g.dialect.text(parts))
		case *Element:
			if n.Atom == atom.Template {
				if len(n.Attrs) > 0 {
					return nil, false, fmt.Errorf("%w: attributes on nested %s", ErrUnsupportedDirective, n)
				}
				sub, subList, err := g.children(n.Children)
				if err != nil {
					return nil, false, err
				}
				out, hasList = append(out, sub...), hasList || subList
				continue
			}
			d, err := g.analyze(n)
			if err != nil {
				return nil, false, err
			}
			hasList = hasList || d.For != nil
			var rendered string
			switch d.cond {
			case condElseIf, condElse:
				return nil, false, &ParseError{NodeInfo: n.NodeInfo, Msg: "v-else without a preceding v-if"}
			case condIf:
				var last int
				rendered, last, err = g.chain(nodes, i)
				i = last
			default:
				rendered, err = g.node(n)
			}
			if err != nil {
				return nil, false, err
			}
			out = append(out, rendered)
		}
	}
	return
}

// chain renders a v-if element and the v-else-if/v-else siblings that follow
// it as a conditional expression.  It returns the index of the last sibling
// consumed.
func (g *generator) chain(nodes []Node, start int) (string, int, error) {
	first := nodes[start].(*Element)
	branches := []branch{{cond: g.directives[first].condExpr, el: first}}
	last := start
	for j := start + 1; j < len(nodes); j++ {
		if t, ok := nodes[j].(*Text); ok {
			if _, keep := condense(t.Value); !keep {
				continue
			}
			break
		}
		el := nodes[j].(*Element)
		d, err := g.analyze(el)
		if err != nil {
			return "", last, err
		}
		if d.cond != condElseIf && d.cond != condElse {
			break
		}
		branches = append(branches, branch{cond: d.condExpr, el: el, dirs: d})
		last = j
		if d.cond == condElse {
			break
		}
	}

	tail := g.dialect.empty()
	if b := branches[len(branches)-1]; b.dirs != nil && b.dirs.cond == condElse {
		out, err := g.node(b.el)
		if err != nil {
			return "", last, err
		}
		tail = out
		branches = branches[:len(branches)-1]
	}
	for i := len(branches) - 1; i >= 0; i-- {
		node, err := g.node(branches[i].el)
		if err != nil {
			return "", last, err
		}
		tail = fmt.Sprintf("(%s)?%s:%s", branches[i].cond, node, tail)
	}
	return tail, last, nil
}
