package template

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

var ErrUnsupportedDirective = errors.New("unsupported directive")

type condKind int

const (
	condNone condKind = iota
	condIf
	condElseIf
	condElse
)

// Binding is a `:name="expr"` attribute.
type Binding struct {
	Name string
	Expr string
}

// Handler is an `@event.modifiers="expr"` attribute.
type Handler struct {
	Event     string
	Modifiers []string
	Expr      string
}

// ForClause is a parsed `v-for="(item, i) in items"`.
type ForClause struct {
	Params string // "item, i"
	Source string // "items"
}

// Directives is the attribute list of an element sorted by what it does.
type Directives struct {
	Static   []Attr
	Bindings []Binding
	Handlers []Handler
	For      *ForClause

	cond     condKind
	condExpr string

	HTML string // v-html
	Text string // v-text
}

var forPattern = regexp.MustCompile(`^\s*(?:\(([^)]*)\)|([A-Za-z_$][\w$]*))\s+(?:in|of)\s+(.+?)\s*$`)

func parseFor(el *Element, value string) (*ForClause, error) {
	m := forPattern.FindStringSubmatch(value)
	if m == nil {
		return nil, &ParseError{NodeInfo: el.NodeInfo, Msg: fmt.Sprintf("invalid v-for expression %q", value)}
	}
	params := m[1]
	if params == "" {
		params = m[2]
	}
	return &ForClause{Params: strings.TrimSpace(params), Source: m[3]}, nil
}

// analyze sorts the attributes of el.
func analyze(el *Element) (*Directives, error) {
	d := &Directives{}
	for _, attr := range el.Attrs {
		name := attr.Name
		switch {
		case strings.HasPrefix(name, ":"):
			d.Bindings = append(d.Bindings, Binding{Name: name[1:], Expr: attr.Value})
		case strings.HasPrefix(name, "v-bind:"):
			d.Bindings = append(d.Bindings, Binding{Name: name[len("v-bind:"):], Expr: attr.Value})
		case strings.HasPrefix(name, "@"):
			d.Handlers = append(d.Handlers, newHandler(name[1:], attr.Value))
		case strings.HasPrefix(name, "v-on:"):
			d.Handlers = append(d.Handlers, newHandler(name[len("v-on:"):], attr.Value))
		case name == "v-if":
			d.cond, d.condExpr = condIf, attr.Value
		case name == "v-else-if":
			d.cond, d.condExpr = condElseIf, attr.Value
		case name == "v-else":
			d.cond = condElse
		case name == "v-for":
			f, err := parseFor(el, attr.Value)
			if err != nil {
				return nil, err
			}
			d.For = f
		case name == "v-html":
			d.HTML = attr.Value
		case name == "v-text":
			d.Text = attr.Value
		case strings.HasPrefix(name, "v-"):
			return nil, fmt.Errorf("%w %s on %s", ErrUnsupportedDirective, name, el)
		default:
			d.Static = append(d.Static, attr)
		}
	}
	return d, nil
}

func newHandler(spec, expr string) Handler {
	parts := strings.Split(spec, ".")
	return Handler{Event: parts[0], Modifiers: parts[1:], Expr: expr}
}

var simplePath = regexp.MustCompile(`^[A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*|\[[^\[\]]+\])*$`)

// Function returns the handler as a function expression.  A method name or
// path is used as is, any other statement is wrapped with $event in scope.
func (h Handler) Function() string {
	var guards strings.Builder
	for _, m := range h.Modifiers {
		switch m {
		case "stop":
			guards.WriteString("$event.stopPropagation();")
		case "prevent":
			guards.WriteString("$event.preventDefault();")
		case "self":
			guards.WriteString("if($event.target !== $event.currentTarget)return null;")
		default:
			slog.Debug("Ignoring event modifier", "event", h.Event, "modifier", m)
		}
	}
	expr := strings.TrimSpace(h.Expr)
	isPath := simplePath.MatchString(expr)
	if guards.Len() == 0 && isPath {
		return expr
	}
	if isPath {
		expr = "return " + expr + "($event)"
	}
	return "function($event){" + guards.String() + expr + "}"
}
