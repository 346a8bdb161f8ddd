package template

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	gfn "github.com/panyam/goutils/fn"
)

// dialect emits the render calls of one framework generation.
type dialect interface {
	element(el *Element, d *Directives, children []string, hasList bool) string
	text(parts []textPart) string
	list(f *ForClause, node string) string
	empty() string
}

// legacyDialect targets instance bound helpers (_c, _v, _s, _l, _e) used
// from inside with(this).
type legacyDialect struct{}

func (legacyDialect) element(el *Element, d *Directives, children []string, hasList bool) string {
	data := &objectLiteral{}
	attrs := &objectLiteral{}
	domProps := &objectLiteral{}
	on := &objectLiteral{}
	for _, a := range d.Static {
		switch a.Name {
		case "class":
			data.set("staticClass", jsString(a.Value))
		case "style":
			data.set("staticStyle", parseStaticStyle(a.Value))
		default:
			attrs.set(a.Name, jsString(a.Value))
		}
	}
	for _, b := range d.Bindings {
		switch b.Name {
		case "class", "style", "key":
			data.set(b.Name, b.Expr)
		default:
			attrs.set(b.Name, b.Expr)
		}
	}
	if d.HTML != "" {
		domProps.set("innerHTML", "_s("+d.HTML+")")
	}
	if d.Text != "" {
		domProps.set("textContent", "_s("+d.Text+")")
	}
	for _, h := range d.Handlers {
		on.set(h.Event, h.Function())
	}
	for _, sub := range []struct {
		key string
		obj *objectLiteral
	}{{"attrs", attrs}, {"domProps", domProps}, {"on", on}} {
		if !sub.obj.empty() {
			data.set(sub.key, sub.obj.String())
		}
	}

	args := []string{jsString(el.Tag)}
	if !data.empty() {
		args = append(args, data.String())
	}
	if len(children) > 0 {
		args = append(args, "["+strings.Join(children, ",")+"]")
		if hasList {
			args = append(args, "2")
		}
	}
	return "_c(" + strings.Join(args, ",") + ")"
}

func (legacyDialect) text(parts []textPart) string {
	pieces := gfn.Map(parts, func(p textPart) string {
		if p.Expr {
			return "_s(" + p.Value + ")"
		}
		return jsString(p.Value)
	})
	return "_v(" + strings.Join(pieces, "+") + ")"
}

func (legacyDialect) list(f *ForClause, node string) string {
	return fmt.Sprintf("_l((%s),function(%s){return %s})", f.Source, f.Params, node)
}

func (legacyDialect) empty() string {
	return "_e()"
}

// moduleDialect targets imported helpers and records which ones it used so
// the module can import exactly those.
type moduleDialect struct {
	helpers    map[string]bool
	components []string
}

func newModuleDialect() *moduleDialect {
	return &moduleDialect{helpers: map[string]bool{"h": true}}
}

func (m *moduleDialect) use(helper string) string {
	m.helpers[helper] = true
	return "_" + helper
}

var nonWord = regexp.MustCompile(`[^\w$]`)

func (m *moduleDialect) component(tag string) string {
	name := "_component_" + nonWord.ReplaceAllString(tag, "_")
	for _, c := range m.components {
		if c == tag {
			return name
		}
	}
	m.use("resolveComponent")
	m.components = append(m.components, tag)
	return name
}

func (m *moduleDialect) element(el *Element, d *Directives, children []string, hasList bool) string {
	props := &objectLiteral{}
	var class, style []string
	for _, a := range d.Static {
		switch a.Name {
		case "class":
			class = append(class, jsString(a.Value))
		case "style":
			style = append(style, jsString(a.Value))
		default:
			props.set(a.Name, jsString(a.Value))
		}
	}
	for _, b := range d.Bindings {
		switch b.Name {
		case "class":
			class = append(class, b.Expr)
		case "style":
			style = append(style, b.Expr)
		default:
			props.set(b.Name, b.Expr)
		}
	}
	for _, merged := range []struct {
		key    string
		values []string
	}{{"class", class}, {"style", style}} {
		switch len(merged.values) {
		case 0:
		case 1:
			props.set(merged.key, merged.values[0])
		default:
			props.set(merged.key, "["+strings.Join(merged.values, ",")+"]")
		}
	}
	if d.HTML != "" {
		props.set("innerHTML", d.HTML)
	}
	if d.Text != "" {
		props.set("textContent", m.use("toDisplayString")+"("+d.Text+")")
	}
	for _, h := range d.Handlers {
		props.set(handlerKey(h.Event), h.Function())
	}

	tag := jsString(el.Tag)
	if el.Component {
		tag = m.component(el.Tag)
	}
	propsText := "null"
	if !props.empty() {
		propsText = props.String()
	}
	args := []string{tag}
	if len(children) > 0 {
		kids := "[" + strings.Join(children, ", ") + "]"
		if el.Component {
			kids = "{ default: function() { return " + kids + " } }"
		}
		args = append(args, propsText, kids)
	} else if !props.empty() {
		args = append(args, propsText)
	}
	return m.use("h") + "(" + strings.Join(args, ", ") + ")"
}

// handlerKey turns an event name into its listener prop, my-event -> onMyEvent.
func handlerKey(event string) string {
	ev := camelize(event)
	if ev == "" {
		return "on"
	}
	return "on" + strings.ToUpper(ev[:1]) + ev[1:]
}

func (m *moduleDialect) text(parts []textPart) string {
	pieces := gfn.Map(parts, func(p textPart) string {
		if p.Expr {
			return m.use("toDisplayString") + "(" + p.Value + ")"
		}
		return jsString(p.Value)
	})
	return strings.Join(pieces, " + ")
}

func (m *moduleDialect) list(f *ForClause, node string) string {
	return fmt.Sprintf("%s(%s, function(%s) { return %s })", m.use("renderList"), f.Source, f.Params, node)
}

func (m *moduleDialect) empty() string {
	return m.use("createCommentVNode") + `("v-if", true)`
}

// module wraps a render expression into a render function module.
func (m *moduleDialect) module(expr, framework string) string {
	var names []string
	for h := range m.helpers {
		names = append(names, h)
	}
	sort.Strings(names)
	imports := gfn.Map(names, func(h string) string { return h + " as _" + h })

	var b strings.Builder
	fmt.Fprintf(&b, "import { %s } from %s\n\n", strings.Join(imports, ", "), jsString(framework))
	b.WriteString("export function render(_ctx, _cache) {\n")
	b.WriteString("  with (_ctx) {\n")
	for _, c := range m.components {
		fmt.Fprintf(&b, "    const _component_%s = _resolveComponent(%s)\n", nonWord.ReplaceAllString(c, "_"), jsString(c))
	}
	fmt.Fprintf(&b, "    return %s\n", expr)
	b.WriteString("  }\n}\n")
	return b.String()
}
