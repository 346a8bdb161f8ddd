package decl

// ComponentParts holds the structural pieces of a snippet once its form has
// been detected.  Script is always present (possibly empty); Template and
// Style are optional and independent of each other.
type ComponentParts struct {
	Script   string
	Template *string
	Style    *string
}

func (c ComponentParts) HasTemplate() bool { return c.Template != nil }
func (c ComponentParts) HasStyle() bool    { return c.Style != nil }

// TemplateText returns the template or "" when there is none.
func (c ComponentParts) TemplateText() string {
	if c.Template == nil {
		return ""
	}
	return *c.Template
}

// StyleText returns the style or "" when there is none.
func (c ComponentParts) StyleText() string {
	if c.Style == nil {
		return ""
	}
	return *c.Style
}

// StrPtr is a small helper for the optional fields above.
func StrPtr(s string) *string {
	return &s
}

// EvaluableComponent is the only artifact handed back to callers.  Script is
// a function body that, once evaluated, returns the component definition.
// The template has been folded into Script by the time this is produced.
type EvaluableComponent struct {
	Script string `json:"script"`
	Style  string `json:"style,omitempty"`
}
