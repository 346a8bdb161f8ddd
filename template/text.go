package template

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// textPart is either literal text or an interpolated expression.
type textPart struct {
	Expr  bool
	Value string
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// condense collapses whitespace runs to a single space.  Whitespace only text
// is dropped entirely.
func condense(s string) (string, bool) {
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return whitespaceRun.ReplaceAllString(s, " "), true
}

// splitInterpolations cuts text at {{ and }} delimiters.
func splitInterpolations(s string) (parts []textPart, err error) {
	for len(s) > 0 {
		open := strings.Index(s, "{{")
		if open < 0 {
			parts = append(parts, textPart{Value: s})
			break
		}
		if open > 0 {
			parts = append(parts, textPart{Value: s[:open]})
		}
		close := strings.Index(s[open+2:], "}}")
		if close < 0 {
			return nil, fmt.Errorf("unclosed interpolation %q", s[open:])
		}
		expr := strings.TrimSpace(s[open+2 : open+2+close])
		parts = append(parts, textPart{Expr: true, Value: expr})
		s = s[open+2+close+2:]
	}
	return
}

func jsString(s string) string {
	return strconv.Quote(s)
}

var identifier = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)

// jsKey returns name as an object literal key.
func jsKey(name string) string {
	if identifier.MatchString(name) {
		return name
	}
	return jsString(name)
}

// camelize turns my-event into myEvent.
func camelize(s string) string {
	parts := strings.Split(s, "-")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

// parseStaticStyle turns "color: red; margin: 0" into an object literal.
func parseStaticStyle(s string) string {
	var props []string
	for _, decl := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k == "" {
			continue
		}
		props = append(props, jsString(k)+":"+jsString(v))
	}
	return "{" + strings.Join(props, ",") + "}"
}

// objectLiteral renders key/value pairs in the given order.
type objectLiteral struct {
	keys   []string
	values []string
}

func (o *objectLiteral) set(key, value string) {
	o.keys = append(o.keys, key)
	o.values = append(o.values, value)
}

func (o *objectLiteral) empty() bool {
	return len(o.keys) == 0
}

func (o *objectLiteral) String() string {
	pairs := make([]string, len(o.keys))
	for i, k := range o.keys {
		pairs[i] = jsKey(k) + ":" + o.values[i]
	}
	return "{" + strings.Join(pairs, ",") + "}"
}
