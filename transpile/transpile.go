// Package transpile lowers rewritten scripts to the configured target with
// esbuild.
package transpile

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/panyam/snippet/decl"
)

// Error is the first error esbuild reported.  Line is 1 based, Column 0
// based, both relative to the rewritten script.
type Error struct {
	Line   int
	Column int
	Text   string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Line, e.Column, e.Text)
	}
	return "syntax error: " + e.Text
}

var targets = map[string]api.Target{
	"es2015": api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
	"esnext": api.ESNext,
}

// ParseTarget maps a target name (case insensitive) to esbuild's.  An empty
// name selects es2015.
func ParseTarget(name string) (api.Target, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return api.ES2015, nil
	}
	if t, ok := targets[name]; ok {
		return t, nil
	}
	return api.DefaultTarget, fmt.Errorf("unknown target %q", name)
}

// Transpiler runs esbuild's transform API.  The zero value is ready to use.
type Transpiler struct {
}

func New() *Transpiler {
	return &Transpiler{}
}

// Transpile lowers a script.  The script may contain a top level return, so
// it is treated as a plain script rather than a module.
func (t *Transpiler) Transpile(script string, opts decl.Options) (string, error) {
	target, err := ParseTarget(opts.Target)
	if err != nil {
		return "", err
	}
	topts := api.TransformOptions{
		Target: target,
		Format: api.FormatDefault,
		Loader: api.LoaderJS,
	}
	if opts.JSX {
		topts.Loader = api.LoaderJSX
		topts.JSXFactory = opts.JSXFactory
		topts.JSXFragment = opts.JSXFragment
	}

	result := api.Transform(script, topts)
	for _, w := range result.Warnings {
		slog.Debug("Transpile warning", "text", w.Text)
	}
	if len(result.Errors) > 0 {
		msg := result.Errors[0]
		out := &Error{Text: msg.Text}
		if msg.Location != nil {
			out.Line, out.Column = msg.Location.Line, msg.Location.Column
		}
		return "", out
	}
	return string(result.Code), nil
}
