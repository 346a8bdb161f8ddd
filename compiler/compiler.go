// Package compiler turns snippets into evaluable component bodies.  It ties
// together form detection, script rewriting, transpilation and template
// compilation; each of the heavy steps is a pluggable collaborator.
package compiler

import (
	"fmt"
	"log/slog"

	"github.com/panyam/snippet/decl"
	"github.com/panyam/snippet/detect"
	"github.com/panyam/snippet/probe"
	"github.com/panyam/snippet/rewrite"
	"github.com/panyam/snippet/sfc"
	"github.com/panyam/snippet/template"
	"github.com/panyam/snippet/transpile"
)

// Transpiler lowers a rewritten script to the target dialect.
type Transpiler interface {
	Transpile(script string, opts decl.Options) (string, error)
}

// TemplateCompiler compiles template markup into a legacy render body or a
// render module, depending on opts.
type TemplateCompiler interface {
	Compile(template string, opts decl.Options) (string, error)
}

// Probe reports target options for the environment the output will run in.
type Probe interface {
	Probe() decl.Options
}

// Compiler holds the collaborators and the base options.  It keeps no state
// between calls and is safe for concurrent use.
type Compiler struct {
	Options    decl.Options
	Transpiler Transpiler
	Templates  TemplateCompiler
	Normalizer detect.Normalizer
	Probe      Probe
}

// New creates a compiler with the default collaborators.
func New() *Compiler {
	return &Compiler{
		Options:    decl.DefaultOptions(),
		Transpiler: transpile.New(),
		Templates:  template.New(),
		Normalizer: sfc.New(),
		Probe:      probe.None{},
	}
}

// WithProbe returns a copy of the compiler using p.
func (c *Compiler) WithProbe(p Probe) *Compiler {
	out := *c
	out.Probe = p
	return &out
}

// Result carries the output with what was found along the way.
type Result struct {
	decl.EvaluableComponent
	Form     detect.Kind
	Options  decl.Options
	Captured []string
}

// ResolveOptions layers the probed fragment and then over on top of the
// base options.
func (c *Compiler) ResolveOptions(over decl.Options) decl.Options {
	opts := c.Options
	if c.Probe != nil {
		opts = opts.Merge(c.Probe.Probe())
	}
	return opts.Merge(over)
}

// Classify only detects the form of a snippet.
func (c *Compiler) Classify(src string, over decl.Options) (detect.Form, error) {
	return detect.Classify(src, c.ResolveOptions(over), c.Normalizer)
}

// Compile converts a snippet into an evaluable component.
func (c *Compiler) Compile(src string, over decl.Options) (*decl.EvaluableComponent, error) {
	res, err := c.CompileDetailed(src, over)
	if err != nil {
		return nil, err
	}
	return &res.EvaluableComponent, nil
}

// CompileDetailed is Compile with the detected form and resolved options.
func (c *Compiler) CompileDetailed(src string, over decl.Options) (*Result, error) {
	opts := c.ResolveOptions(over)
	form, err := detect.Classify(src, opts, c.Normalizer)
	if err != nil {
		return nil, err
	}
	parts := form.Parts()
	slog.Debug("Compiling snippet", "form", form.Kind(), "template", parts.HasTemplate(), "style", parts.HasStyle())

	rewritten, err := rewrite.Script(parts.Script, form.RewriteMode(opts))
	if err != nil {
		return nil, fmt.Errorf("cannot rewrite script: %w", err)
	}
	script, err := c.Transpiler.Transpile(rewritten.Script, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{Form: form.Kind(), Options: opts, Captured: rewritten.Captured}
	res.Style = parts.StyleText()
	if !parts.HasTemplate() {
		res.Script = script
		return res, nil
	}

	render, err := c.renderBody(parts.TemplateText(), opts)
	if err != nil {
		return nil, err
	}
	res.Script = Assemble(script, render)
	return res, nil
}

func (c *Compiler) renderBody(tmpl string, opts decl.Options) (string, error) {
	compiled, err := c.Templates.Compile(tmpl, opts)
	if err != nil {
		return "", fmt.Errorf("cannot compile template: %w", err)
	}
	if opts.LegacyElementCreation() {
		return compiled, nil
	}
	return rewrite.InlineRenderModule(compiled, opts.FrameworkModule)
}

// Assemble builds the final body from a component script and a render
// function body.
func Assemble(script, render string) string {
	return fmt.Sprintf("const comp = (function() {%s})()\ncomp.render = function() {%s}\nreturn comp", script, render)
}
