package decl

import "strings"

// Options control how a snippet is detected, rewritten and transpiled.
// Callers usually start from DefaultOptions and Merge their overrides on top
// of whatever the environment probe reported.
type Options struct {
	// Target is the esbuild target the script is lowered to (es2015, es2020, esnext...)
	Target string `json:"target,omitempty" yaml:"target,omitempty"`

	// JSX turns off markup/script separation and enables the JSX loader.
	JSX         bool   `json:"jsx,omitempty" yaml:"jsx,omitempty"`
	JSXFactory  string `json:"jsxFactory,omitempty" yaml:"jsx_factory,omitempty"`
	JSXFragment string `json:"jsxFragment,omitempty" yaml:"jsx_fragment,omitempty"`

	// VueVersion is the major version of the framework the component runs
	// on.  2 selects the legacy render body and element-creation helper,
	// 3 selects the module emitting template compiler.
	VueVersion int `json:"vueVersion,omitempty" yaml:"vue_version,omitempty"`

	// FrameworkModule is the module id runtime helpers are imported from.
	FrameworkModule string `json:"frameworkModule,omitempty" yaml:"framework_module,omitempty"`

	// Constructor is the identifier of the component constructor (new Vue({...}))
	Constructor string `json:"constructor,omitempty" yaml:"constructor,omitempty"`
}

func DefaultOptions() Options {
	return Options{
		Target:          "es2015",
		JSXFactory:      "h",
		JSXFragment:     "Fragment",
		VueVersion:      3,
		FrameworkModule: "vue",
		Constructor:     "Vue",
	}
}

// Merge returns a copy of o with every non-zero field of over applied.
// JSX can only be switched on by an overlay, never off.
func (o Options) Merge(over Options) Options {
	out := o
	if t := strings.TrimSpace(over.Target); t != "" {
		out.Target = t
	}
	out.JSX = o.JSX || over.JSX
	if over.JSXFactory != "" {
		out.JSXFactory = over.JSXFactory
	}
	if over.JSXFragment != "" {
		out.JSXFragment = over.JSXFragment
	}
	if over.VueVersion != 0 {
		out.VueVersion = over.VueVersion
	}
	if over.FrameworkModule != "" {
		out.FrameworkModule = over.FrameworkModule
	}
	if over.Constructor != "" {
		out.Constructor = over.Constructor
	}
	return out
}

// LegacyElementCreation reports whether render functions need the
// element-creation helper injected (framework generation 2 and earlier).
func (o Options) LegacyElementCreation() bool {
	return o.VueVersion > 0 && o.VueVersion < 3
}
