package detect

import (
	"github.com/panyam/snippet/decl"
	"github.com/panyam/snippet/rewrite"
)

// Kind names a snippet authoring form.
type Kind string

const (
	KindSFC           Kind = "sfc"
	KindConstructor   Kind = "constructor"
	KindJSX           Kind = "jsx"
	KindBare          Kind = "bare"
	KindDefaultExport Kind = "export"
)

// Form is the result of classifying a snippet.  Each variant knows its
// structural parts and the rewrites its script needs.
type Form interface {
	Kind() Kind
	Parts() decl.ComponentParts

	// RewriteMode selects the script rewrites for this form.  Imports are
	// always rewritten.
	RewriteMode(opts decl.Options) rewrite.Mode
}

// SFCForm is a full single file component, split by the normalizer.
type SFCForm struct {
	parts decl.ComponentParts
}

func (f *SFCForm) Kind() Kind                 { return KindSFC }
func (f *SFCForm) Parts() decl.ComponentParts { return f.parts }
func (f *SFCForm) RewriteMode(opts decl.Options) rewrite.Mode {
	return rewrite.Mode{}
}

// ConstructorForm is a script building its component with `new Vue({...})`.
// Any markup is embedded in the options so no split happens.
type ConstructorForm struct {
	Script string
}

func (f *ConstructorForm) Kind() Kind { return KindConstructor }
func (f *ConstructorForm) Parts() decl.ComponentParts {
	return decl.ComponentParts{Script: f.Script}
}

func (f *ConstructorForm) RewriteMode(opts decl.Options) rewrite.Mode {
	return rewrite.Mode{
		RewriteConstructor:  true,
		Constructor:         opts.Constructor,
		LegacyCreateElement: opts.LegacyElementCreation(),
	}
}

// DefaultExportForm is a script whose component is its default export.  The
// export has already been turned into a return statement.
type DefaultExportForm struct {
	JSX    bool
	Found  bool // false when no default export was found and the script is used as is
	Script string
}

func (f *DefaultExportForm) Kind() Kind {
	if f.JSX {
		return KindJSX
	}
	return KindDefaultExport
}

func (f *DefaultExportForm) Parts() decl.ComponentParts {
	return decl.ComponentParts{Script: f.Script}
}

func (f *DefaultExportForm) RewriteMode(opts decl.Options) rewrite.Mode {
	return rewrite.Mode{}
}

// BareMixForm is plain script followed by markup.  Top level bindings of the
// script become component state.
type BareMixForm struct {
	Script   string
	Template *string
	Boundary int // -1 when there was no markup
}

func (f *BareMixForm) Kind() Kind { return KindBare }
func (f *BareMixForm) Parts() decl.ComponentParts {
	return decl.ComponentParts{Script: f.Script, Template: f.Template}
}

func (f *BareMixForm) RewriteMode(opts decl.Options) rewrite.Mode {
	return rewrite.Mode{CaptureBindings: true}
}
