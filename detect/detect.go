// Package detect works out which authoring style a snippet is written in and
// splits it into script, template and style parts accordingly.
package detect

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/panyam/snippet/decl"
	"github.com/panyam/snippet/parser"
)

// Normalizer splits full single file components.
type Normalizer interface {
	IsSFC(src string) bool
	Normalize(src string) (decl.ComponentParts, error)
}

// classifier returns nil, nil when src is not of its form.
type classifier func(src string, opts decl.Options, normalizer Normalizer) (Form, error)

// Tried in order, first match wins.
var classifiers = []classifier{
	classifySFC,
	classifyConstructor,
	classifyJSX,
	classifyBare,
	classifyDefaultExport,
}

// Classify detects the form of src.  It always returns a form unless a
// collaborator fails: snippets matching nothing else are bare scripts.
func Classify(src string, opts decl.Options, normalizer Normalizer) (Form, error) {
	for _, c := range classifiers {
		form, err := c(src, opts, normalizer)
		if err != nil {
			return nil, err
		}
		if form != nil {
			slog.Debug("Classified snippet", "kind", form.Kind(), "length", len(src))
			return form, nil
		}
	}
	return &BareMixForm{Script: src, Boundary: -1}, nil
}

func classifySFC(src string, opts decl.Options, normalizer Normalizer) (Form, error) {
	if normalizer == nil || !normalizer.IsSFC(src) {
		return nil, nil
	}
	parts, err := normalizer.Normalize(src)
	if err != nil {
		return nil, fmt.Errorf("cannot normalize single file component: %w", err)
	}
	return &SFCForm{parts: parts}, nil
}

// ConstructorPattern matches a call of the named constructor, with or
// without `new`, that is not a property access (foo.Vue()).
func ConstructorPattern(ctor string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^\w$.])(?:new\s+)?` + regexp.QuoteMeta(ctor) + `\s*\(`)
}

// HasConstructorCall reports whether the text calls the constructor
// anywhere.  This is textual, a call inside a string also counts.
func HasConstructorCall(src, ctor string) bool {
	if ctor == "" {
		ctor = decl.DefaultOptions().Constructor
	}
	return ConstructorPattern(ctor).MatchString(src)
}

func classifyConstructor(src string, opts decl.Options, _ Normalizer) (Form, error) {
	if !HasConstructorCall(src, opts.Constructor) {
		return nil, nil
	}
	return &ConstructorForm{Script: src}, nil
}

func classifyJSX(src string, opts decl.Options, _ Normalizer) (Form, error) {
	if !opts.JSX {
		return nil, nil
	}
	form, err := splitDefaultExport(src, true)
	if err != nil {
		return nil, err
	}
	return form, nil
}

func classifyBare(src string, _ decl.Options, _ Normalizer) (Form, error) {
	cut, ok := FindMarkupBoundary(src)
	if !ok {
		return nil, nil
	}
	return &BareMixForm{Script: src[:cut], Template: decl.StrPtr(src[cut:]), Boundary: cut}, nil
}

func classifyDefaultExport(src string, _ decl.Options, _ Normalizer) (Form, error) {
	if !parser.HasDefaultExport(src) {
		return nil, nil
	}
	form, err := splitDefaultExport(src, false)
	if err != nil {
		return nil, err
	}
	if !form.Found {
		// eg the words only appear inside a string
		return nil, nil
	}
	return form, nil
}

func splitDefaultExport(src string, jsx bool) (*DefaultExportForm, error) {
	split, found, err := parser.SplitDefaultExport(src)
	if err != nil {
		return nil, err
	}
	form := &DefaultExportForm{JSX: jsx, Found: found, Script: src}
	if found {
		form.Script = split.Script()
	} else {
		slog.Debug("No default export found, using the whole snippet as script", "jsx", jsx)
	}
	return form, nil
}
