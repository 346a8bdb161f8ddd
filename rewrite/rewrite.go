// Package rewrite turns a snippet script into something that can live inside
// a function body: imports become require calls, a constructor call becomes a
// return of its options and, for bare snippets, top level bindings are
// exposed through a trailing data() accessor.
//
// All rewrites are collected as edits against the original text during a
// single walk over the top level statements and applied in one pass at the
// end, so node positions never need adjusting mid-walk.
package rewrite

import (
	"log/slog"

	"github.com/panyam/snippet/decl"
	"github.com/panyam/snippet/parser"
)

// Mode selects which of the optional rewrites run.  Import rewriting is
// always on.
type Mode struct {
	// Replace the first top level constructor call with a return of its options
	RewriteConstructor bool

	// Constructor identifier to look for (defaults to Vue)
	Constructor string

	// Splice the element creation helper into render functions found in the
	// constructor options
	LegacyCreateElement bool

	// Collect top level names and append a data() accessor
	CaptureBindings bool
}

// Result of rewriting a script.
type Result struct {
	Script           string
	Captured         []string
	ConstructorFound bool
	Edits            decl.Edits
}

// Script parses src and applies the rewrites selected by mode.
func Script(src string, mode Mode) (*Result, error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	ctor := mode.Constructor
	if ctor == "" {
		ctor = "Vue"
	}

	result := &Result{}
	capturer := &Capturer{}
	for _, stmt := range parser.NamedChildren(tree.Root) {
		switch stmt.Kind() {
		case "import_statement":
			result.Edits.Add(ImportEdit(stmt, tree.Source))
		case "export_statement":
			result.Edits.Add(exportEdits(stmt)...)
		case "expression_statement":
			if !mode.RewriteConstructor {
				break
			}
			call := FindConstructorCall(stmt, tree.Source, ctor)
			if call == nil {
				break
			}
			if result.ConstructorFound {
				slog.Debug("Ignoring additional constructor call", "pos", stmt.StartByte())
				break
			}
			result.ConstructorFound = true
			result.Edits.Add(ConstructorEdits(call, tree.Source, mode.LegacyCreateElement)...)
		}
		if mode.CaptureBindings {
			capturer.Statement(stmt, tree.Source)
		}
	}

	if mode.CaptureBindings {
		result.Captured = capturer.Names
		result.Edits.Add(decl.Insert(len(src), capturer.AccessorText()))
	}

	slog.Debug("Rewriting script", "edits", len(result.Edits), "captured", len(result.Captured), "constructor", result.ConstructorFound)
	result.Script, err = result.Edits.Apply(src)
	if err != nil {
		return nil, err
	}
	return result, nil
}
