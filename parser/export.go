package parser

import (
	"fmt"
	"strings"
)

// DefaultExportSplit is a script cut around its `export default` statement.
// Preprocessing is everything before the statement, Component the exported
// expression (or declaration) and Postprocessing everything after it.
type DefaultExportSplit struct {
	Preprocessing  string
	Component      string
	Postprocessing string
}

// Script reassembles the split into a function body that returns the
// component:  {pre};return {component};{post}
func (s DefaultExportSplit) Script() string {
	return fmt.Sprintf("%s;return %s;%s", s.Preprocessing, s.Component, s.Postprocessing)
}

// SplitDefaultExport looks for a top level `export default ...` statement.
// found is false (and the split empty) when there is none.
func SplitDefaultExport(src string) (out DefaultExportSplit, found bool, err error) {
	tree, err := Parse(src)
	if err != nil {
		return out, false, err
	}
	defer tree.Close()

	for _, stmt := range NamedChildren(tree.Root) {
		if stmt.Kind() != "export_statement" || !HasToken(stmt, "default") {
			continue
		}
		value := stmt.ChildByFieldName("value")
		if value == nil {
			value = stmt.ChildByFieldName("declaration")
		}
		if value == nil {
			continue
		}
		out.Preprocessing = src[:stmt.StartByte()]
		out.Component = tree.Text(value)
		out.Postprocessing = src[stmt.EndByte():]
		return out, true, nil
	}
	return out, false, nil
}

// HasDefaultExport is a cheap textual pre-check used before paying for a
// parse.  It may report false positives (eg inside strings).
func HasDefaultExport(src string) bool {
	idx := strings.Index(src, "export")
	for idx >= 0 {
		rest := strings.TrimLeft(src[idx+len("export"):], " \t\r\n")
		if strings.HasPrefix(rest, "default") {
			return true
		}
		next := strings.Index(src[idx+1:], "export")
		if next < 0 {
			break
		}
		idx = idx + 1 + next
	}
	return false
}
