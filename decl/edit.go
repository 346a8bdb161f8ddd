package decl

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrOverlappingEdits is returned when two edits in the same list touch the
// same bytes of the original text.
var ErrOverlappingEdits = errors.New("overlapping edits")

// Edit replaces the bytes [StartPos, StopPos) of the original text with Text.
// A zero-width edit is an insertion.
type Edit struct {
	NodeInfo
	Text string
}

// Delta is the change in length this edit causes.
func (e Edit) Delta() int {
	return len(e.Text) - e.Len()
}

// Replace creates an edit that swaps out the whole range of a node.
func Replace(n Node, text string) Edit {
	return Edit{NodeInfo: SpanOf(n), Text: text}
}

// ReplaceRange creates an edit over an explicit range.
func ReplaceRange(start, end int, text string) Edit {
	return Edit{NodeInfo: Span(start, end), Text: text}
}

// Insert creates a zero-width edit at pos.
func Insert(pos int, text string) Edit {
	return Edit{NodeInfo: Span(pos, pos), Text: text}
}

// Delete removes [start, end).
func Delete(start, end int) Edit {
	return Edit{NodeInfo: Span(start, end)}
}

// Edits is an ordered collection of edits against a single original text.
// Edits are only ever computed against the original positions; nothing is
// applied until Apply is called, so no offsets need to be tracked while a
// tree is being walked.
type Edits []Edit

// Add appends edits to the list.
func (e *Edits) Add(edits ...Edit) {
	*e = append(*e, edits...)
}

// Delta returns the total change in length all edits will cause.
func (e Edits) Delta() (out int) {
	for _, edit := range e {
		out += edit.Delta()
	}
	return
}

// Apply performs all edits on src in a single left to right pass.
// Edits are ordered by start position; insertions at the same position keep
// the order in which they were added.
func (e Edits) Apply(src string) (string, error) {
	if len(e) == 0 {
		return src, nil
	}
	sorted := make(Edits, len(e))
	copy(sorted, e)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartPos < sorted[j].StartPos
	})

	var sb strings.Builder
	sb.Grow(len(src) + e.Delta())
	cursor := 0
	for _, edit := range sorted {
		if edit.StartPos < 0 || edit.StopPos > len(src) || edit.StartPos > edit.StopPos {
			return "", fmt.Errorf("edit [%d:%d] out of range for text of length %d", edit.StartPos, edit.StopPos, len(src))
		}
		if edit.StartPos < cursor {
			return "", fmt.Errorf("%w: edit [%d:%d] starts before %d", ErrOverlappingEdits, edit.StartPos, edit.StopPos, cursor)
		}
		sb.WriteString(src[cursor:edit.StartPos])
		sb.WriteString(edit.Text)
		cursor = edit.StopPos
	}
	sb.WriteString(src[cursor:])
	return sb.String(), nil
}
