package decl

// --- Interfaces ---

// Node represents anything that occupies a byte range of the text it was
// parsed from.  Positions are byte offsets into the *original* text and are
// never adjusted while rewriting - see Edits for how replacements are applied.
type Node interface {
	Pos() int // Starting byte offset (inclusive)
	End() int // Ending byte offset (exclusive)
}

// --- Base Struct ---

// NodeInfo embeddable struct for position tracking.
type NodeInfo struct{ StartPos, StopPos int }

func (n NodeInfo) Pos() int { return n.StartPos }
func (n NodeInfo) End() int { return n.StopPos }

// Len returns the number of bytes covered by the node.
func (n NodeInfo) Len() int { return n.StopPos - n.StartPos }

// Span creates a NodeInfo covering [start, end).
func Span(start, end int) NodeInfo {
	return NodeInfo{StartPos: start, StopPos: end}
}

// SpanOf copies the range of any node.
func SpanOf(n Node) NodeInfo {
	return NodeInfo{StartPos: n.Pos(), StopPos: n.End()}
}
