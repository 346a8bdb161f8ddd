// Package sfc splits single file components into their script, template and
// style blocks.
package sfc

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/panyam/snippet/decl"
	"github.com/panyam/snippet/parser"
)

var (
	ErrDuplicateBlock = errors.New("duplicate block")
	ErrUnclosedBlock  = errors.New("unclosed block")
)

// Block is one top level block of a single file component.  Content is the
// raw text between the opening and closing tags.
type Block struct {
	decl.NodeInfo // span of the contents in the source
	Tag           atom.Atom
	Attrs         map[string]string
	Content       string
}

// Lang returns the lang attribute, if any.
func (b *Block) Lang() string {
	return b.Attrs["lang"]
}

// Descriptor is every block of a component in source order.
type Descriptor struct {
	Template *Block
	Script   *Block
	Styles   []*Block
}

// Normalizer implements the single file component side of form detection.
type Normalizer struct {
}

func New() *Normalizer {
	return &Normalizer{}
}

func isBlockTag(a atom.Atom) bool {
	return a == atom.Template || a == atom.Script || a == atom.Style
}

// IsSFC reports whether the first significant token of src is a top level
// template, script or style tag.
func (n *Normalizer) IsSFC(src string) bool {
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.CommentToken, html.DoctypeToken:
			continue
		case html.TextToken:
			if strings.TrimSpace(string(z.Raw())) != "" {
				return false
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			return isBlockTag(atom.Lookup(name))
		default:
			return false
		}
	}
}

// Parse collects the top level blocks of src.  Block contents are sliced out
// of src by byte offset so they are exactly what was written, entities and
// all.
func (n *Normalizer) Parse(src string) (*Descriptor, error) {
	z := html.NewTokenizer(strings.NewReader(src))
	desc := &Descriptor{}
	offset := 0
	var current *Block
	depth := 0 // nesting of the current block's own tag, for <template> inside <template>
	for {
		tt := z.Next()
		raw := z.Raw()
		start := offset
		offset += len(raw)

		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return nil, z.Err()
			}
			if current != nil {
				return nil, fmt.Errorf("%w: <%s> opened at %d", ErrUnclosedBlock, current.Tag, current.Pos())
			}
			return desc, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := atom.Lookup(name)
			if current != nil {
				if tag == current.Tag && tt == html.StartTagToken {
					depth++
				}
				continue
			}
			if !isBlockTag(tag) {
				slog.Debug("Skipping non block top level tag", "tag", string(name), "pos", start)
				continue
			}
			block := &Block{Tag: tag, Attrs: map[string]string{}}
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				block.Attrs[string(key)] = string(val)
			}
			block.StartPos, block.StopPos = offset, offset
			if tt == html.SelfClosingTagToken {
				if err := desc.add(block); err != nil {
					return nil, err
				}
				continue
			}
			current, depth = block, 1
		case html.EndTagToken:
			if current == nil {
				continue
			}
			name, _ := z.TagName()
			if atom.Lookup(name) != current.Tag {
				continue
			}
			if depth--; depth > 0 {
				continue
			}
			current.StopPos = start
			current.Content = src[current.StartPos:current.StopPos]
			if err := desc.add(current); err != nil {
				return nil, err
			}
			current = nil
		}
	}
}

func (d *Descriptor) add(b *Block) error {
	switch b.Tag {
	case atom.Template:
		if d.Template != nil {
			return fmt.Errorf("%w: second <template> at %d", ErrDuplicateBlock, b.Pos())
		}
		d.Template = b
	case atom.Script:
		if d.Script != nil {
			return fmt.Errorf("%w: second <script> at %d", ErrDuplicateBlock, b.Pos())
		}
		d.Script = b
	case atom.Style:
		d.Styles = append(d.Styles, b)
	}
	return nil
}

// Normalize splits src into component parts.  Styles are joined with
// newlines and the script's default export becomes a return statement.
func (n *Normalizer) Normalize(src string) (parts decl.ComponentParts, err error) {
	desc, err := n.Parse(src)
	if err != nil {
		return parts, err
	}
	if desc.Template != nil {
		parts.Template = decl.StrPtr(desc.Template.Content)
	}
	if len(desc.Styles) > 0 {
		styles := make([]string, len(desc.Styles))
		for i, s := range desc.Styles {
			styles[i] = s.Content
		}
		parts.Style = decl.StrPtr(strings.Join(styles, "\n"))
	}
	if desc.Script == nil {
		return parts, nil
	}
	if lang := desc.Script.Lang(); lang != "" && lang != "js" && lang != "jsx" {
		slog.Warn("Script block language is not supported, treating it as javascript", "lang", lang)
	}
	split, found, err := parser.SplitDefaultExport(desc.Script.Content)
	if err != nil {
		return parts, fmt.Errorf("invalid <script> block: %w", err)
	}
	if found {
		parts.Script = split.Script()
	} else {
		parts.Script = desc.Script.Content
	}
	return parts, nil
}
