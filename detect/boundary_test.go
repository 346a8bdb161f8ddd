package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindMarkupBoundary(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		cut      int
		expected bool
	}{
		{"script then markup", "const x = 1\n<div>hi</div>", 12, true},
		{"leading markup", "<div>{{ x }}</div>\n<p>more</p>", 0, true},
		{"leading whitespace", "  \n\t<div/>", 0, true},
		{"indented markup", "let a\n   <span>a</span>", 6, true},
		{"first line wins", "a()\n<b>1</b>\n<i>2</i>", 4, true},
		{"no markup", "const a = 1 < b", -1, false},
		{"comparison on new line", "const a = b\n< c", -1, false},
		{"closing tag is not an opener", "x\n</div>", -1, false},
		{"empty", "", -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cut, ok := FindMarkupBoundary(tt.input)
			assert.Equal(t, tt.expected, ok)
			assert.Equal(t, tt.cut, cut)
			if ok {
				// The cut is a partition of the input
				assert.Equal(t, tt.input, tt.input[:cut]+tt.input[cut:])
				assert.Regexp(t, `^[ \t]*<[A-Za-z]`, tt.input[cut:])
			}
		})
	}
}

func TestBoundaryPartitionExact(t *testing.T) {
	form, err := Classify("const x = 1\n<div>hi</div>", testOptions(), nil)
	assert.NoError(t, err)
	parts := form.Parts()
	assert.Equal(t, "const x = 1\n", parts.Script)
	assert.Equal(t, "<div>hi</div>", parts.TemplateText())
}

func TestBoundaryTemplateLiteralFailure(t *testing.T) {
	// Known limitation: markup looking lines inside strings are taken as the cut
	input := "const t = `\n<b>not markup</b>`\nfoo()"
	cut, ok := FindMarkupBoundary(input)
	assert.True(t, ok)
	assert.Equal(t, "const t = `\n", input[:cut])
}
