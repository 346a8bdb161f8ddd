package rewrite

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panyam/snippet/parser"
)

func TestRewriteExports(t *testing.T) {
	res := rewriteString(t, "export const a = 1\nexport { a as b }\nexport function f() {}", Mode{})
	assert.Equal(t, "const a = 1\n\nfunction f() {}", res.Script)

	// Default exports are split before rewriting and left alone here
	res = rewriteString(t, "export default {a: 1}", Mode{})
	assert.Equal(t, "export default {a: 1}", res.Script)
}

func TestRewriteAllModes(t *testing.T) {
	input := "import { ref } from 'vue'\nconst count = ref(0)\nnew Vue({render(){return h('b')}})"
	res := rewriteString(t, input, Mode{RewriteConstructor: true, LegacyCreateElement: true, CaptureBindings: true})
	assert.True(t, res.ConstructorFound)
	assert.Equal(t, []string{"ref", "count"}, res.Captured)
	assert.Equal(t,
		"const { ref } = require('vue');\nconst count = ref(0)\n;return {render(){var h = this.$createElement;return h('b')}};return {data(){return {ref:ref,count:count}}}",
		res.Script)
	assert.Equal(t, len(input)+res.Edits.Delta(), len(res.Script))
}

func TestRewriteLeavesOtherCodeAlone(t *testing.T) {
	input := "// leading comment\nconst x = `import a from 'b'`\nfoo(x)"
	res := rewriteString(t, input, Mode{RewriteConstructor: true})
	assert.Equal(t, input, res.Script)
	assert.Empty(t, res.Edits)
}

func TestRewriteParseError(t *testing.T) {
	_, err := Script("const = ;", Mode{})
	require.Error(t, err)
	var perr *parser.ParseError
	assert.True(t, errors.As(err, &perr))
}
