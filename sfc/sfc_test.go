package sfc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html/atom"
)

const counter = `<template>
  <button @click="count++">{{ count }}</button>
</template>

<script>
import { ref } from 'vue'
export default {
  data() { return { count: 0 } }
}
</script>

<style scoped>
button { color: red; }
</style>
<style>
.a > .b { margin: 0 }
</style>
`

func TestIsSFC(t *testing.T) {
	n := New()
	assert.True(t, n.IsSFC(counter))
	assert.True(t, n.IsSFC("\n\n  <!-- c --><script>export default {}</script>"))
	assert.True(t, n.IsSFC("<style>a{}</style>"))
	assert.False(t, n.IsSFC("<div>hi</div>"))
	assert.False(t, n.IsSFC("const a = 1\n<template></template>"))
	assert.False(t, n.IsSFC(""))
}

func TestParseBlocks(t *testing.T) {
	desc, err := New().Parse(counter)
	require.NoError(t, err)
	require.NotNil(t, desc.Template)
	require.NotNil(t, desc.Script)
	require.Len(t, desc.Styles, 2)

	assert.Equal(t, atom.Template, desc.Template.Tag)
	assert.Equal(t, "\n  <button @click=\"count++\">{{ count }}</button>\n", desc.Template.Content)
	// Offsets point back into the source
	assert.Equal(t, desc.Template.Content, counter[desc.Template.Pos():desc.Template.End()])
	assert.Equal(t, desc.Script.Content, counter[desc.Script.Pos():desc.Script.End()])

	_, scoped := desc.Styles[0].Attrs["scoped"]
	assert.True(t, scoped)
	assert.Equal(t, "\n.a > .b { margin: 0 }\n", desc.Styles[1].Content)
}

func TestNormalize(t *testing.T) {
	parts, err := New().Normalize(counter)
	require.NoError(t, err)
	assert.Equal(t, "\n  <button @click=\"count++\">{{ count }}</button>\n", parts.TemplateText())
	assert.Equal(t, "\nbutton { color: red; }\n\n\n.a > .b { margin: 0 }\n", parts.StyleText())
	assert.Equal(t, "\nimport { ref } from 'vue'\n;return {\n  data() { return { count: 0 } }\n};\n", parts.Script)
}

func TestNormalizeNestedTemplates(t *testing.T) {
	src := "<template><div><template v-if=\"a\"><b>x</b></template></div></template>"
	parts, err := New().Normalize(src)
	require.NoError(t, err)
	assert.Equal(t, "<div><template v-if=\"a\"><b>x</b></template></div>", parts.TemplateText())
	assert.False(t, parts.HasStyle())
	assert.Equal(t, "", parts.Script)
}

func TestNormalizeScriptWithoutExport(t *testing.T) {
	parts, err := New().Normalize("<script>const a = '<b>'</script>")
	require.NoError(t, err)
	assert.Equal(t, "const a = '<b>'", parts.Script)
	assert.False(t, parts.HasTemplate())
}

func TestNormalizeErrors(t *testing.T) {
	_, err := New().Normalize("<template><div/>")
	assert.True(t, errors.Is(err, ErrUnclosedBlock))

	_, err = New().Normalize("<script></script><script></script>")
	assert.True(t, errors.Is(err, ErrDuplicateBlock))

	_, err = New().Normalize("<script>const = </script>")
	assert.Error(t, err)
}
