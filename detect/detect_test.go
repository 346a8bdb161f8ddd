package detect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panyam/snippet/decl"
)

func testOptions() decl.Options {
	return decl.DefaultOptions()
}

// fakeNormalizer treats anything starting with "<template>" as a single file
// component.
type fakeNormalizer struct {
	parts decl.ComponentParts
	err   error
	calls int
}

func (f *fakeNormalizer) IsSFC(src string) bool {
	return len(src) >= 10 && src[:10] == "<template>"
}

func (f *fakeNormalizer) Normalize(src string) (decl.ComponentParts, error) {
	f.calls++
	return f.parts, f.err
}

func classifyString(t *testing.T, input string, opts decl.Options, n Normalizer) Form {
	t.Helper()
	form, err := Classify(input, opts, n)
	require.NoError(t, err, "Input:\n%s", input)
	require.NotNil(t, form)
	return form
}

func TestClassifySFC(t *testing.T) {
	n := &fakeNormalizer{parts: decl.ComponentParts{Script: "s", Template: decl.StrPtr("t"), Style: decl.StrPtr("c")}}
	form := classifyString(t, "<template><div/></template>\nnew Vue({})", testOptions(), n)
	assert.Equal(t, KindSFC, form.Kind())
	// Parts come back from the normalizer untouched
	assert.Equal(t, n.parts, form.Parts())
	assert.Equal(t, 1, n.calls)
	assert.Equal(t, false, form.RewriteMode(testOptions()).RewriteConstructor)
}

func TestClassifySFCError(t *testing.T) {
	n := &fakeNormalizer{err: errors.New("bad block")}
	_, err := Classify("<template>", testOptions(), n)
	assert.ErrorContains(t, err, "bad block")
}

func TestClassifyConstructor(t *testing.T) {
	input := "const a = 1\nnew Vue({template: '<div/>'})\n<div>ignored</div>"
	form := classifyString(t, input, testOptions(), nil)
	assert.Equal(t, KindConstructor, form.Kind())
	parts := form.Parts()
	assert.Equal(t, input, parts.Script)
	assert.False(t, parts.HasTemplate())

	opts := testOptions()
	opts.VueVersion = 2
	mode := form.RewriteMode(opts)
	assert.True(t, mode.RewriteConstructor)
	assert.True(t, mode.LegacyCreateElement)
	assert.Equal(t, "Vue", mode.Constructor)

	// Constructor wins over JSX mode too
	opts.JSX = true
	assert.Equal(t, KindConstructor, classifyString(t, "Vue({render(){ return <p/> }})", opts, nil).Kind())
}

func TestHasConstructorCall(t *testing.T) {
	assert.True(t, HasConstructorCall("new Vue({})", "Vue"))
	assert.True(t, HasConstructorCall("Vue ({})", "Vue"))
	assert.True(t, HasConstructorCall("x;new  Vue()", ""))
	assert.False(t, HasConstructorCall("app.Vue({})", "Vue"))
	assert.False(t, HasConstructorCall("MyVue({})", "Vue"))
	assert.False(t, HasConstructorCall("new Vue", "Vue"))
	assert.True(t, HasConstructorCall("new $App({})", "$App"))
}

func TestClassifyJSX(t *testing.T) {
	opts := testOptions()
	opts.JSX = true
	input := "const a = 1\nexport default {render() { return <div>{a}</div> }}\nconsole.log(a)"
	form := classifyString(t, input, opts, nil)
	assert.Equal(t, KindJSX, form.Kind())
	assert.Equal(t, "const a = 1\n;return {render() { return <div>{a}</div> }};\nconsole.log(a)", form.Parts().Script)
	assert.False(t, form.Parts().HasTemplate())

	// No default export: the whole text is the script
	form = classifyString(t, "const a = <p/>", opts, nil)
	assert.Equal(t, KindJSX, form.Kind())
	assert.Equal(t, "const a = <p/>", form.Parts().Script)
}

func TestClassifyBare(t *testing.T) {
	form := classifyString(t, "const msg = 'hi'\n<p>{{ msg }}</p>", testOptions(), nil)
	require.Equal(t, KindBare, form.Kind())
	bare := form.(*BareMixForm)
	assert.Equal(t, 17, bare.Boundary)
	assert.True(t, form.RewriteMode(testOptions()).CaptureBindings)

	// Nothing recognisable: the whole text is a bare script
	form = classifyString(t, "console.log(1)", testOptions(), nil)
	assert.Equal(t, KindBare, form.Kind())
	assert.Equal(t, "console.log(1)", form.Parts().Script)
	assert.False(t, form.Parts().HasTemplate())
	assert.Equal(t, -1, form.(*BareMixForm).Boundary)
}

func TestClassifyDefaultExport(t *testing.T) {
	form := classifyString(t, "export default { data() { return {a: 1} } }", testOptions(), nil)
	assert.Equal(t, KindDefaultExport, form.Kind())
	assert.Equal(t, ";return { data() { return {a: 1} } };", form.Parts().Script)

	// Markup wins over a default export
	form = classifyString(t, "export default {}\n<div/>", testOptions(), nil)
	assert.Equal(t, KindBare, form.Kind())

	// Only mentioned in a string
	form = classifyString(t, "const s = 'export default'", testOptions(), nil)
	assert.Equal(t, KindBare, form.Kind())
}
