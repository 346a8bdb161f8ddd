package decl

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditsApplyEmpty(t *testing.T) {
	var edits Edits
	out, err := edits.Apply("const a = 1")
	require.NoError(t, err)
	assert.Equal(t, "const a = 1", out)
}

func TestEditsApplyOutOfOrder(t *testing.T) {
	src := "aaa bbb ccc"
	var edits Edits
	edits.Add(ReplaceRange(8, 11, "Z"))
	edits.Add(ReplaceRange(0, 3, "XXXXX"))
	edits.Add(Delete(3, 4))
	out, err := edits.Apply(src)
	require.NoError(t, err)
	assert.Equal(t, "XXXXXbbb Z", out)
}

func TestEditsInsertionsKeepOrder(t *testing.T) {
	var edits Edits
	edits.Add(Insert(1, "1"), Insert(1, "2"), Insert(1, "3"))
	out, err := edits.Apply("ab")
	require.NoError(t, err)
	assert.Equal(t, "a123b", out)
}

func TestEditsInsertInsideReplacedBracket(t *testing.T) {
	// The shape the constructor rewrite produces: prefix swap, insertion in
	// the middle, suffix delete.
	src := "new Vue({render(){}});"
	var edits Edits
	edits.Add(ReplaceRange(0, 8, ";return "))
	edits.Add(Insert(18, "X"))
	edits.Add(Delete(20, 22))
	out, err := edits.Apply(src)
	require.NoError(t, err)
	assert.Equal(t, ";return {render(){X}}", out)
}

func TestEditsOverlap(t *testing.T) {
	var edits Edits
	edits.Add(ReplaceRange(0, 5, "x"), ReplaceRange(3, 6, "y"))
	_, err := edits.Apply("0123456789")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOverlappingEdits))
}

func TestEditsOutOfRange(t *testing.T) {
	var edits Edits
	edits.Add(ReplaceRange(2, 20, "x"))
	_, err := edits.Apply("short")
	require.Error(t, err)
}

// The final length must always equal the original length plus the sum of
// every individual delta, no matter how many edits were made.
func TestEditsLengthConsistency(t *testing.T) {
	src := strings.Repeat("import a from 'a'\n", 5) + "console.log(a)"
	var edits Edits
	line := len("import a from 'a'")
	for i := 0; i < 5; i++ {
		start := i * (line + 1)
		edits.Add(ReplaceRange(start, start+line, "const a = require('a');"))
	}
	out, err := edits.Apply(src)
	require.NoError(t, err)
	assert.Equal(t, len(src)+edits.Delta(), len(out))
	assert.True(t, strings.HasSuffix(out, "console.log(a)"))
}

func TestOptionsMerge(t *testing.T) {
	base := DefaultOptions()
	out := base.Merge(Options{Target: "esnext", VueVersion: 2})
	assert.Equal(t, "esnext", out.Target)
	assert.Equal(t, 2, out.VueVersion)
	assert.Equal(t, "vue", out.FrameworkModule)
	assert.True(t, out.LegacyElementCreation())

	jsx := base.Merge(Options{JSX: true})
	assert.True(t, jsx.JSX)
	// A later overlay with the zero value leaves JSX on.
	assert.True(t, jsx.Merge(Options{}).JSX)
	assert.False(t, base.LegacyElementCreation())
}
