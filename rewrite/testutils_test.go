package rewrite

import (
	"strings"
	"testing"

	ts "github.com/tree-sitter/go-tree-sitter"
	"github.com/stretchr/testify/require"

	"github.com/panyam/snippet/parser"
)

func printWithLineNumbers(t *testing.T, input string) {
	t.Log("============================")
	for i, line := range strings.Split(input, "\n") {
		if len(line) > 0 {
			t.Logf("%03d: %s", i+1, line)
		}
	}
	t.Log("============================")
}

// firstStatement parses input and returns its first top level statement.
func firstStatement(t *testing.T, input string) (*ts.Node, []byte) {
	t.Helper()
	tree, err := parser.Parse(input)
	require.NoError(t, err, "Input:\n%s", input)
	t.Cleanup(tree.Close)
	stmts := parser.NamedChildren(tree.Root)
	require.NotEmpty(t, stmts, "Input:\n%s", input)
	return stmts[0], tree.Source
}

func rewriteString(t *testing.T, input string, mode Mode) *Result {
	t.Helper()
	printWithLineNumbers(t, input)
	res, err := Script(input, mode)
	require.NoError(t, err, "Input:\n%s", input)
	require.NotNil(t, res)
	printWithLineNumbers(t, res.Script)
	return res
}
