package detect

import "regexp"

var (
	leadingMarkup = regexp.MustCompile(`^\s*<[A-Za-z]`)
	lineMarkup    = regexp.MustCompile(`\n[ \t]*<[A-Za-z]`)
)

// FindMarkupBoundary returns the offset where trailing markup starts in a
// bare script+markup snippet.  A tag opener at the very start (after
// whitespace) wins and cuts at 0.  Otherwise the first line that starts with
// a tag opener is the cut, placed right after the newline so indentation
// stays with the markup.
//
// This is a first-match heuristic.  A line inside a template literal or a
// comment that happens to start with a tag is taken as the cut point:
//
//	const t = `
//	<b>not markup</b>`
func FindMarkupBoundary(src string) (int, bool) {
	if leadingMarkup.MatchString(src) {
		return 0, true
	}
	if loc := lineMarkup.FindStringIndex(src); loc != nil {
		return loc[0] + 1, true
	}
	return -1, false
}
