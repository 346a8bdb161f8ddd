package loader

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// SnippetError ties a failure to the snippet it came from.
type SnippetError struct {
	Path string
	Err  error
}

func (e *SnippetError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *SnippetError) Unwrap() error {
	return e.Err
}

type ErrorCollector struct {
	// Errors seen so far
	Errors []error

	// Max errors before we stop accepting more work
	// 0 => no limit
	MaxErrors int
}

func (f *ErrorCollector) HasErrors() bool {
	return len(f.Errors) > 0
}

// Full reports whether MaxErrors has been reached.
func (f *ErrorCollector) Full() bool {
	return f.MaxErrors > 0 && len(f.Errors) >= f.MaxErrors
}

func (f *ErrorCollector) PrintErrors(w io.Writer) {
	red := color.New(color.FgRed).SprintFunc()
	for _, err := range f.Errors {
		fmt.Fprintln(w, red("error:"), err)
	}
}

func (f *ErrorCollector) AddErrors(errs ...error) {
	for _, err := range errs {
		if err != nil {
			f.Errors = append(f.Errors, err)
		}
	}
}

func (f *ErrorCollector) Errorf(path string, format string, args ...any) {
	f.AddErrors(&SnippetError{Path: path, Err: fmt.Errorf(format, args...)})
}
