// Package loader reads snippet files from local disk, memory or HTTP and
// feeds them to the compiler, one at a time or in batches.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/panyam/snippet/decl"
)

// Compiler is the part of the snippet compiler the loader needs.
type Compiler interface {
	Compile(src string, over decl.Options) (*decl.EvaluableComponent, error)
}

// Snippet is one loaded source file.
type Snippet struct {
	Path    string
	Source  string
	Options decl.Options // implied by the file name
}

// Compiled is the outcome of compiling one snippet.  Exactly one of Output
// and Err is set.
type Compiled struct {
	*Snippet
	Output *decl.EvaluableComponent
	Err    error
}

// Extensions recognised as snippets when listing a directory.
var Extensions = []string{".vue", ".js", ".jsx", ".mjs", ".html"}

// IsSnippetPath reports whether p has a snippet extension.
func IsSnippetPath(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// OptionsForPath returns the options a file name implies: .jsx files are
// compiled in JSX mode.
func OptionsForPath(p string) decl.Options {
	if strings.EqualFold(path.Ext(p), ".jsx") {
		return decl.Options{JSX: true}
	}
	return decl.Options{}
}

// Loader reads and compiles snippets.
type Loader struct {
	fs       FileSystem
	compiler Compiler

	// Number of snippets compiled in parallel by CompileFiles, at least 1
	Workers int

	// Stop scheduling work once this many snippets failed (0 => no limit)
	MaxErrors int
}

func NewLoader(fs FileSystem, compiler Compiler) *Loader {
	return &Loader{fs: fs, compiler: compiler, Workers: 4}
}

// Load reads a single snippet.
func (l *Loader) Load(p string) (*Snippet, error) {
	data, err := l.fs.ReadFile(p)
	if err != nil {
		return nil, &SnippetError{Path: p, Err: err}
	}
	return &Snippet{Path: p, Source: string(data), Options: OptionsForPath(p)}, nil
}

// Expand turns a mix of files and directories into the list of snippet
// files.  Directories are listed one level deep.
func (l *Loader) Expand(paths []string) (out []string, err error) {
	for _, p := range paths {
		if IsSnippetPath(p) || strings.Contains(p, "://") {
			out = append(out, p)
			continue
		}
		files, err := l.fs.ListFiles(p)
		if err != nil {
			return nil, &SnippetError{Path: p, Err: err}
		}
		for _, f := range files {
			if IsSnippetPath(f) {
				out = append(out, f)
			}
		}
	}
	return
}

// Compile loads and compiles one snippet.  over is applied on top of the
// options implied by the path.
func (l *Loader) Compile(p string, over decl.Options) *Compiled {
	snippet, err := l.Load(p)
	if err != nil {
		return &Compiled{Snippet: &Snippet{Path: p}, Err: err}
	}
	out, err := l.compiler.Compile(snippet.Source, snippet.Options.Merge(over))
	if err != nil {
		return &Compiled{Snippet: snippet, Err: &SnippetError{Path: p, Err: err}}
	}
	return &Compiled{Snippet: snippet, Output: out}
}

// CompileFiles compiles every snippet under paths with a small worker pool.
// Results come back in input order; failures are also gathered in the
// returned collector.  Cancelling ctx or reaching MaxErrors stops new work,
// skipped snippets carry the reason as their error.
func (l *Loader) CompileFiles(ctx context.Context, paths []string, over decl.Options) ([]*Compiled, *ErrorCollector, error) {
	files, err := l.Expand(paths)
	if err != nil {
		return nil, nil, err
	}
	workers := l.Workers
	if workers < 1 {
		workers = 1
	}

	errs := &ErrorCollector{MaxErrors: l.MaxErrors}
	results := make([]*Compiled, len(files))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			results[i] = &Compiled{Snippet: &Snippet{Path: f}, Err: err}
			continue
		}
		select {
		case <-ctx.Done():
			results[i] = &Compiled{Snippet: &Snippet{Path: f}, Err: ctx.Err()}
			continue
		case sem <- struct{}{}:
		}
		// Checked with a slot held so every finished compile has reported
		mu.Lock()
		full := errs.Full()
		mu.Unlock()
		if full {
			<-sem
			results[i] = &Compiled{Snippet: &Snippet{Path: f}, Err: fmt.Errorf("skipped after %d errors", errs.MaxErrors)}
			continue
		}
		wg.Add(1)
		go func(i int, f string) {
			defer wg.Done()
			defer func() { <-sem }()
			res := l.Compile(f, over)
			results[i] = res
			if res.Err != nil {
				mu.Lock()
				errs.AddErrors(res.Err)
				mu.Unlock()
			}
		}(i, f)
	}
	wg.Wait()
	slog.Debug("Compiled snippets", "count", len(files), "errors", len(errs.Errors))
	return results, errs, nil
}

// OutputPath maps a snippet path to the path its compiled script is written
// to under dir.
func OutputPath(dir, snippetPath string) string {
	base := path.Base(strings.ReplaceAll(snippetPath, "\\", "/"))
	return path.Join(dir, strings.TrimSuffix(base, path.Ext(base))+".js")
}

// WriteOutputs writes each successful result's script (and style, when
// present) to dir on the loader's file system.
func (l *Loader) WriteOutputs(dir string, results []*Compiled) error {
	for _, r := range results {
		if r.Err != nil || r.Output == nil {
			continue
		}
		out := OutputPath(dir, r.Path)
		if err := l.fs.WriteFile(out, []byte(r.Output.Script)); err != nil {
			return &SnippetError{Path: out, Err: err}
		}
		if r.Output.Style != "" {
			css := strings.TrimSuffix(out, ".js") + ".css"
			if err := l.fs.WriteFile(css, []byte(r.Output.Style)); err != nil {
				return &SnippetError{Path: css, Err: err}
			}
		}
	}
	return nil
}
