package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	ghttp "github.com/panyam/goutils/http"

	"github.com/panyam/snippet/compiler"
	"github.com/panyam/snippet/decl"
	"github.com/panyam/snippet/loader"
)

// newCompiler builds a compiler from the resolved configuration.
func newCompiler() *compiler.Compiler {
	c := compiler.New()
	c.Options = cfg.Options
	return c
}

func newLoader(c loader.Compiler) *loader.Loader {
	l := loader.NewLoader(loader.DefaultFS("."), c)
	if cfg.Workers > 0 {
		l.Workers = cfg.Workers
	}
	return l
}

// readStdin returns the snippet piped to the command.
func readStdin(in io.Reader) (string, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("cannot read stdin: %w", err)
	}
	return string(data), nil
}

// isStdin reports whether args ask for input from stdin.
func isStdin(args []string) bool {
	return len(args) == 0 || (len(args) == 1 && args[0] == "-")
}

func apiEndpoint(server, endpoint string) string {
	return strings.TrimSuffix(server, "/") + endpoint
}

// callServer posts a snippet to a running snippet server and returns the
// decoded JSON response.
func callServer(server, endpoint, code string, opts decl.Options) (map[string]any, error) {
	slog.Debug("Calling Endpoint", "server", server, "endpoint", endpoint)
	req, err := ghttp.NewJsonRequest("POST", apiEndpoint(server, endpoint), map[string]any{
		"code":    code,
		"options": opts,
	})
	if err != nil {
		return nil, err
	}
	resp, err := ghttp.Call(req, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	out, ok := resp.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected response %v", endpoint, resp)
	}
	return out, nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func writeComponent(w io.Writer, out *decl.EvaluableComponent) {
	fmt.Fprintln(w, out.Script)
	if out.Style != "" {
		fmt.Fprintf(w, "/* style */\n%s\n", out.Style)
	}
}

func printf(format string, args ...any) {
	fmt.Fprintf(os.Stdout, format, args...)
}
