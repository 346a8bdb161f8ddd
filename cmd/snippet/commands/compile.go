package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	gfn "github.com/panyam/goutils/fn"
	"github.com/spf13/cobra"

	"github.com/panyam/snippet/decl"
	"github.com/panyam/snippet/loader"
)

var (
	compileOutDir string
	compileJSON   bool
	serverURL     string
)

var compileCmd = &cobra.Command{
	Use:   "compile [files or directories...]",
	Short: "Compile snippets into evaluable function bodies",
	Long: `Compile one or more snippets.  With no arguments (or "-") the snippet is read
from stdin and the function body is written to stdout.

Examples:
  snippet compile Counter.vue
  cat hello.js | snippet compile --vue 2
  snippet compile docs/snippets -o build/snippets
  snippet compile --server http://localhost:8080 Counter.vue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serverURL != "" {
			return compileRemote(cmd, args)
		}
		c := newCompiler()
		if isStdin(args) {
			src, err := readStdin(cmd.InOrStdin())
			if err != nil {
				return err
			}
			out, err := c.Compile(src, decl.Options{})
			if err != nil {
				return err
			}
			return emit(cmd, "-", out)
		}

		l := newLoader(c)
		paths, err := l.Expand(args)
		if err != nil {
			return err
		}
		results, errs, err := l.CompileFiles(cmd.Context(), paths, decl.Options{})
		if err != nil {
			return err
		}
		if compileOutDir != "" {
			if err := l.WriteOutputs(compileOutDir, results); err != nil {
				return err
			}
			var written []*loader.Compiled
			for _, r := range results {
				if r.Err == nil {
					written = append(written, r)
				}
			}
			lines := gfn.Map(written, func(r *loader.Compiled) string {
				return fmt.Sprintf("%s %s -> %s", successColor("✓"), r.Path, loader.OutputPath(compileOutDir, r.Path))
			})
			if len(lines) > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), strings.Join(lines, "\n"))
			}
		} else {
			for _, r := range results {
				if r.Err == nil {
					if err := emit(cmd, r.Path, r.Output); err != nil {
						return err
					}
				}
			}
		}
		if errs.HasErrors() {
			errs.PrintErrors(cmd.ErrOrStderr())
			return fmt.Errorf("%d of %d snippets failed", len(errs.Errors), len(paths))
		}
		return nil
	},
}

// emit writes one compiled snippet to stdout.
func emit(cmd *cobra.Command, path string, out *decl.EvaluableComponent) error {
	w := cmd.OutOrStdout()
	if compileJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Path string `json:"path"`
			*decl.EvaluableComponent
		}{path, out})
	}
	if path != "-" {
		fmt.Fprintf(w, "// %s\n", path)
	}
	writeComponent(w, out)
	return nil
}

func compileRemote(cmd *cobra.Command, args []string) error {
	sources := map[string]string{}
	var order []string
	if isStdin(args) {
		src, err := readStdin(cmd.InOrStdin())
		if err != nil {
			return err
		}
		sources["-"], order = src, []string{"-"}
	} else {
		for _, p := range args {
			data, err := os.ReadFile(p)
			if err != nil {
				return err
			}
			sources[p] = string(data)
			order = append(order, p)
		}
	}

	for _, p := range order {
		opts := flagOptions.Merge(loader.OptionsForPath(p))
		resp, err := callServer(serverURL, "/api/compile", sources[p], opts)
		if err != nil {
			return err
		}
		if msg := stringField(resp, "error"); msg != "" {
			return fmt.Errorf("%s: %s", p, msg)
		}
		out := &decl.EvaluableComponent{
			Script: stringField(resp, "script"),
			Style:  stringField(resp, "style"),
		}
		if err := emit(cmd, p, out); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	compileCmd.Flags().StringVarP(&compileOutDir, "out", "o", "", "Write each compiled snippet under this directory")
	compileCmd.Flags().BoolVar(&compileJSON, "json", false, "Print results as JSON")
	compileCmd.Flags().StringVar(&serverURL, "server", "", "Compile on a running snippet server instead of locally")
	AddCommand(compileCmd)
}
