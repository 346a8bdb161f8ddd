package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/panyam/snippet/decl"
)

var classifyParts bool

var classifyCmd = &cobra.Command{
	Use:   "classify [file]",
	Short: "Show which form a snippet was detected as",
	Long: `Detect the form of a snippet (sfc, constructor, jsx, export or bare) without
compiling it.  With --parts the extracted script, template and style are printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var src string
		var opts decl.Options
		if isStdin(args) {
			s, err := readStdin(cmd.InOrStdin())
			if err != nil {
				return err
			}
			src = s
		} else {
			l := newLoader(nil)
			snip, err := l.Load(args[0])
			if err != nil {
				return err
			}
			src, opts = snip.Source, snip.Options
		}

		form, err := newCompiler().Classify(src, opts)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s %s\n", headerColor("form:"), form.Kind())
		if !classifyParts {
			return nil
		}
		parts := form.Parts()
		fmt.Fprintf(w, "%s\n%s\n", headerColor("script:"), gutter(parts.Script))
		if parts.HasTemplate() {
			fmt.Fprintf(w, "%s\n%s\n", headerColor("template:"), gutter(parts.TemplateText()))
		}
		if parts.HasStyle() {
			fmt.Fprintf(w, "%s\n%s\n", headerColor("style:"), gutter(parts.StyleText()))
		}
		return nil
	},
}

// gutter indents every line of s so parts stand out from the headers.
func gutter(s string) string {
	return "  | " + strings.ReplaceAll(s, "\n", "\n  | ")
}

func init() {
	classifyCmd.Flags().BoolVarP(&classifyParts, "parts", "p", false, "Print the extracted parts")
	AddCommand(classifyCmd)
}

