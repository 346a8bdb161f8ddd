package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/panyam/snippet/config"
	"github.com/panyam/snippet/decl"
)

var (
	cfgFile  string
	envFiles []string
	verbose  bool

	// Option overrides, applied on top of the config file and environment
	flagOptions decl.Options

	// Resolved by the root command before any subcommand runs
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "snippet",
	Short: "Compile component snippets into evaluable function bodies",
	Long: `snippet turns documentation and playground snippets (single file components,
new Vue({...}) scripts, JSX default exports or plain script followed by markup)
into a function body that evaluates to a live component definition.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnvFiles(envFiles...); err != nil {
			return err
		}
		loaded, err := config.Load(cfgFile, os.Environ())
		if err != nil {
			return err
		}
		cfg = loaded
		cfg.Options = cfg.Options.Merge(flagOptions)
		if verbose {
			cfg.LogLevel = "debug"
		}
		setupLogging(cfg.Level())
		slog.Debug("Resolved configuration", "options", cfg.Options, "server", cfg.Server.Addr())
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorColor("error:"), err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "YAML config file")
	flags.StringSliceVar(&envFiles, "env-file", []string{".env"}, "Env files to load (missing files are skipped)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	flags.StringVar(&flagOptions.Target, "target", "", "Script target (es2015 ... es2022, esnext)")
	flags.BoolVar(&flagOptions.JSX, "jsx", false, "Treat snippets as JSX default exports")
	flags.StringVar(&flagOptions.JSXFactory, "jsx-factory", "", "JSX element factory")
	flags.StringVar(&flagOptions.JSXFragment, "jsx-fragment", "", "JSX fragment")
	flags.IntVar(&flagOptions.VueVersion, "vue", 0, "Framework major version (2 or 3)")
	flags.StringVar(&flagOptions.FrameworkModule, "framework", "", "Module runtime helpers are imported from")
	flags.StringVar(&flagOptions.Constructor, "constructor", "", "Component constructor name")
}

// AddCommand allows adding subcommands from other files.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}
