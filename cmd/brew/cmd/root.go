package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brewlang/brew/internal/config"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "brew",
	Short: "Brew language interpreter",
	Long: `brew is a tree-walking interpreter for the Brew scripting language.

Brew is a small dynamically-typed language with:
  - Functions overloaded by arity, and first-class lambdas
  - Reference and by-value parameter passing
  - Prototype-based objects with implicit "this" in methods

Configuration is read from .brew.yaml in the current directory, or from
the file named by --config.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .brew.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initConfig loads .brew.yaml (or --config) into viper, the way
// go-dws's CLI loads its own per-project settings — unused keys are simply
// ignored since Brew's only current setting is the trace default.
//
// Before handing the file to viper, it is decoded directly with
// internal/config to catch a malformed config with a clear error; viper
// then re-reads the same file and layers the BREW_* environment on top.
func initConfig() {
	path := cfgFile
	if path == "" {
		path = ".brew.yaml"
	}
	if _, err := config.Load(path); err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring invalid config %s: %v\n", path, err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".brew")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("BREW")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}
