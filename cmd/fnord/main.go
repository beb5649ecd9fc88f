package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "fnord [file]",
	Short: "Run Brainfuck and BrainFNORD programs",
	Long: `Run Brainfuck and BrainFNORD programs.

With no file, --code or --stdin, the built-in hello world program runs.
Files ending in .bf2 are read in the keyword dialect.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runCmdFunc,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		processGlobalFlags()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fnord.yaml)")
	pf.Bool("no-color", false, "Disable colored output")
	pf.String("log-level", "warn", "Log level (debug, info, warn, error)")
	viper.BindPFlag("no-color", pf.Lookup("no-color"))
	viper.BindPFlag("log-level", pf.Lookup("log-level"))

	addRunFlags(rootCmd)

	rootCmd.AddCommand(runCmd, disCmd, convertCmd, docsCmd, versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fatal(err)
		}
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".fnord")
	}

	viper.SetEnvPrefix("fnord")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// NO_COLOR is honored regardless of prefix
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		viper.Set("no-color", true)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fatal(fmt.Errorf("reading config: %w", err))
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
}
