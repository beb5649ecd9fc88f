package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fnord-lang/fnord"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := map[string]any{
			"version": version,
			"library": fnord.Version,
			"commit":  commit,
			"date":    date,
		}
		format, _ := cmd.Flags().GetString("output")
		output, err := getOutput(info, format, func() string { return version })
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), output)
		return nil
	},
}

func init() {
	versionCmd.Flags().StringP("output", "o", "", "Output format (json, text)")
	versionCmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp))
}
