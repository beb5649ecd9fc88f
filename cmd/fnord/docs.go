package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fnord-lang/fnord"
)

var docsCmd = &cobra.Command{
	Use:     "docs [topic]",
	Aliases: []string{"doc"},
	Short:   "Show language documentation",
	Long: `Show language documentation as JSON.

A topic is an operation name, symbol or keyword, e.g. "print", "+" or "eris".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []fnord.DocsOption
		if category, _ := cmd.Flags().GetString("category"); category != "" {
			opts = append(opts, fnord.DocsCategory(category))
		}
		if all, _ := cmd.Flags().GetBool("all"); all {
			opts = append(opts, fnord.DocsAll())
		}
		if len(args) > 0 {
			opts = append(opts, fnord.DocsTopic(args[0]))
		}
		output, err := getOutputJSON(fnord.Docs(opts...).Data())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return nil
	},
}

func init() {
	f := docsCmd.Flags()
	f.String("category", "", "Documentation category: operations, dialects, errors")
	f.Bool("all", false, "Show all documentation")
}
