package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fnord-lang/fnord"
	"github.com/fnord-lang/fnord/dis"
)

var disCmd = &cobra.Command{
	Use:          "dis [file]",
	Short:        "Disassemble a program",
	Long:         "List a program's operations with their jump targets, loop depths and source positions.",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		bindFlags(cmd, []string{"dialect", "output"})

		source, filename, err := getSource(cmd, args, false)
		if err != nil {
			return err
		}
		dialect, err := resolveDialect(viper.GetString("dialect"), filename)
		if err != nil {
			return err
		}
		program, err := fnord.Tokenize(source, dialect, fnord.WithFilename(filename))
		if err != nil {
			return structuralError(err)
		}
		instructions, err := dis.Disassemble(program)
		if err != nil {
			return err
		}

		if viper.GetString("output") == "json" {
			output, err := getOutputJSON(map[string]any{
				"dialect":      dialect.String(),
				"stats":        program.Stats(),
				"instructions": instructions,
			})
			if err != nil {
				return err
			}
			fmt.Println(string(output))
			return nil
		}
		dis.Print(instructions, os.Stdout)
		if stats, _ := cmd.Flags().GetBool("stats"); stats {
			dis.PrintStats(program.Stats(), os.Stdout)
		}
		return nil
	},
}

func init() {
	f := disCmd.Flags()
	f.StringP("code", "c", "", "Code to disassemble")
	f.Bool("stdin", false, "Read code from stdin")
	f.StringP("dialect", "d", "", "Source dialect: symbol or keyword (default from file extension)")
	f.StringP("output", "o", "", "Output format (json, text)")
	f.Bool("stats", false, "Print program statistics after the listing")
	disCmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp))
}
