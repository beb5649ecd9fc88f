package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/fnord-lang/fnord/convert"
	"github.com/fnord-lang/fnord/op"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>...",
	Short: "Convert Brainfuck files to BrainFNORD",
	Long: `Convert Brainfuck files to BrainFNORD.

Each file is written next to its input with the extension changed to .bf2.
With --reverse, .bf2 files are converted back and written with a .bf
extension.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		reverse, _ := cmd.Flags().GetBool("reverse")
		var (
			written []string
			err     error
		)
		if reverse {
			written, err = reverseFiles(args)
		} else {
			written, err = convert.Files(args)
		}
		for _, path := range written {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return err
	},
}

func init() {
	convertCmd.Flags().BoolP("reverse", "r", false, "Convert BrainFNORD files back to Brainfuck")
}

// reverseFiles writes the symbol dialect form of each keyword file.
func reverseFiles(paths []string) ([]string, error) {
	var (
		written []string
		result  *multierror.Error
	)
	for _, path := range paths {
		out, err := reverseFile(path)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("convert %s: %w", path, err))
			continue
		}
		written = append(written, out)
	}
	return written, result.ErrorOrNil()
}

func reverseFile(path string) (string, error) {
	if op.DialectForPath(path) != op.Keyword {
		return "", fmt.Errorf("expected a %s file", op.KeywordExt)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	out := strings.TrimSuffix(path, path[len(path)-len(op.KeywordExt):]) + ".bf"
	if err := os.WriteFile(out, []byte(convert.ToSymbols(string(src))), 0o644); err != nil {
		return "", err
	}
	return out, nil
}
