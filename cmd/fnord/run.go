package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fnord-lang/fnord"
	"github.com/fnord-lang/fnord/errz"
	"github.com/fnord-lang/fnord/op"
	"github.com/fnord-lang/fnord/vm"
)

var runCmd = &cobra.Command{
	Use:          "run [file]",
	Short:        "Run a program",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runCmdFunc,
}

func init() {
	addRunFlags(runCmd)
}

// runFlags are the flags read through viper, so they may also come from the
// environment or the config file.
var runFlags = []string{"dialect", "max-steps", "output", "cells", "trace"}

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("code", "c", "", "Code to run")
	f.Bool("stdin", false, "Read code from stdin")
	f.StringP("dialect", "d", "", "Source dialect: symbol or keyword (default from file extension)")
	f.StringP("input", "i", "", "Characters supplied to the program's input operations")
	f.Int("max-steps", 0, "Stop after this many steps (0 for no limit)")
	f.StringP("output", "o", "", "Output format (json, text)")
	f.Int("cells", 0, "Print this many tape cells from the start of the tape after the run")
	f.Bool("trace", false, "Log every step to stderr")
	f.Bool("timing", false, "Show execution time")
	cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp))
	cmd.RegisterFlagCompletionFunc("dialect", cobra.FixedCompletions([]string{"symbol", "keyword"}, cobra.ShellCompDirectiveNoFileComp))
}

func bindFlags(cmd *cobra.Command, names []string) {
	for _, name := range names {
		if f := cmd.Flags().Lookup(name); f != nil {
			viper.BindPFlag(name, f)
		}
	}
}

// runResult is the JSON form of a finished run.
type runResult struct {
	Session string   `json:"session"`
	Dialect string   `json:"dialect"`
	Output  string   `json:"output"`
	Phase   vm.Phase `json:"phase"`
	Pointer int      `json:"pointer"`
	Steps   int64    `json:"steps"`
	Cells   []uint8  `json:"cells,omitempty"`
}

func runCmdFunc(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, runFlags)

	// A program piped in with no other source is read from stdin
	if len(args) == 0 && !cmd.Flags().Changed("code") && !isTerminal(os.Stdin) {
		cmd.Flags().Set("stdin", "true")
	}
	source, filename, err := getSource(cmd, args, true)
	if err != nil {
		return err
	}
	dialect, err := resolveDialect(viper.GetString("dialect"), filename)
	if err != nil {
		return err
	}

	opts := []fnord.Option{
		fnord.WithDialect(dialect),
		fnord.WithFilename(filename),
		fnord.WithLogger(logger),
		fnord.WithStepLimit(viper.GetInt("max-steps")),
	}
	if viper.GetBool("trace") {
		opts = append(opts, fnord.WithObserver(newTraceObserver(logger.Level(zerolog.DebugLevel))))
	}
	session := fnord.NewSession(opts...)
	if err := session.Load(source, dialect); err != nil {
		return structuralError(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	format := viper.GetString("output")
	var stream io.Writer = os.Stdout
	if strings.EqualFold(format, "json") {
		// The JSON document carries the output instead
		stream = io.Discard
	}

	start := time.Now()
	runErr := execute(ctx, session, programInput(cmd), stream)
	dt := time.Since(start)

	if runErr != nil && !errors.Is(runErr, io.EOF) {
		return runErr
	}

	result := runResult{
		Session: session.ID().String(),
		Dialect: dialect.String(),
		Output:  session.Output(),
		Phase:   session.Phase(),
		Pointer: session.Pointer(),
		Steps:   session.State().Steps,
	}
	if n := viper.GetInt("cells"); n > 0 {
		result.Cells = session.Cells(0, n)
	}
	output, err := getOutput(result, format, func() string {
		var b strings.Builder
		if len(result.Cells) > 0 {
			fmt.Fprintf(&b, "\ncells: %v\npointer: %d", result.Cells, result.Pointer)
		}
		if errors.Is(runErr, io.EOF) {
			fmt.Fprintf(&b, "\n%s", red("program is still waiting for input"))
		}
		return b.String()
	})
	if err != nil {
		return err
	}
	if output != "" {
		fmt.Println(output)
	}
	if timing, _ := cmd.Flags().GetBool("timing"); timing {
		fmt.Fprintf(os.Stderr, "%v\n", dt)
	}
	return nil
}

// execute runs the session, feeding it from input whenever the program
// suspends, and streams new output to w as it is produced. It returns io.EOF
// if input ran out while the program was still waiting.
func execute(ctx context.Context, session *fnord.Session, input inputSource, w io.Writer) error {
	written := 0
	flush := func() {
		out := session.Output()
		if len(out) > written {
			io.WriteString(w, out[written:])
			written = len(out)
		}
	}
	err := session.Run(ctx)
	flush()
	for err == nil && session.Phase() == vm.AwaitingInput {
		ch, readErr := input.ReadRune()
		if readErr != nil {
			return readErr
		}
		err = session.Input(ctx, ch)
		flush()
	}
	return err
}

// programInput picks where the program's input characters come from: the
// --input flag, the keyboard when stdin is a terminal, or stdin.
func programInput(cmd *cobra.Command) inputSource {
	if f := cmd.Flags().Lookup("input"); f != nil && f.Changed {
		return newStringInput(f.Value.String())
	}
	if stdin, _ := cmd.Flags().GetBool("stdin"); stdin {
		// stdin already held the program
		return newStringInput("")
	}
	if isTerminal(os.Stdin) {
		return &keyboardInput{echo: func(ch rune) {
			if ch == '\n' {
				fmt.Fprintln(os.Stderr)
			}
		}}
	}
	return newReaderInput(os.Stdin)
}

// getSource determines the program text. The possibilities are --code,
// --stdin, a path in args[0], or, when allowed, the built-in hello world
// program. The returned filename is empty unless the source is a file.
func getSource(cmd *cobra.Command, args []string, allowDefault bool) (string, string, error) {
	var codeFlagSet bool
	if f := cmd.Flags().Lookup("code"); f != nil && f.Changed {
		codeFlagSet = true
	}
	var stdinFlagSet bool
	if f := cmd.Flags().Lookup("stdin"); f != nil && f.Changed {
		stdinFlagSet = true
	}
	pathSupplied := len(args) > 0
	count := 0
	for _, set := range []bool{codeFlagSet, stdinFlagSet, pathSupplied} {
		if set {
			count++
		}
	}
	switch {
	case count > 1:
		return "", "", errors.New("multiple input sources specified")
	case stdinFlagSet:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", err
		}
		return string(data), "", nil
	case pathSupplied:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", err
		}
		return string(data), args[0], nil
	case codeFlagSet:
		code, _ := cmd.Flags().GetString("code")
		return code, "", nil
	case allowDefault:
		return fnord.HelloWorld, "", nil
	}
	return "", "", errors.New("no input provided")
}

// resolveDialect returns the named dialect, or the dialect implied by the
// filename's extension when name is empty.
func resolveDialect(name, filename string) (op.Dialect, error) {
	if name != "" {
		return op.ParseDialect(name)
	}
	return op.DialectForPath(filename), nil
}

// structuralError renders tokenize failures with source snippets.
func structuralError(err error) error {
	if errz.IsStructural(err) {
		return errors.New(errz.FriendlyErrorMessage(err))
	}
	return err
}
