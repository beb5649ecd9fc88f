package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
)

var red = color.New(color.FgRed).SprintFunc()

func fatal(msg interface{}) {
	var s string
	switch msg := msg.(type) {
	case string:
		s = msg
	case error:
		s = msg.Error()
	default:
		s = fmt.Sprintf("%v", msg)
	}
	fmt.Fprintf(os.Stderr, "%s\n", red(strings.TrimRight(s, "\n")))
	os.Exit(1)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var outputFormatsCompletion = []string{"json", "text"}

// getOutput renders value in format. Text rendering is delegated to text.
func getOutput(value any, format string, text func() string) (string, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return text(), nil
	case "json":
		output, err := getOutputJSON(value)
		if err != nil {
			return "", err
		}
		return string(output), nil
	default:
		return "", fmt.Errorf("unknown output format: %s", format)
	}
}

func getOutputJSON(value any) ([]byte, error) {
	if viper.GetBool("no-color") || color.NoColor {
		return json.MarshalIndent(value, "", "  ")
	}
	return prettyjson.Marshal(value)
}

// Reads global flags from Viper and adjusts the environment accordingly.
func processGlobalFlags() {
	if viper.GetBool("no-color") {
		color.NoColor = true
	}
	configureLogger(viper.GetString("log-level"))
}
