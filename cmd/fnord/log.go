package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

var logger = zerolog.Nop()

func configureLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    color.NoColor || !isTerminal(os.Stderr),
		TimeFormat: "15:04:05.000",
	}
	logger = zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}
