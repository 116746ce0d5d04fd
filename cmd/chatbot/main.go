package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/esil-events/chatbot/pkg/config"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "chatbot",
		Short:   "ESIL Events — assistant de location de matériel événementiel",
		Version: version,
	}

	root.AddCommand(
		newServeCmd(),
		newCacheCmd(),
		newStatsCmd(),
		newSMTPTestCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the process logger from config. Unknown levels fall
// back to info.
func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
