// Command g8sim runs a G8RTOS kernel against a thread/periodic-handler
// manifest on a hosted board, purely as a demo harness: nothing here is
// part of the portable kernel, the way nothing in the original's main.c
// demo app is part of G8RTOS itself.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "g8sim",
		Short: "run a G8RTOS kernel against a thread manifest on a hosted board",
	}

	cmd.PersistentFlags().String("config", "", "manifest file (YAML/JSON/TOML)")
	cmd.PersistentFlags().String("log-level", "info", "zerolog level: trace, debug, info, warn, error")
	_ = v.BindPFlags(cmd.PersistentFlags())

	cmd.AddCommand(newRunCmd(v))
	return cmd
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}
