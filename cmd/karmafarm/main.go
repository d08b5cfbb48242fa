package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KhanMaytok/reddit-karma-farming-bot/config"
	"github.com/KhanMaytok/reddit-karma-farming-bot/env"
	"github.com/KhanMaytok/reddit-karma-farming-bot/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type app struct {
	log   logger.Logger
	cfg   config.Config
	creds env.Credentials
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "karmafarm",
		Short:         "Utilities for running the karma farming bot",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if fn, _ := cmd.Flags().GetString("env-file"); fn != "" {
				lines, err := env.ParseEnvFile(fn)
				if err != nil {
					return err
				}
				if err := env.Apply(lines); err != nil {
					return err
				}
			}
			if a.log == nil {
				a.log = env.NewLogger(cmd).With(map[string]interface{}{"run": uuid.NewString()})
			}
			cfgFile, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.creds = env.LoadCredentials(cmd)
			a.log.Debug("loaded credentials %s", a.creds)
			return nil
		},
	}
	flags := root.PersistentFlags()
	env.AddCredentialFlags(root)
	flags.String("config", "", "path to the YAML configuration file")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (KARMA_LOG_LEVEL)")
	flags.String("env-file", ".env", "environment file read before anything else")

	root.AddCommand(
		newCheckCommand(a),
		newScheduleCommand(a),
		newCountdownCommand(a),
		newWaitCommand(a),
		newWordsCommand(a),
		newRollCommand(a),
		newConfigCommand(a),
	)
	return root
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	a := &app{}
	if err := newRootCommand(a).ExecuteContext(ctx); err != nil {
		if a.log != nil {
			a.log.Error("%s", err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		cancel()
		os.Exit(1)
	}
}
