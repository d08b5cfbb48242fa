package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/KhanMaytok/reddit-karma-farming-bot/cache"
	"github.com/KhanMaytok/reddit-karma-farming-bot/network"
	"github.com/KhanMaytok/reddit-karma-farming-bot/schedule"
	"github.com/KhanMaytok/reddit-karma-farming-bot/sys"
	"github.com/KhanMaytok/reddit-karma-farming-bot/tui"
	"github.com/KhanMaytok/reddit-karma-farming-bot/words"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errNoInternet = errors.New("no internet connection")

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the internet connection and print the public ip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checker := network.NewChecker(network.WithLogger(a.log))
			if !checker.CheckInternet(cmd.Context()) {
				return errNoInternet
			}
			ip, err := checker.PublicIP(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ip)
			if m, err := sys.HostMemory(cmd.Context()); err != nil {
				a.log.Warn("%s", err)
			} else {
				avail, _ := sys.BytesTo(int64(m.Available), "g", sys.DefaultBlockSize)
				total, _ := sys.BytesTo(int64(m.Total), "g", sys.DefaultBlockSize)
				a.log.Info("memory available: %.2f GB of %.2f GB", avail, total)
			}
			return nil
		},
	}
}

func newScheduleCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Print whether the bot should be sleeping now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.UseSleepSchedule {
				fmt.Fprintln(cmd.OutOrStdout(), "awake (sleep schedule disabled)")
				return nil
			}
			if schedule.ShouldSleep(a.log, a.cfg.AwakeTime, a.cfg.SleepTime, time.Now()) {
				fmt.Fprintln(cmd.OutOrStdout(), "asleep")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "awake")
			}
			return nil
		},
	}
}

func countdown(cmd *cobra.Command, a *app, seconds int) error {
	tui.ClearScreen()
	a.log.Info("sleeping for %d seconds", seconds)
	if err := tui.Countdown(cmd.Context(), cmd.OutOrStdout(), seconds, nil); err != nil {
		return err
	}
	a.log.Info("waking up")
	return nil
}

func newCountdownCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "countdown SECONDS",
		Short: "Count down the given number of seconds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.Atoi(args[0])
			if err != nil || seconds < 0 {
				return errors.Newf("invalid number of seconds %q", args[0])
			}
			return countdown(cmd, a, seconds)
		},
	}
}

func newWaitCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "wait MESSAGE",
		Short: "Back off for as long as a rate limit message asks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return countdown(cmd, a, sys.SecondsToWait(args[0]))
		},
	}
}

func newWordsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "words TEXT...",
		Short: "Report which texts contain a disallowed word",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := words.NewLoader(a.cfg.CacheTTL)
			if err != nil {
				return err
			}
			list, err := loader.Load(a.cfg.DisallowedWordsFile)
			if err != nil {
				return err
			}
			a.log.Debug("loaded %d disallowed words", list.Len())
			for _, text := range args {
				verdict := "ok"
				if list.Contains(text) {
					verdict = "disallowed"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", verdict, text)
			}
			return nil
		},
	}
}

func newRollCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "roll ACTION",
		Short: "Roll the configured probability of an action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.cfg.Probability(args[0])
			ok := sys.Prob(p)
			a.log.Debug("rolled %s with probability %v: %v", args[0], p, ok)
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

func newConfigCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := yaml.Marshal(a.cfg)
			if err != nil {
				return errors.Wrap(err, "encode config")
			}
			w := cmd.OutOrStdout()
			fmt.Fprint(w, string(out))
			fmt.Fprintf(w, "cache_ttl: %s\n", cache.FormatTTL(a.cfg.CacheTTL))
			lo, err := sys.BytesTo(a.cfg.BrainMinSize, "m", sys.DefaultBlockSize)
			if err != nil {
				return err
			}
			hi, err := sys.BytesTo(a.cfg.BrainMaxSize, "m", sys.DefaultBlockSize)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "# brain size %.2f MB to %.2f MB\n", lo, hi)
			return nil
		},
	}
}
