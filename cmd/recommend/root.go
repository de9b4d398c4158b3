package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	app "github.com/okian/gigmatch/internal/app"
	"github.com/okian/gigmatch/internal/config"
	"github.com/okian/gigmatch/pkg/logger"
)

const name = "recommend"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configFile string
	jobs       string
	gigs       string
	debug      bool
	json       bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           name,
		Short:         "recommend ranks job postings and freelance gigs for a profile",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "YAML config file (overrides "+config.EnvConfigFile+")")
	root.PersistentFlags().StringVar(&flags.jobs, "jobs", "", "jobs dataset (csv, yaml or json); default is the embedded sample")
	root.PersistentFlags().StringVar(&flags.gigs, "gigs", "", "gigs dataset (csv, yaml or json); default is the embedded sample")
	root.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "verbose/debug output")
	root.PersistentFlags().BoolVarP(&flags.json, "json", "j", false, "print results as JSON")

	root.AddCommand(
		newRankCmd(flags, app.CatalogJobs),
		newRankCmd(flags, app.CatalogGigs),
		newTrendsCmd(flags),
		newVersionCmd(),
	)
	return root
}

// startService loads configuration and starts a service for one command.
// The returned stop func drains and closes it.
func startService(ctx context.Context, flags *globalFlags) (*app.Service, *config.Config, func(), error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, nil, nil, fmt.Errorf("read .env: %w", err)
	}
	if flags.configFile != "" {
		if err := os.Setenv(config.EnvConfigFile, flags.configFile); err != nil {
			return nil, nil, nil, err
		}
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := logger.Init(logger.WithFormat("console"), logger.WithOutputPaths("stderr")); err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}
	level := "warn"
	if flags.debug {
		level = "debug"
	}
	_ = logger.SetLevelString(level)

	jobs, gigs := cfg.JobsDataset, cfg.GigsDataset
	if flags.jobs != "" {
		jobs = flags.jobs
	}
	if flags.gigs != "" {
		gigs = flags.gigs
	}

	svc := app.New(
		app.WithLogger(logger.Named(name)),
		app.WithDatasetPaths(jobs, gigs),
		app.WithStopWords(cfg.StopWords),
		app.WithTrendingSkills(cfg.TrendingSkills),
		app.WithJobWeights(cfg.JobWeights),
		app.WithGigWeights(cfg.GigWeights),
		app.WithFeedbackPolicy(cfg.Feedback.Adaptive, cfg.Feedback.FeedbackPolicy),
		app.WithTopN(cfg.DefaultTopN, cfg.MaxTopN),
		app.WithWorkerCount(1),
		app.WithDatabaseDSN(cfg.DatabaseDSN),
		app.WithDatabasePool(cfg.DatabasePool.MaxOpen, cfg.DatabasePool.MaxIdle, cfg.DatabasePool.MaxLifetime),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, nil, nil, err
	}
	stop := func() {
		_ = svc.Stop(context.Background())
		_ = logger.Sync()
	}
	return svc, cfg, stop, nil
}
