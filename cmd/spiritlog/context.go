package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"spiritlog/internal/bgg"
	"spiritlog/internal/config"
	"spiritlog/internal/failure"
	"spiritlog/internal/logging"
	"spiritlog/internal/synthetic"
	"spiritlog/internal/tracker"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = failure.Wrap(failure.ErrConfiguration, "cli", "load config", "", err)
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = failure.Wrap(failure.ErrConfiguration, "cli", "ensure directories", "", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger builds a logger writing to the command's stderr.
func (c *commandContext) logger(w io.Writer) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	effective := *cfg
	if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
		effective.Logging.Level = strings.TrimSpace(*c.logLevelFlag)
	}
	logger, err := logging.NewFromConfig(&effective, w)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

func (c *commandContext) newClient(cmd *cobra.Command) (*bgg.Client, *slog.Logger, *config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := c.logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, nil, err
	}
	client, err := bgg.New(cfg.BGG.BaseURL, cfg.BGG.Username,
		bgg.WithTimeout(cfg.RequestTimeout()),
		bgg.WithUserAgent(cfg.BGG.UserAgent),
		bgg.WithRequestInterval(cfg.RequestInterval()),
		bgg.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, nil, failure.Wrap(failure.ErrConfiguration, "cli", "create bgg client", "", err)
	}
	return client, logger, cfg, nil
}

func (c *commandContext) newTracker(cmd *cobra.Command) (*tracker.Tracker, *config.Config, error) {
	client, logger, cfg, err := c.newClient(cmd)
	if err != nil {
		return nil, nil, err
	}
	return tracker.New(client, logger), cfg, nil
}

func trackerOptions(cfg *config.Config) tracker.Options {
	return tracker.Options{
		Fetch: bgg.FetchOptions{
			GameIDs: append([]int64(nil), cfg.BGG.GameIDs...),
		},
		SpiritsPath:     cfg.Catalog.SpiritsPath,
		AdversariesPath: cfg.Catalog.AdversariesPath,
		OutputPath:      cfg.Output.Path,
		Synthetic:       synthetic.OptionsFromConfig(cfg.Synthetic),
	}
}

// fetchFlags holds the bounds shared by sync, fetch and coverage.
type fetchFlags struct {
	lastN int
	since string
}

func (f *fetchFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.lastN, "last-n", 0, "Stop scanning a page after this many plays (0 = no limit)")
	cmd.Flags().StringVar(&f.since, "since", "", "Only fetch plays on or after this date (YYYY-MM-DD)")
}

func (f *fetchFlags) apply(opts *bgg.FetchOptions) error {
	if f.lastN < 0 {
		return fmt.Errorf("--last-n must not be negative, got %d", f.lastN)
	}
	opts.LastN = f.lastN
	since := strings.TrimSpace(f.since)
	if since != "" {
		if err := config.ValidateDate(since); err != nil {
			return fmt.Errorf("--since: %w", err)
		}
	}
	opts.Since = since
	return nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
