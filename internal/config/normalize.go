package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeBGG()
	if err := c.normalizeCatalog(); err != nil {
		return err
	}
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	c.normalizeSynthetic()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeBGG() {
	c.BGG.Username = strings.TrimSpace(c.BGG.Username)
	c.BGG.BaseURL = strings.TrimRight(strings.TrimSpace(c.BGG.BaseURL), "/")
	if c.BGG.BaseURL == "" {
		c.BGG.BaseURL = defaultBGGBaseURL
	}
	c.BGG.UserAgent = strings.TrimSpace(c.BGG.UserAgent)
	if c.BGG.UserAgent == "" {
		c.BGG.UserAgent = defaultBGGUserAgent
	}
	if c.BGG.TimeoutSeconds <= 0 {
		c.BGG.TimeoutSeconds = defaultBGGTimeoutSeconds
	}
	if c.BGG.RequestIntervalMS < 0 {
		c.BGG.RequestIntervalMS = 0
	}
	if len(c.BGG.GameIDs) > 0 {
		ids := make([]int64, 0, len(c.BGG.GameIDs))
		seen := make(map[int64]struct{}, len(c.BGG.GameIDs))
		for _, id := range c.BGG.GameIDs {
			if _, exists := seen[id]; exists {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
		c.BGG.GameIDs = ids
	}
}

func (c *Config) normalizeCatalog() error {
	var err error
	if strings.TrimSpace(c.Catalog.SpiritsPath) == "" {
		c.Catalog.SpiritsPath = defaultSpiritsPath
	}
	if c.Catalog.SpiritsPath, err = expandPath(strings.TrimSpace(c.Catalog.SpiritsPath)); err != nil {
		return fmt.Errorf("catalog.spirits_path: %w", err)
	}
	if strings.TrimSpace(c.Catalog.AdversariesPath) == "" {
		c.Catalog.AdversariesPath = defaultAdversariesPath
	}
	if c.Catalog.AdversariesPath, err = expandPath(strings.TrimSpace(c.Catalog.AdversariesPath)); err != nil {
		return fmt.Errorf("catalog.adversaries_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeOutput() error {
	var err error
	if strings.TrimSpace(c.Output.Path) == "" {
		c.Output.Path = defaultOutputPath
	}
	if c.Output.Path, err = expandPath(strings.TrimSpace(c.Output.Path)); err != nil {
		return fmt.Errorf("output.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeSynthetic() {
	c.Synthetic.Cutoff = strings.TrimSpace(c.Synthetic.Cutoff)
	if c.Synthetic.Cutoff == "" {
		c.Synthetic.Cutoff = defaultSyntheticCutoff
	}

	players := make([]string, 0, len(c.Synthetic.Players))
	seen := make(map[string]struct{}, len(c.Synthetic.Players))
	for _, player := range c.Synthetic.Players {
		player = strings.TrimSpace(player)
		if player == "" {
			continue
		}
		if _, exists := seen[player]; exists {
			continue
		}
		seen[player] = struct{}{}
		players = append(players, player)
	}
	if len(players) == 0 {
		players = defaultSyntheticPlayers()
	}
	c.Synthetic.Players = players

	sets := make([]SyntheticSet, 0, len(c.Synthetic.Sets))
	for _, set := range c.Synthetic.Sets {
		set.Source = strings.TrimSpace(set.Source)
		set.Date = strings.TrimSpace(set.Date)
		if set.Source == "" {
			continue
		}
		sets = append(sets, set)
	}
	if len(sets) == 0 {
		sets = defaultSyntheticSets()
	}
	c.Synthetic.Sets = sets
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
