package config

import (
	"errors"
	"fmt"
	"time"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBGG(); err != nil {
		return err
	}
	if err := c.validateSynthetic(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateBGG() error {
	if c.BGG.Username == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/spiritlog/config.toml"
		}
		return fmt.Errorf("bgg.username is required. Edit %s (create with 'spiritlog config init')", defaultPath)
	}
	for _, id := range c.BGG.GameIDs {
		if id <= 0 {
			return fmt.Errorf("bgg.game_ids must contain positive ids, got %d", id)
		}
	}
	if c.BGG.TimeoutSeconds <= 0 {
		return errors.New("bgg.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateSynthetic() error {
	if err := validateDate("synthetic.cutoff", c.Synthetic.Cutoff); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(c.Synthetic.Sets))
	for i, set := range c.Synthetic.Sets {
		if _, exists := seen[set.Source]; exists {
			return fmt.Errorf("synthetic.sets[%d]: duplicate source %q", i, set.Source)
		}
		seen[set.Source] = struct{}{}
		if err := validateDate(fmt.Sprintf("synthetic.sets[%d].date", i), set.Date); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDate reports whether value is a YYYY-MM-DD date. Lexical and
// chronological order only coincide for this layout.
func ValidateDate(value string) error {
	if _, err := time.Parse(DateLayout, value); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD date, got %q", value)
	}
	return nil
}

func validateDate(key, value string) error {
	if err := ValidateDate(value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}
