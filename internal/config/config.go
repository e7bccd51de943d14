package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// BGG contains configuration for the BoardGameGeek XML API.
type BGG struct {
	Username          string  `toml:"username"`
	BaseURL           string  `toml:"base_url"`
	GameIDs           []int64 `toml:"game_ids"`
	UserAgent         string  `toml:"user_agent"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestIntervalMS int     `toml:"request_interval_ms"`
}

// Catalog contains the locations of the spirit and adversary reference lists.
type Catalog struct {
	SpiritsPath     string `toml:"spirits_path"`
	AdversariesPath string `toml:"adversaries_path"`
}

// Output contains configuration for the generated play document.
type Output struct {
	Path string `toml:"path"`
}

// SyntheticSet pairs a spirit source tag with the sentinel date used for its
// unplayed-spirit record.
type SyntheticSet struct {
	Source string `toml:"source"`
	Date   string `toml:"date"`
}

// Synthetic contains configuration for unplayed-spirit records.
type Synthetic struct {
	// Cutoff is the last play date (inclusive) counted as "played".
	Cutoff  string         `toml:"cutoff"`
	Players []string       `toml:"players"`
	Sets    []SyntheticSet `toml:"sets"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for spiritlog.
//
// Configuration sections by subsystem:
//   - BGG: play retrieval from the BoardGameGeek XML API
//   - Catalog: spirit and adversary reference documents
//   - Output: destination of the augmented play list
//   - Synthetic: cutoff, players and spirit sets for unplayed records
//   - Logging: log format and level
type Config struct {
	BGG       BGG       `toml:"bgg"`
	Catalog   Catalog   `toml:"catalog"`
	Output    Output    `toml:"output"`
	Synthetic Synthetic `toml:"synthetic"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/spiritlog/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("spiritlog.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the parent directory of the output document.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Output.Path) == "" {
		return nil
	}
	dir := filepath.Dir(c.Output.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}

// RequestTimeout returns the HTTP timeout for BGG requests.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.BGG.TimeoutSeconds) * time.Second
}

// RequestInterval returns the minimum spacing between BGG page requests.
func (c *Config) RequestInterval() time.Duration {
	return time.Duration(c.BGG.RequestIntervalMS) * time.Millisecond
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
