package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"spiritlog/internal/failure"
)

// Named is implemented by catalog entries that expose a display name.
type Named interface {
	DisplayName() string
}

// Spirit is one entry of the spirit reference list.
type Spirit struct {
	Name   string `json:"spirit"`
	Source string `json:"source"`
}

// DisplayName implements Named.
func (s Spirit) DisplayName() string { return s.Name }

// Adversary is one entry of the adversary reference list.
type Adversary struct {
	Name string `json:"Adversary"`
}

// DisplayName implements Named.
func (a Adversary) DisplayName() string { return a.Name }

// Spirits is the ordered spirit catalog. Order matters: name resolution
// returns the first match.
type Spirits []Spirit

// BySource returns the spirits tagged with source, in catalog order.
func (s Spirits) BySource(source string) Spirits {
	var out Spirits
	for _, spirit := range s {
		if spirit.Source == source {
			out = append(out, spirit)
		}
	}
	return out
}

// Adversaries is the ordered adversary catalog.
type Adversaries []Adversary

// LoadSpirits reads the spirit catalog from a JSON array document.
func LoadSpirits(path string) (Spirits, error) {
	var spirits Spirits
	if err := loadJSON(path, "spirits", &spirits); err != nil {
		return nil, err
	}
	return spirits, nil
}

// LoadAdversaries reads the adversary catalog from a JSON array document.
func LoadAdversaries(path string) (Adversaries, error) {
	var adversaries Adversaries
	if err := loadJSON(path, "adversaries", &adversaries); err != nil {
		return nil, err
	}
	return adversaries, nil
}

func loadJSON(path, kind string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return failure.Wrap(failure.ErrConfiguration, "catalog", "read "+kind, path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return failure.Wrap(failure.ErrConfiguration, "catalog", "decode "+kind, path, err)
	}
	return nil
}

// Set bundles both reference catalogs. It is loaded once per run and passed
// to consumers explicitly; nothing mutates it afterwards.
type Set struct {
	Spirits     Spirits
	Adversaries Adversaries
}

// Load reads both catalogs.
func Load(spiritsPath, adversariesPath string) (Set, error) {
	spirits, err := LoadSpirits(spiritsPath)
	if err != nil {
		return Set{}, err
	}
	adversaries, err := LoadAdversaries(adversariesPath)
	if err != nil {
		return Set{}, err
	}
	return Set{Spirits: spirits, Adversaries: adversaries}, nil
}

// String summarizes catalog sizes for log lines.
func (s Set) String() string {
	return fmt.Sprintf("%d spirits, %d adversaries", len(s.Spirits), len(s.Adversaries))
}
