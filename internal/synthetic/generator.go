package synthetic

import (
	"spiritlog/internal/catalog"
	"spiritlog/internal/config"
	"spiritlog/internal/record"
)

// Set names a spirit source and the sentinel date of its placeholder play.
type Set struct {
	Source string
	Date   string
}

// Options controls which gaps are reported.
type Options struct {
	// Cutoff is the last date (inclusive, YYYY-MM-DD) whose plays count as played.
	Cutoff  string
	Players []string
	Sets    []Set
}

// OptionsFromConfig maps the [synthetic] config section.
func OptionsFromConfig(cfg config.Synthetic) Options {
	opts := Options{
		Cutoff:  cfg.Cutoff,
		Players: append([]string(nil), cfg.Players...),
		Sets:    make([]Set, 0, len(cfg.Sets)),
	}
	for _, set := range cfg.Sets {
		opts.Sets = append(opts.Sets, Set{Source: set.Source, Date: set.Date})
	}
	return opts
}

// Played collects, per player, the spirits assigned to them in plays dated on
// or before cutoff. Dates compare lexically.
func Played(plays []record.Play, cutoff string) map[string]map[string]struct{} {
	played := make(map[string]map[string]struct{})
	for _, play := range plays {
		if play.Date > cutoff {
			continue
		}
		for _, a := range play.Players {
			spirits, ok := played[a.Player]
			if !ok {
				spirits = make(map[string]struct{})
				played[a.Player] = spirits
			}
			spirits[a.Spirit] = struct{}{}
		}
	}
	return played
}

// Generate returns one placeholder play per configured set listing every
// (player, spirit) pair of that set not yet played by the cutoff. Spirits are
// visited in catalog order and players in option order within each spirit,
// so the output is deterministic. A set with no gaps still yields a play with
// an empty players list.
func Generate(plays []record.Play, spirits catalog.Spirits, opts Options) []record.Play {
	played := Played(plays, opts.Cutoff)

	out := make([]record.Play, 0, len(opts.Sets))
	for _, set := range opts.Sets {
		assignments := []record.Assignment{}
		for _, spirit := range spirits.BySource(set.Source) {
			for _, player := range opts.Players {
				if _, ok := played[player][spirit.Name]; ok {
					continue
				}
				assignments = append(assignments, record.Assignment{Player: player, Spirit: spirit.Name})
			}
		}
		out = append(out, record.Play{
			Date:    set.Date,
			Players: assignments,
			Won:     true,
		})
	}
	return out
}

// Augment returns plays followed by the placeholders from Generate. The input
// slice is not modified.
func Augment(plays []record.Play, spirits catalog.Spirits, opts Options) []record.Play {
	generated := Generate(plays, spirits, opts)
	out := make([]record.Play, 0, len(plays)+len(generated))
	out = append(out, plays...)
	return append(out, generated...)
}
