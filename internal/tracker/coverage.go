package tracker

import (
	"spiritlog/internal/catalog"
	"spiritlog/internal/record"
	"spiritlog/internal/synthetic"
)

// CoverageRow reports how much of one spirit set a player has covered by the
// cutoff.
type CoverageRow struct {
	Source    string   `json:"source"`
	Player    string   `json:"player"`
	Played    int      `json:"played"`
	Total     int      `json:"total"`
	Remaining []string `json:"remaining"`
}

// Coverage computes one row per (set, player) in option order.
func Coverage(plays []record.Play, spirits catalog.Spirits, opts synthetic.Options) []CoverageRow {
	played := synthetic.Played(plays, opts.Cutoff)

	rows := make([]CoverageRow, 0, len(opts.Sets)*len(opts.Players))
	for _, set := range opts.Sets {
		subset := spirits.BySource(set.Source)
		for _, player := range opts.Players {
			row := CoverageRow{
				Source:    set.Source,
				Player:    player,
				Total:     len(subset),
				Remaining: []string{},
			}
			for _, spirit := range subset {
				if _, ok := played[player][spirit.Name]; ok {
					row.Played++
					continue
				}
				row.Remaining = append(row.Remaining, spirit.Name)
			}
			rows = append(rows, row)
		}
	}
	return rows
}
