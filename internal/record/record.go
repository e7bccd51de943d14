// Package record defines the play records spiritlog emits.
package record

// Assignment pairs a player label with the spirit they played.
type Assignment struct {
	Player string `json:"player"`
	Spirit string `json:"spirit"`
}

// Play is one output record: a parsed BGG play or a synthetic
// unplayed-spirit placeholder.
type Play struct {
	PlayID    *string      `json:"play_id"`
	Date      string       `json:"date"`
	Adversary *string      `json:"adversary"`
	Level     *int         `json:"level"`
	Map       *string      `json:"map"`
	Players   []Assignment `json:"players"`
	Comment   string       `json:"comment"`
	Won       bool         `json:"won"`
}

// Synthetic reports whether p is a placeholder rather than a logged play.
func (p Play) Synthetic() bool {
	return p.PlayID == nil && p.Level == nil && p.Map == nil
}

// HasPlayer reports whether player is assigned spirit in p.
func (p Play) HasPlayer(player, spirit string) bool {
	for _, a := range p.Players {
		if a.Player == player && a.Spirit == spirit {
			return true
		}
	}
	return false
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
