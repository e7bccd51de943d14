package playparse

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"spiritlog/internal/bgg"
	"spiritlog/internal/catalog"
	"spiritlog/internal/failure"
	"spiritlog/internal/logging"
	"spiritlog/internal/record"
)

const (
	levelMarker     = " L"
	playerSeparator = ": "
	lostPrefix      = "lost"
)

// Parser turns BGG play comments into play records. Its catalogs are fixed at
// construction and never modified.
type Parser struct {
	spirits     catalog.Spirits
	adversaries catalog.Adversaries
	logger      *slog.Logger
}

// New builds a parser resolving names against the given catalogs.
func New(catalogs catalog.Set, logger *slog.Logger) *Parser {
	return &Parser{
		spirits:     catalogs.Spirits,
		adversaries: catalogs.Adversaries,
		logger:      logging.NewComponentLogger(logger, "parser"),
	}
}

// ParseAll parses plays in order, dropping plays without a comment. The first
// fatal error aborts the whole batch.
func (p *Parser) ParseAll(raws []bgg.RawPlay) ([]record.Play, error) {
	plays := make([]record.Play, 0, len(raws))
	for _, raw := range raws {
		play, ok, err := p.Parse(raw)
		if err != nil {
			return nil, err
		}
		if !ok {
			p.logger.Debug("skipping play without comment", logging.String(logging.FieldPlayID, raw.ID))
			continue
		}
		plays = append(plays, play)
	}
	return plays, nil
}

// Parse decodes one play comment. The comment layout is
//
//	<adversary> L<level>[ <note>]
//	<player>: <spirit>
//	...
//	<map>
//	[Lost...]
//
// ok is false when the comment is absent or empty. A header without a level
// marker or with a non-numeric level is an error; unknown names and player
// lines without a separator are logged and dropped.
func (p *Parser) Parse(raw bgg.RawPlay) (record.Play, bool, error) {
	if raw.Comment == nil || *raw.Comment == "" {
		return record.Play{}, false, nil
	}
	logger := p.logger.With(logging.String(logging.FieldPlayID, raw.ID))

	lines := splitLines(*raw.Comment)
	adversaryRaw, level, note, err := parseHeader(lines[0])
	if err != nil {
		return record.Play{}, false, failure.Wrap(failure.ErrMalformed, "parser", "parse header",
			fmt.Sprintf("play %q", raw.ID), err)
	}

	play := record.Play{
		Date:    raw.Date,
		Level:   record.IntPtr(level),
		Comment: note,
		Players: []record.Assignment{},
	}
	if raw.ID != "" {
		play.PlayID = record.StringPtr(raw.ID)
	}

	if name, ok := catalog.Resolve(adversaryRaw, p.adversaries); ok {
		play.Adversary = record.StringPtr(name)
	} else {
		logging.WarnWithContext(logger, "could not find adversary", "adversary_unresolved",
			logging.String("adversary_raw", adversaryRaw),
			logging.String(logging.FieldErrorHint, "add the adversary to the catalog or fix the play comment"),
			logging.String(logging.FieldImpact, "play recorded without adversary"))
	}

	mapLine, playerLines, won := splitBody(lines)
	play.Map = record.StringPtr(mapLine)
	play.Won = won

	for _, line := range playerLines {
		player, spiritRaw, found := strings.Cut(line, playerSeparator)
		if !found {
			logger.Debug("skipping line without player separator", logging.String("line", line))
			continue
		}
		spirit, ok := catalog.Resolve(spiritRaw, p.spirits)
		if !ok {
			logging.WarnWithContext(logger, "could not find spirit", "spirit_unresolved",
				logging.String("player", player),
				logging.String("spirit_raw", spiritRaw),
				logging.String(logging.FieldErrorHint, "add the spirit to the catalog or fix the play comment"),
				logging.String(logging.FieldImpact, "player line dropped"))
			continue
		}
		play.Players = append(play.Players, record.Assignment{Player: strings.TrimSpace(player), Spirit: spirit})
	}

	logger.Debug("parsed play",
		logging.Int("level", level),
		logging.Int("players", len(play.Players)),
		logging.Bool("won", play.Won))
	return play, true, nil
}

func splitLines(comment string) []string {
	lines := strings.Split(comment, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

// parseHeader splits "England L3 first try" into ("England", 3, "first try").
// The split happens at the first " L" followed by a digit so adversary names
// containing " L" (Livestock) still parse; if no such marker exists the first
// " L" is used and the level must still be numeric.
func parseHeader(header string) (string, int, string, error) {
	idx := levelMarkerIndex(header)
	if idx < 0 {
		return "", 0, "", fmt.Errorf("header %q has no %q level marker", header, strings.TrimSpace(levelMarker))
	}
	adversary := header[:idx]
	rest := header[idx+len(levelMarker):]

	levelText, note, _ := strings.Cut(rest, " ")
	level, err := strconv.Atoi(levelText)
	if err != nil {
		return "", 0, "", fmt.Errorf("level %q in header %q is not a number", levelText, header)
	}
	return adversary, level, note, nil
}

func levelMarkerIndex(header string) int {
	first := -1
	for offset := 0; offset < len(header); {
		idx := strings.Index(header[offset:], levelMarker)
		if idx < 0 {
			break
		}
		pos := offset + idx
		if first < 0 {
			first = pos
		}
		next := pos + len(levelMarker)
		if next < len(header) && header[next] >= '0' && header[next] <= '9' {
			return pos
		}
		offset = pos + 1
	}
	return first
}

// splitBody picks the map line and player lines out of the lines following
// the header. A lost play ends with a "Lost..." line, so its map is the
// second-to-last line.
func splitBody(lines []string) (string, []string, bool) {
	body := lines[1:]
	last := lines[len(lines)-1]
	won := !strings.HasPrefix(catalog.Fold(last), lostPrefix)

	if !won {
		if len(body) >= 2 {
			return body[len(body)-2], body[:len(body)-2], false
		}
		if len(body) == 0 {
			return "", nil, false
		}
		return "", body[:len(body)-1], false
	}

	if len(body) == 0 {
		return "", nil, true
	}
	return body[len(body)-1], body[:len(body)-1], true
}
