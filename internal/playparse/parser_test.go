package playparse_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"spiritlog/internal/bgg"
	"spiritlog/internal/catalog"
	"spiritlog/internal/failure"
	"spiritlog/internal/logging"
	"spiritlog/internal/playparse"
	"spiritlog/internal/record"
)

func testCatalogs() catalog.Set {
	return catalog.Set{
		Spirits: catalog.Spirits{
			{Name: "River Surges in Sunlight", Source: "Base Game"},
			{Name: "Vital Strength of the Earth", Source: "Base Game"},
			{Name: "The SomeSpiritName of Dawn", Source: "Jagged Earth"},
			{Name: "OtherSpirit Rising", Source: "Jagged Earth"},
		},
		Adversaries: catalog.Adversaries{
			{Name: "England"},
			{Name: "Habsburg Livestock Colony"},
			{Name: "AdversaryX"},
		},
	}
}

func newParser(t *testing.T) (*playparse.Parser, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	return playparse.New(testCatalogs(), logger), &buf
}

func rawPlay(id, comment string) bgg.RawPlay {
	return bgg.RawPlay{ID: id, Date: "2025-01-15", Game: "Spirit Island", GameID: "162886", Comment: &comment}
}

func TestParseWonPlay(t *testing.T) {
	parser, _ := newParser(t)

	play, ok, err := parser.Parse(rawPlay("42", "AdversaryX L3\nAlice: SomeSpiritName\nBob: OtherSpirit\nMapName"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !ok {
		t.Fatal("expected play to be parsed")
	}
	if play.Level == nil || *play.Level != 3 {
		t.Fatalf("expected level 3, got %v", play.Level)
	}
	if play.Map == nil || *play.Map != "MapName" {
		t.Fatalf("expected map MapName, got %v", play.Map)
	}
	if !play.Won {
		t.Fatal("expected won play")
	}
	want := []record.Assignment{
		{Player: "Alice", Spirit: "The SomeSpiritName of Dawn"},
		{Player: "Bob", Spirit: "OtherSpirit Rising"},
	}
	if len(play.Players) != len(want) {
		t.Fatalf("expected %d players, got %+v", len(want), play.Players)
	}
	for i := range want {
		if play.Players[i] != want[i] {
			t.Fatalf("player %d: got %+v want %+v", i, play.Players[i], want[i])
		}
	}
	if play.PlayID == nil || *play.PlayID != "42" || play.Date != "2025-01-15" {
		t.Fatalf("expected id and date copied, got %+v", play)
	}
	if play.Adversary == nil || *play.Adversary != "AdversaryX" {
		t.Fatalf("unexpected adversary %v", play.Adversary)
	}
	if play.Comment != "" {
		t.Fatalf("expected empty comment, got %q", play.Comment)
	}
}

func TestParseLostPlays(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		wantMap string
		players int
	}{
		{"lost line", "England L2\nA: river\nE: vital\nCoastal Lands\nLost", "Coastal Lands", 2},
		{"case folded", "England L2\nA: river\nArchipelago\nLOST on turn 6", "Archipelago", 1},
		{"only outcome line", "England L2\nlost", "", 0},
		{"map and outcome", "England L2\nSmall Island\nlost", "Small Island", 0},
	}

	parser, _ := newParser(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			play, ok, err := parser.Parse(rawPlay("1", tt.comment))
			if err != nil || !ok {
				t.Fatalf("Parse: ok=%v err=%v", ok, err)
			}
			if play.Won {
				t.Fatal("expected lost play")
			}
			if play.Map == nil || *play.Map != tt.wantMap {
				t.Fatalf("expected map %q, got %v", tt.wantMap, play.Map)
			}
			if len(play.Players) != tt.players {
				t.Fatalf("expected %d players, got %+v", tt.players, play.Players)
			}
		})
	}
}

func TestParseHeaderNoteAndLivestock(t *testing.T) {
	parser, _ := newParser(t)

	play, ok, err := parser.Parse(rawPlay("7", "Habsburg Livestock L4 with scenario Blitz\nA: River\nBalanced"))
	if err != nil || !ok {
		t.Fatalf("Parse: ok=%v err=%v", ok, err)
	}
	if play.Level == nil || *play.Level != 4 {
		t.Fatalf("expected level 4, got %v", play.Level)
	}
	if play.Comment != "with scenario Blitz" {
		t.Fatalf("unexpected comment %q", play.Comment)
	}
	if play.Adversary == nil || *play.Adversary != "Habsburg Livestock Colony" {
		t.Fatalf("unexpected adversary %v", play.Adversary)
	}
}

func TestParseTrimsCarriageReturns(t *testing.T) {
	parser, _ := newParser(t)

	play, ok, err := parser.Parse(rawPlay("8", "England L1\r\nA: River\r\nCoast\r\n"))
	if err != nil || !ok {
		t.Fatalf("Parse: ok=%v err=%v", ok, err)
	}
	if play.Level == nil || *play.Level != 1 {
		t.Fatalf("expected level 1, got %v", play.Level)
	}
	// A trailing newline leaves an empty last line, which becomes the map.
	if play.Map == nil || *play.Map != "" {
		t.Fatalf("expected empty map from trailing newline, got %v", play.Map)
	}
	if len(play.Players) != 1 {
		t.Fatalf("expected one player, got %+v", play.Players)
	}
}

func TestParseSkipsEmptyComment(t *testing.T) {
	parser, _ := newParser(t)

	if _, ok, err := parser.Parse(bgg.RawPlay{ID: "1"}); ok || err != nil {
		t.Fatalf("expected nil comment to be skipped, ok=%v err=%v", ok, err)
	}
	if _, ok, err := parser.Parse(rawPlay("2", "")); ok || err != nil {
		t.Fatalf("expected empty comment to be skipped, ok=%v err=%v", ok, err)
	}
}

func TestParseMalformedLevelIsFatal(t *testing.T) {
	parser, _ := newParser(t)

	for _, comment := range []string{"England Lx\nA: River\nCoast", "England\nA: River\nCoast", "England L\nCoast"} {
		_, _, err := parser.Parse(rawPlay("3", comment))
		if err == nil {
			t.Fatalf("expected error for %q", comment)
		}
		if !errors.Is(err, failure.ErrMalformed) {
			t.Fatalf("expected malformed marker for %q, got %v", comment, err)
		}
	}
}

func TestParseUnresolvedNamesAreLogged(t *testing.T) {
	parser, logs := newParser(t)

	play, ok, err := parser.Parse(rawPlay("5", "Atlantis L1\nA: Nonexistent\nno separator here\nE: river\nCoast"))
	if err != nil || !ok {
		t.Fatalf("Parse: ok=%v err=%v", ok, err)
	}
	if play.Adversary != nil {
		t.Fatalf("expected nil adversary, got %q", *play.Adversary)
	}
	if len(play.Players) != 1 || play.Players[0].Player != "E" {
		t.Fatalf("expected only the resolvable player, got %+v", play.Players)
	}

	out := logs.String()
	for _, fragment := range []string{"could not find adversary", "could not find spirit", "spirit_raw=Nonexistent", "play_id=5"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in logs %q", fragment, out)
		}
	}
}

func TestParseAllKeepsOrderAndStopsOnError(t *testing.T) {
	parser, _ := newParser(t)

	raws := []bgg.RawPlay{
		rawPlay("3", "England L1\nA: River\nCoast"),
		{ID: "2", Date: "2025-01-14"},
		rawPlay("1", "England L2\nE: Vital\nInland"),
	}
	plays, err := parser.ParseAll(raws)
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if len(plays) != 2 || *plays[0].PlayID != "3" || *plays[1].PlayID != "1" {
		t.Fatalf("unexpected plays %+v", plays)
	}

	raws = append(raws, rawPlay("0", "England LX\nCoast"))
	if plays, err := parser.ParseAll(raws); err == nil || plays != nil {
		t.Fatalf("expected fatal error and no plays, got %v %+v", err, plays)
	}
}

func TestParseAbsentIDIsNil(t *testing.T) {
	parser, _ := newParser(t)

	play, ok, err := parser.Parse(rawPlay("", "England L1\nCoast"))
	if err != nil || !ok {
		t.Fatalf("Parse: ok=%v err=%v", ok, err)
	}
	if play.PlayID != nil {
		t.Fatalf("expected nil play id, got %q", *play.PlayID)
	}
	if play.Players == nil {
		t.Fatal("expected empty, non-nil players")
	}
}

func TestParseExtraSpaceAfterSeparatorDropsPlayer(t *testing.T) {
	parser, logs := newParser(t)

	play, ok, err := parser.Parse(rawPlay("8", "England L1\nAlice:  River\nBob: Vital\nCoast"))
	if err != nil || !ok {
		t.Fatalf("Parse: ok=%v err=%v", ok, err)
	}
	if len(play.Players) != 1 || play.Players[0].Player != "Bob" {
		t.Fatalf("expected only Bob to resolve, got %+v", play.Players)
	}
	if !strings.Contains(logs.String(), "spirit_unresolved") {
		t.Fatalf("expected unresolved spirit warning, got %q", logs.String())
	}
}

func TestParseLogsOutcomeAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	parser := playparse.New(testCatalogs(), logger)

	if _, _, err := parser.Parse(rawPlay("9", "England L2\nAlice: River\nCoast\nLost")); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := buf.String()
	for _, fragment := range []string{"parsed play", "won=false", "players=1", "level=2"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in %q", fragment, out)
		}
	}
}
