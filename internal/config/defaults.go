package config

const (
	defaultBGGUsername          = "nraw"
	defaultBGGBaseURL           = "https://www.boardgamegeek.com/xmlapi2"
	defaultBGGUserAgent         = "spiritlog/dev"
	defaultBGGTimeoutSeconds    = 30
	defaultBGGRequestIntervalMS = 2000
	defaultSpiritIslandID       = 162886
	defaultSpiritsPath          = "public/spirits.json"
	defaultAdversariesPath      = "public/adversaries.json"
	defaultOutputPath           = "public/plays.json"
	defaultSyntheticCutoff      = "2025-03-01"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// DateLayout is the layout of every date handled by spiritlog (BGG play dates,
// cutoffs, sentinel dates).
const DateLayout = "2006-01-02"

func defaultSyntheticPlayers() []string {
	return []string{"A", "E"}
}

func defaultSyntheticSets() []SyntheticSet {
	return []SyntheticSet{
		{Source: "Base Game", Date: "2023-04-01"},
		{Source: "Jagged Earth", Date: "2024-04-01"},
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		BGG: BGG{
			Username:          defaultBGGUsername,
			BaseURL:           defaultBGGBaseURL,
			GameIDs:           []int64{defaultSpiritIslandID},
			UserAgent:         defaultBGGUserAgent,
			TimeoutSeconds:    defaultBGGTimeoutSeconds,
			RequestIntervalMS: defaultBGGRequestIntervalMS,
		},
		Catalog: Catalog{
			SpiritsPath:     defaultSpiritsPath,
			AdversariesPath: defaultAdversariesPath,
		},
		Output: Output{
			Path: defaultOutputPath,
		},
		Synthetic: Synthetic{
			Cutoff:  defaultSyntheticCutoff,
			Players: defaultSyntheticPlayers(),
			Sets:    defaultSyntheticSets(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
