package bgg

// RawPlay is one play record as returned by the plays endpoint.
type RawPlay struct {
	ID     string `json:"play_id"`
	Date   string `json:"date"`
	Game   string `json:"game"`
	GameID string `json:"game_id"`
	// Comment is nil when the play carries no comments node or the node is empty.
	Comment *string `json:"comment"`
}

// FetchOptions bounds a FetchPlays call.
type FetchOptions struct {
	// GameIDs restricts results to these BGG object ids. Empty keeps every game.
	GameIDs []int64
	// LastN stops a page scan once that many plays were collected from the
	// page. Zero disables the bound.
	LastN int
	// Since (YYYY-MM-DD) is sent as mindate and stops a page scan at the
	// first older play.
	Since string
}

type playsDocument struct {
	Plays []playElement `xml:"play"`
}

type playElement struct {
	ID       string           `xml:"id,attr"`
	Date     string           `xml:"date,attr"`
	Item     *itemElement     `xml:"item"`
	Comments *commentsElement `xml:"comments"`
}

type itemElement struct {
	Name     string `xml:"name,attr"`
	ObjectID string `xml:"objectid,attr"`
}

type commentsElement struct {
	Text string `xml:",chardata"`
}
