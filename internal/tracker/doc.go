// Package tracker runs the spiritlog pipeline: fetch plays from BGG, parse
// their comments against the catalogs, append the unplayed-spirit records and
// write the output document. Each run gets a fresh run id that tags every log
// line it produces.
package tracker
