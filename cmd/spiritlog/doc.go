// Package main hosts the spiritlog CLI.
//
// The Cobra command tree resolves configuration once per invocation, builds
// the BGG client and logger from it, and hands the work to internal/tracker.
// sync writes the play document, fetch dumps raw plays, coverage summarizes
// which spirits each player has yet to play, and config scaffolds or checks
// the TOML file.
package main
