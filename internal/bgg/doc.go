// Package bgg retrieves logged plays from the BoardGameGeek XML API.
//
// The Client walks the paginated plays endpoint for one user until an empty
// page, applying the game-id, count and date bounds of FetchOptions while it
// scans. Requests are paced with a token-bucket limiter because the public API
// throttles eager clients. Every failure, including non-200 responses and
// plays without a game item, aborts the whole fetch; there is no retry.
package bgg
