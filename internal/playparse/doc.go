// Package playparse decodes the free-text comments logged with each play into
// structured records: adversary and level from the first line, one
// "player: spirit" line per seat, the map, and an optional trailing "Lost"
// line. Names are normalized through the catalog resolver.
package playparse
