// Package synthetic computes which catalog spirits each player has not yet
// played and emits placeholder plays for them, one per spirit source, so
// downstream displays can show the remaining combinations.
package synthetic
