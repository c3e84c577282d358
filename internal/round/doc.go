// Package round turns one kicktipp "Tippübersicht" page into a model.Round.
//
// Assembly is a pure composition: the fixtures and player tables are extracted, the
// players are scored against the configured ladder and the round's completion status is
// derived from the number of finished matches. Parsing the same page twice yields
// identical rounds.
package round
