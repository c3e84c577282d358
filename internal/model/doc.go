// Package model defines the documents produced and consumed by the wurstliga pipeline.
//
// A Round is the structured record of one kicktipp round (Spieltag): its fixtures, the
// players' raw tip scores and the league points derived from them. Standings fold all
// qualifying rounds of a season into cumulative per-player totals. Metadata summarises the
// status of every stored round and is diffed between runs to detect status changes.
package model
