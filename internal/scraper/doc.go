// Package scraper fetches kicktipp "Tippübersicht" pages for a tip group.
//
// Requests carry a fixed User-Agent, are spaced by a rate limiter and are retried with
// a linear backoff (1s, 2s, ...) when the server does not answer 200. DiscoverRounds
// reads the season navigation of round 1 to find every round of the season.
package scraper
