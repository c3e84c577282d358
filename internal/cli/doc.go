// Package cli implements the wurstliga command-line interface.
//
// The Cobra-based CLI scrapes kicktipp round pages (or imports saved ones), stores the
// assembled rounds, reports round status changes since the previous run and recomputes
// the season standings. Standings can be printed as text or JSON and exported as an
// Excel workbook or a PNG chart; the fixtures of a round can be exported as iCalendar.
package cli
