package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/pfrederiksen/wurstliga/internal/logger"
	"github.com/pfrederiksen/wurstliga/internal/model"
	"github.com/pfrederiksen/wurstliga/internal/round"
	"github.com/pfrederiksen/wurstliga/internal/standings"
)

// RunResult is the outcome of storing one or more rounds
type RunResult struct {
	Season    string               `json:"season"`
	Rounds    []RoundResult        `json:"rounds"`
	Changes   []model.StatusChange `json:"changes"`
	Changed   bool                 `json:"changed"`
	Standings *model.Standings     `json:"standings"`
}

// RoundResult summarises a stored round
type RoundResult struct {
	Round     int          `json:"round"`
	Status    model.Status `json:"status"`
	Matches   int          `json:"matches"`
	Completed int          `json:"completed"`
	Players   int          `json:"players"`
}

// storeRound assembles a page and saves the round
func (a *app) storeRound(ctx context.Context, r io.Reader, number int) (*model.Round, error) {
	rd, err := round.Parse(r, number, a.cfg)
	if err != nil {
		return nil, err
	}
	a.metrics.IncRoundsParsed(string(rd.Status))

	if err := a.store.SaveRound(ctx, rd); err != nil {
		return nil, fmt.Errorf("saving round: %w", err)
	}

	a.log.Info("round saved", logger.Fields{
		"round":     rd.Number,
		"status":    string(rd.Status),
		"matches":   len(rd.Matches),
		"completed": rd.CompletedMatches(),
		"players":   len(rd.Players),
	})
	return rd, nil
}

// finishRun updates the metadata with the rounds stored in this run, reports status
// changes against the previous run and recomputes the standings
func (a *app) finishRun(ctx context.Context, stored []*model.Round) (*RunResult, error) {
	previous, err := a.store.LoadMetadata(ctx, a.cfg.Season)
	if err != nil {
		return nil, fmt.Errorf("loading metadata: %w", err)
	}

	next := model.Merge(previous, model.BuildMetadata(a.cfg.Season, stored, a.now()))
	changes := model.DiffMetadata(previous, next)

	if err := a.store.SaveMetadata(ctx, next); err != nil {
		return nil, fmt.Errorf("saving metadata: %w", err)
	}

	for _, c := range changes {
		a.log.Info("round status changed", logger.Fields{
			"round": c.Round,
			"from":  string(c.From),
			"to":    string(c.To),
		})
	}

	table, err := a.recomputeStandings(ctx)
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		Season:    a.cfg.Season,
		Rounds:    make([]RoundResult, 0, len(stored)),
		Changes:   changes,
		Changed:   len(changes) > 0,
		Standings: table,
	}
	for _, r := range stored {
		result.Rounds = append(result.Rounds, RoundResult{
			Round:     r.Number,
			Status:    r.Status,
			Matches:   len(r.Matches),
			Completed: r.CompletedMatches(),
			Players:   len(r.Players),
		})
	}
	return result, nil
}

// recomputeStandings folds every stored round into fresh standings and saves them
func (a *app) recomputeStandings(ctx context.Context) (*model.Standings, error) {
	rounds, err := a.store.LoadRounds(ctx, a.cfg.Season)
	if err != nil {
		return nil, fmt.Errorf("loading rounds: %w", err)
	}

	table := standings.Aggregate(a.cfg.Season, rounds, a.now())
	if err := a.store.SaveStandings(ctx, table); err != nil {
		return nil, fmt.Errorf("saving standings: %w", err)
	}
	a.metrics.SetStandingsPlayers(len(table.Players))

	a.log.Debug("standings recomputed", logger.Fields{
		"rounds_counted": len(table.RoundsCounted),
		"players":        len(table.Players),
	})
	return table, nil
}
