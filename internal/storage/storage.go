package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pfrederiksen/wurstliga/internal/config"
	"github.com/pfrederiksen/wurstliga/internal/model"
)

// ErrNotFound is returned when a requested document does not exist
var ErrNotFound = errors.New("not found")

// Store persists the documents of a season
type Store interface {
	SaveRound(ctx context.Context, r *model.Round) error
	// LoadRounds returns all rounds of season ordered by round number
	LoadRounds(ctx context.Context, season string) ([]*model.Round, error)
	SaveStandings(ctx context.Context, s *model.Standings) error
	LoadStandings(ctx context.Context, season string) (*model.Standings, error)
	SaveMetadata(ctx context.Context, m *model.Metadata) error
	// LoadMetadata returns empty metadata when none was saved yet
	LoadMetadata(ctx context.Context, season string) (*model.Metadata, error)
	Close() error
}

// Open returns a RedisStore when cfg.Redis.Addr is set and a FileStore otherwise
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	if cfg.Redis.Addr != "" {
		return NewRedisStore(ctx, cfg.Redis)
	}
	return New(cfg.DataDir)
}

// encode renders a document as indented JSON with a trailing newline. Non-ASCII text
// such as umlauts is written as is.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeRound(data []byte) (*model.Round, error) {
	var r model.Round
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	if !r.Status.Valid() {
		return nil, fmt.Errorf("unknown round status %q", r.Status)
	}
	if r.Matches == nil {
		r.Matches = []model.Match{}
	}
	if r.Players == nil {
		r.Players = []model.ScoredPlayer{}
	}
	return &r, nil
}

func decodeMetadata(data []byte, season string) (*model.Metadata, error) {
	m := model.NewMetadata(season)
	if err := json.Unmarshal(data, m); err != nil {
		return nil, err
	}
	if m.Rounds == nil {
		m.Rounds = make(map[int]model.RoundSummary)
	}
	return m, nil
}

func roundFilename(number int) string {
	return fmt.Sprintf("%02d.json", number)
}
