package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/wurstliga/internal/config"
	"github.com/pfrederiksen/wurstliga/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRound(number int, status model.Status) *model.Round {
	kickoff := time.Date(2025, 8, 22, 20, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
	return &model.Round{
		Season: "2025-26",
		Number: number,
		Status: status,
		Matches: []model.Match{
			{RowIndex: 1, Kickoff: &kickoff, Home: "FC Bayern München", Away: "RB Leipzig", Result: "6:0"},
			{RowIndex: 2, Home: "1. FC Köln", Away: "1. FSV Mainz 05"},
		},
		Players: []model.ScoredPlayer{
			{RawPlayer: model.RawPlayer{Name: "Jürgen", RawScore: 12}, DenseRank: 1, LeaguePoints: 10, TopScorer: true},
			{RawPlayer: model.RawPlayer{Name: "Dora", RawScore: 0}, DenseRank: 2, LeaguePoints: 8, ZeroRaw: true},
		},
	}
}

// exerciseStore runs the same checks against any Store implementation
func exerciseStore(t *testing.T, store Store, season string) {
	ctx := context.Background()

	rounds, err := store.LoadRounds(ctx, season)
	require.NoError(t, err)
	assert.Empty(t, rounds)

	meta, err := store.LoadMetadata(ctx, season)
	require.NoError(t, err)
	assert.Equal(t, season, meta.Season)
	assert.Empty(t, meta.Rounds)

	_, err = store.LoadStandings(ctx, season)
	assert.ErrorIs(t, err, ErrNotFound)

	for _, n := range []int{10, 2, 1} {
		r := sampleRound(n, model.StatusComplete)
		r.Season = season
		require.NoError(t, store.SaveRound(ctx, r))
	}
	// overwrite
	updated := sampleRound(2, model.StatusInProgress)
	updated.Season = season
	require.NoError(t, store.SaveRound(ctx, updated))

	rounds, err = store.LoadRounds(ctx, season)
	require.NoError(t, err)
	require.Len(t, rounds, 3)
	assert.Equal(t, []int{1, 2, 10}, []int{rounds[0].Number, rounds[1].Number, rounds[2].Number})
	assert.Equal(t, model.StatusInProgress, rounds[1].Status)
	assert.Equal(t, "Jürgen", rounds[0].Players[0].Name)
	assert.True(t, bool(rounds[0].Players[0].TopScorer))
	require.NotNil(t, rounds[0].Matches[0].Kickoff)
	assert.True(t, rounds[0].Matches[0].Kickoff.Equal(*sampleRound(1, "").Matches[0].Kickoff))
	assert.Nil(t, rounds[0].Matches[1].Kickoff)

	standings := &model.Standings{
		Season:        season,
		RoundsCounted: []int{1, 2},
		GeneratedAt:   time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
		Players: []model.PlayerTotals{
			{Name: "Jürgen", LeaguePointsTotal: 20, RawScoreTotal: 24, TopScorerTotal: 2},
		},
	}
	require.NoError(t, store.SaveStandings(ctx, standings))

	loaded, err := store.LoadStandings(ctx, season)
	require.NoError(t, err)
	assert.Equal(t, standings.Players, loaded.Players)
	assert.Equal(t, standings.RoundsCounted, loaded.RoundsCounted)
	assert.True(t, standings.GeneratedAt.Equal(loaded.GeneratedAt))

	meta = model.BuildMetadata(season, rounds, time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, store.SaveMetadata(ctx, meta))

	loadedMeta, err := store.LoadMetadata(ctx, season)
	require.NoError(t, err)
	assert.Equal(t, meta.Rounds, loadedMeta.Rounds)
	assert.Empty(t, model.DiffMetadata(meta, loadedMeta))
}

func TestFileStore(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	defer store.Close() // nolint:errcheck

	exerciseStore(t, store, "2025-26")
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.SaveRound(ctx, sampleRound(3, model.StatusComplete)))
	require.NoError(t, store.SaveMetadata(ctx, model.NewMetadata("2025-26")))

	seasonDir := filepath.Join(dir, "season-2025-26")
	assert.Equal(t, seasonDir, store.SeasonDir("2025-26"))
	assert.FileExists(t, filepath.Join(seasonDir, "rounds", "03.json"))
	assert.FileExists(t, filepath.Join(seasonDir, "metadata.json"))

	entries, err := os.ReadDir(filepath.Join(seasonDir, "rounds"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")

	data, err := os.ReadFile(filepath.Join(seasonDir, "rounds", "03.json"))
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `"name": "Jürgen"`)
	assert.Contains(t, text, `"home": "FC Bayern München"`)
	assert.Contains(t, text, `"top_scorer": 1`)
	assert.Contains(t, text, `"zero_raw": 0`)
	assert.Contains(t, text, `"datetime_local": null`)
	assert.True(t, strings.HasSuffix(text, "}\n"))
}

func TestFileStore_CorruptRound(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	roundsDir := filepath.Join(dir, "season-2025-26", "rounds")
	require.NoError(t, os.MkdirAll(roundsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(roundsDir, "01.json"), []byte("{broken"), 0644))

	_, err = store.LoadRounds(context.Background(), "2025-26")
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(roundsDir, "01.json"), []byte(`{"season":"2025-26","round":1,"status":"finished"}`), 0644))
	_, err = store.LoadRounds(context.Background(), "2025-26")
	assert.ErrorContains(t, err, "unknown round status")
}

func TestNew_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := New("~/wurstliga-data")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "wurstliga-data"), store.Dir())
	assert.DirExists(t, store.Dir())
}

func TestOpen_DefaultsToFiles(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()

	store, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close() // nolint:errcheck

	assert.IsType(t, &FileStore{}, store)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("WURSTLIGA_REDIS_ADDR")
	if addr == "" {
		t.Skip("WURSTLIGA_REDIS_ADDR not set")
	}

	prefix := "wurstliga-test-" + strings.ReplaceAll(time.Now().Format("150405.000000"), ".", "")
	store, err := NewRedisStore(context.Background(), config.RedisConfig{Addr: addr, Prefix: prefix})
	require.NoError(t, err)
	defer store.Close() // nolint:errcheck

	season := "2025-26"
	defer store.rdb.Del(context.Background(), // nolint:errcheck
		store.key(season, "rounds"), store.key(season, "standings"), store.key(season, "metadata"))

	exerciseStore(t, store, season)
}

func TestRedisStore_Keys(t *testing.T) {
	store := NewRedisStoreFromClient(nil, "")

	assert.Equal(t, "wurstliga:2025-26:rounds", store.key("2025-26", "rounds"))
	assert.Equal(t, "wurstliga:2025-26:standings", store.key("2025-26", "standings"))
}

func TestNewRedisStore_RequiresAddr(t *testing.T) {
	_, err := NewRedisStore(context.Background(), config.RedisConfig{})
	assert.Error(t, err)
}
