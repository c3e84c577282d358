package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/pfrederiksen/wurstliga/internal/config"
	"github.com/pfrederiksen/wurstliga/internal/model"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps season documents in Redis. Rounds live in the hash
// {prefix}:{season}:rounds keyed by the zero-padded round number; standings and
// metadata are plain string keys.
type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to the configured Redis server and pings it
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("no Redis address provided")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close() // nolint:errcheck
		return nil, fmt.Errorf("connecting to Redis at %s: %w", cfg.Addr, err)
	}

	return NewRedisStoreFromClient(rdb, cfg.Prefix), nil
}

// NewRedisStoreFromClient wraps an existing client
func NewRedisStoreFromClient(rdb redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "wurstliga"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) key(season, name string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, season, name)
}

// SaveRound stores the round in the season's round hash
func (s *RedisStore) SaveRound(ctx context.Context, r *model.Round) error {
	data, err := encode(r)
	if err != nil {
		return fmt.Errorf("encoding round %d: %w", r.Number, err)
	}

	field := fmt.Sprintf("%02d", r.Number)
	if err := s.rdb.HSet(ctx, s.key(r.Season, "rounds"), field, data).Err(); err != nil {
		return fmt.Errorf("writing round %d: %w", r.Number, err)
	}
	return nil
}

// LoadRounds reads all rounds of season
func (s *RedisStore) LoadRounds(ctx context.Context, season string) ([]*model.Round, error) {
	fields, err := s.rdb.HGetAll(ctx, s.key(season, "rounds")).Result()
	if err != nil {
		return nil, fmt.Errorf("reading rounds: %w", err)
	}

	rounds := make([]*model.Round, 0, len(fields))
	for field, value := range fields {
		r, err := decodeRound([]byte(value))
		if err != nil {
			return nil, fmt.Errorf("parsing round %s: %w", field, err)
		}
		if r.Number == 0 {
			r.Number, _ = strconv.Atoi(field)
		}
		rounds = append(rounds, r)
	}

	slices.SortFunc(rounds, func(a, b *model.Round) int { return a.Number - b.Number })
	return rounds, nil
}

// SaveStandings stores the standings document
func (s *RedisStore) SaveStandings(ctx context.Context, st *model.Standings) error {
	return s.set(ctx, s.key(st.Season, "standings"), st, "standings")
}

// LoadStandings returns ErrNotFound when no standings were saved
func (s *RedisStore) LoadStandings(ctx context.Context, season string) (*model.Standings, error) {
	data, err := s.rdb.Get(ctx, s.key(season, "standings")).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("standings for season %s: %w", season, ErrNotFound)
		}
		return nil, fmt.Errorf("reading standings: %w", err)
	}

	var st model.Standings
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parsing standings: %w", err)
	}
	return &st, nil
}

// SaveMetadata stores the metadata document
func (s *RedisStore) SaveMetadata(ctx context.Context, m *model.Metadata) error {
	return s.set(ctx, s.key(m.Season, "metadata"), m, "metadata")
}

// LoadMetadata returns empty metadata when none was saved
func (s *RedisStore) LoadMetadata(ctx context.Context, season string) (*model.Metadata, error) {
	data, err := s.rdb.Get(ctx, s.key(season, "metadata")).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.NewMetadata(season), nil
		}
		return nil, fmt.Errorf("reading metadata: %w", err)
	}

	m, err := decodeMetadata(data, season)
	if err != nil {
		return nil, fmt.Errorf("parsing metadata: %w", err)
	}
	return m, nil
}

func (s *RedisStore) set(ctx context.Context, key string, v any, what string) error {
	data, err := encode(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", what, err)
	}
	if err := s.rdb.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("writing %s: %w", what, err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
