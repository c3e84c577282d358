package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pfrederiksen/wurstliga/internal/model"
)

// FileStore keeps season documents as JSON files
type FileStore struct {
	dataDir string
}

var _ Store = (*FileStore)(nil)

// New creates a FileStore rooted at dataDir, creating the directory if needed
func New(dataDir string) (*FileStore, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &FileStore{dataDir: dataDir}, nil
}

// Dir returns the root directory of the store
func (s *FileStore) Dir() string {
	return s.dataDir
}

// SeasonDir returns the directory holding the documents of season
func (s *FileStore) SeasonDir(season string) string {
	return filepath.Join(s.dataDir, "season-"+season)
}

func (s *FileStore) roundsDir(season string) string {
	return filepath.Join(s.SeasonDir(season), "rounds")
}

// SaveRound writes rounds/NN.json, replacing an existing file
func (s *FileStore) SaveRound(_ context.Context, r *model.Round) error {
	path := filepath.Join(s.roundsDir(r.Season), roundFilename(r.Number))
	if err := writeJSON(path, r); err != nil {
		return fmt.Errorf("writing round %d: %w", r.Number, err)
	}
	return nil
}

// LoadRounds reads every round file of season
func (s *FileStore) LoadRounds(_ context.Context, season string) ([]*model.Round, error) {
	paths, err := filepath.Glob(filepath.Join(s.roundsDir(season), "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing round files: %w", err)
	}

	rounds := make([]*model.Round, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading round file: %w", err)
		}
		r, err := decodeRound(data)
		if err != nil {
			return nil, fmt.Errorf("parsing round file %s: %w", filepath.Base(path), err)
		}
		rounds = append(rounds, r)
	}

	slices.SortFunc(rounds, func(a, b *model.Round) int { return a.Number - b.Number })
	return rounds, nil
}

// SaveStandings writes standings.json
func (s *FileStore) SaveStandings(_ context.Context, st *model.Standings) error {
	if err := writeJSON(filepath.Join(s.SeasonDir(st.Season), "standings.json"), st); err != nil {
		return fmt.Errorf("writing standings: %w", err)
	}
	return nil
}

// LoadStandings reads standings.json, returning ErrNotFound when it does not exist
func (s *FileStore) LoadStandings(_ context.Context, season string) (*model.Standings, error) {
	data, err := os.ReadFile(filepath.Join(s.SeasonDir(season), "standings.json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
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

// SaveMetadata writes metadata.json
func (s *FileStore) SaveMetadata(_ context.Context, m *model.Metadata) error {
	if err := writeJSON(filepath.Join(s.SeasonDir(m.Season), "metadata.json"), m); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	return nil
}

// LoadMetadata reads metadata.json
func (s *FileStore) LoadMetadata(_ context.Context, season string) (*model.Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.SeasonDir(season), "metadata.json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No previous run
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

// Close is a no-op for files
func (s *FileStore) Close() error {
	return nil
}

// writeJSON writes v to a temporary file in the target directory and renames it over path
func writeJSON(path string, v any) error {
	data, err := encode(v)
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() // nolint:errcheck
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing file: %w", err)
	}
	return nil
}
