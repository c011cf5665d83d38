// Package search maintains the in-memory song index and answers fuzzy
// queries against it. The catalog store stays the source of truth; the
// index is a derived snapshot rebuilt wholesale after each ingestion.
package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/notseanray/seanifyv2-backend/core/fuzzy"
	"github.com/notseanray/seanifyv2-backend/logger"
	"github.com/notseanray/seanifyv2-backend/model"
	"github.com/notseanray/seanifyv2-backend/repository"
)

// Index is an in-memory snapshot of the song catalog. Many searches may
// read concurrently; a refresh swaps the snapshot under the write lock, so
// readers always see a complete snapshot, never a half-replaced one.
type Index struct {
	mu    sync.RWMutex
	songs []model.Song
	repo  repository.SongRepository
}

// Load reads every song from the catalog store and returns a serving index.
// A load failure at startup leaves the service with nothing to answer from,
// so callers should treat it as fatal.
func Load(ctx context.Context, repo repository.SongRepository) (*Index, error) {
	songs, err := repo.GetAllSongs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load song index: %w", err)
	}
	logger.Info("Song index loaded.", logger.Int("songs", len(songs)))
	return &Index{songs: songs, repo: repo}, nil
}

// Refresh re-reads the catalog and wholesale-replaces the snapshot. The
// store read happens before the write lock is taken: a failed read aborts
// without touching the live snapshot.
func (idx *Index) Refresh(ctx context.Context) error {
	songs, err := idx.repo.GetAllSongs(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh song index: %w", err)
	}

	idx.mu.Lock()
	idx.songs = songs
	idx.mu.Unlock()

	logger.Debug("Song index refreshed.", logger.Int("songs", len(songs)))
	return nil
}

// Search ranks the snapshot against term and returns at most limit results,
// best first. TypeID bypasses scoring and returns zero or one result with
// score 1.0 by convention, ignoring limit.
func (idx *Index) Search(term string, searchType SearchType, limit int) []model.SearchResult {
	if searchType == TypeID {
		if song, ok := idx.GetByID(term); ok {
			return []model.SearchResult{{Song: song, Score: 1.0}}
		}
		return []model.SearchResult{}
	}

	key := fieldAccessor(searchType)

	idx.mu.RLock()
	matches := fuzzy.BestN(term, idx.songs, key, limit)
	idx.mu.RUnlock()

	results := make([]model.SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, model.SearchResult{Song: m.Value, Score: m.Score})
	}
	return results
}

// GetByID performs an exact linear match on song id.
func (idx *Index) GetByID(id string) (model.Song, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	for _, song := range idx.songs {
		if song.ID == id {
			return song, true
		}
	}
	return model.Song{}, false
}

// Len returns the number of songs in the current snapshot.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.songs)
}

// fieldAccessor resolves a search type to the song field it scores against.
// User entities have no song field; user searches fall back to the default
// concatenated field.
func fieldAccessor(searchType SearchType) func(model.Song) string {
	switch searchType {
	case TypeTitle:
		return func(s model.Song) string { return s.Title }
	case TypeUploader:
		return func(s model.Song) string { return s.Uploader }
	default:
		return func(s model.Song) string { return s.DefaultSearch }
	}
}
