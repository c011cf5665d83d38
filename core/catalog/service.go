// Package catalog is the facade the rest of the application talks to:
// queueing downloads, searching the index and recording play history.
package catalog

import (
	"context"
	"fmt"

	"github.com/notseanray/seanifyv2-backend/cache"
	"github.com/notseanray/seanifyv2-backend/config"
	"github.com/notseanray/seanifyv2-backend/core/ingest"
	"github.com/notseanray/seanifyv2-backend/core/search"
	"github.com/notseanray/seanifyv2-backend/model"
)

// Service bundles the injected catalog state. It holds no state of its own;
// everything mutable lives in the queue and the index.
type Service struct {
	cfg     *config.Config
	queue   *ingest.Queue
	index   *search.Index
	history *cache.History
}

// NewService wires the facade. history may be nil when Redis is not
// configured; play-history calls then become no-ops.
func NewService(cfg *config.Config, queue *ingest.Queue, index *search.Index, history *cache.History) *Service {
	return &Service{cfg: cfg, queue: queue, index: index, history: history}
}

// EnqueueDownload adds a URL to the ingestion queue on behalf of a known
// requester. Authentication happens before this call.
func (s *Service) EnqueueDownload(url, requestedBy string) {
	s.queue.Enqueue(url, requestedBy)
}

// ClearQueue empties the ingestion queue without processing. Privileged.
func (s *Service) ClearQueue() {
	s.queue.Clear()
}

// QueueSnapshot returns the pending queue entries for observability.
func (s *Service) QueueSnapshot() []model.QueueEntry {
	return s.queue.List()
}

// Search answers a fuzzy query. searchType and limit arrive as raw strings
// from the caller; unknown or unparsable values fall back to defaults
// rather than erroring.
func (s *Service) Search(term, searchType, limit string) []model.SearchResult {
	t := search.ParseSearchType(searchType)
	n := search.ParseLimit(limit, s.cfg.DefaultSearchResults, s.cfg.MaxSearchResults)
	return s.index.Search(term, t, n)
}

// GetByID looks up a song by exact id, bypassing scoring.
func (s *Service) GetByID(id string) (model.Song, bool) {
	return s.index.GetByID(id)
}

// NowPlaying records a play in the user's history. The song must be in the
// current index snapshot.
func (s *Service) NowPlaying(ctx context.Context, userID, songID string) error {
	if _, ok := s.index.GetByID(songID); !ok {
		return fmt.Errorf("unknown song id %q", songID)
	}
	if s.history == nil {
		return nil
	}
	return s.history.Push(ctx, userID, songID)
}

// RecentlyPlayed resolves the user's history against the index. Songs that
// have since left the catalog are skipped.
func (s *Service) RecentlyPlayed(ctx context.Context, userID string) ([]model.Song, error) {
	if s.history == nil {
		return []model.Song{}, nil
	}
	ids, err := s.history.Recent(ctx, userID)
	if err != nil {
		return nil, err
	}

	songs := make([]model.Song, 0, len(ids))
	for _, id := range ids {
		if song, ok := s.index.GetByID(id); ok {
			songs = append(songs, song)
		}
	}
	return songs, nil
}
