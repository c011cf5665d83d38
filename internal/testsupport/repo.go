// Package testsupport provides shared fakes for package tests.
package testsupport

import (
	"context"
	"errors"
	"sync"

	"github.com/notseanray/seanifyv2-backend/model"
)

// ErrUnavailable is returned by a FakeSongRepo whose failure flags are set.
var ErrUnavailable = errors.New("catalog store unavailable")

// FakeSongRepo is an in-memory SongRepository for tests. Reads and writes
// can be made to fail independently to exercise error paths.
type FakeSongRepo struct {
	mu    sync.Mutex
	songs []model.Song

	FailReads  bool
	FailWrites bool
}

// NewFakeSongRepo seeds a repo with the given songs.
func NewFakeSongRepo(songs ...model.Song) *FakeSongRepo {
	return &FakeSongRepo{songs: append([]model.Song(nil), songs...)}
}

func (r *FakeSongRepo) CreateSong(_ context.Context, song *model.Song) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites {
		return ErrUnavailable
	}
	r.songs = append(r.songs, *song)
	return nil
}

func (r *FakeSongRepo) GetAllSongs(_ context.Context) ([]model.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailReads {
		return nil, ErrUnavailable
	}
	return append([]model.Song(nil), r.songs...), nil
}

func (r *FakeSongRepo) GetSongByID(_ context.Context, id string) (*model.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailReads {
		return nil, ErrUnavailable
	}
	for i := range r.songs {
		if r.songs[i].ID == id {
			song := r.songs[i]
			return &song, nil
		}
	}
	return nil, nil
}

func (r *FakeSongRepo) SongExists(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailReads {
		return false, ErrUnavailable
	}
	for i := range r.songs {
		if r.songs[i].ID == id {
			return true, nil
		}
	}
	return false, nil
}

// Count returns the number of stored songs.
func (r *FakeSongRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.songs)
}
