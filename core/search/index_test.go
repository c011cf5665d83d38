package search

import (
	"context"
	"testing"

	"github.com/notseanray/seanifyv2-backend/internal/testsupport"
	"github.com/notseanray/seanifyv2-backend/model"
)

func testSongs() []model.Song {
	return []model.Song{
		{
			ID:            "M3HhNcl2dMA",
			Title:         "Yellow Submarine",
			Uploader:      "beatles-topic",
			Artist:        "The Beatles",
			Album:         "Revolver",
			DefaultSearch: "Yellow Submarine The Beatles Revolver",
		},
		{
			ID:            "dQw4w9WgXcQ",
			Title:         "Yellow Su bmarine",
			Uploader:      "someone-else",
			Artist:        "Cover Band",
			Album:         "Covers",
			DefaultSearch: "Yellow Su bmarine Cover Band Covers",
		},
		{
			ID:            "abc123def45",
			Title:         "Red Sub",
			Uploader:      "red-channel",
			Artist:        "Red",
			Album:         "Subs",
			DefaultSearch: "Red Sub Red Subs",
		},
	}
}

func loadTestIndex(t *testing.T) (*Index, *testsupport.FakeSongRepo) {
	t.Helper()
	repo := testsupport.NewFakeSongRepo(testSongs()...)
	idx, err := Load(context.Background(), repo)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return idx, repo
}

func TestSearchByTitle(t *testing.T) {
	idx, _ := loadTestIndex(t)

	results := idx.Search("Yellow Submarine", TypeTitle, 2)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Song.ID != "M3HhNcl2dMA" || results[0].Score != 1.0 {
		t.Errorf("best result = (%s, %v), want exact match with score 1.0",
			results[0].Song.ID, results[0].Score)
	}
	if results[1].Song.ID != "dQw4w9WgXcQ" {
		t.Errorf("second result = %s, want the near-miss title", results[1].Song.ID)
	}
	if results[1].Score >= 1.0 || results[1].Score <= 0.0 {
		t.Errorf("near-miss score = %v, want strictly between 0 and 1", results[1].Score)
	}
}

func TestSearchLimit(t *testing.T) {
	idx, _ := loadTestIndex(t)

	if results := idx.Search("sub", TypeDefault, 1); len(results) != 1 {
		t.Errorf("limit 1 returned %d results", len(results))
	}
	if results := idx.Search("sub", TypeDefault, 50); len(results) != 3 {
		t.Errorf("limit 50 returned %d results, want all 3", len(results))
	}
}

func TestSearchByIDBypassesScoring(t *testing.T) {
	idx, _ := loadTestIndex(t)

	results := idx.Search("dQw4w9WgXcQ", TypeID, 0)
	if len(results) != 1 {
		t.Fatalf("id search returned %d results, want 1", len(results))
	}
	if results[0].Song.Title != "Yellow Su bmarine" || results[0].Score != 1.0 {
		t.Errorf("id search returned (%s, %v)", results[0].Song.Title, results[0].Score)
	}

	if results := idx.Search("not-a-real-id", TypeID, 0); len(results) != 0 {
		t.Errorf("id search for unknown id returned %d results, want 0", len(results))
	}
}

func TestGetByID(t *testing.T) {
	idx, _ := loadTestIndex(t)

	song, ok := idx.GetByID("abc123def45")
	if !ok || song.Title != "Red Sub" {
		t.Errorf("GetByID = (%v, %v), want Red Sub", song.Title, ok)
	}
	if _, ok := idx.GetByID("missing"); ok {
		t.Error("GetByID found a song that does not exist")
	}
}

func TestUserSearchFallsBackToDefault(t *testing.T) {
	idx, _ := loadTestIndex(t)

	user := idx.Search("Yellow Submarine The Beatles Revolver", TypeUser, 3)
	def := idx.Search("Yellow Submarine The Beatles Revolver", TypeDefault, 3)
	if len(user) != len(def) {
		t.Fatalf("user search returned %d results, default returned %d", len(user), len(def))
	}
	for i := range user {
		if user[i].Song.ID != def[i].Song.ID || user[i].Score != def[i].Score {
			t.Errorf("result %d differs between user and default search", i)
		}
	}
}

func TestRefreshPicksUpNewSongs(t *testing.T) {
	idx, repo := loadTestIndex(t)

	newSong := model.Song{ID: "zzz", Title: "Brand New", DefaultSearch: "Brand New"}
	if err := repo.CreateSong(context.Background(), &newSong); err != nil {
		t.Fatalf("CreateSong failed: %v", err)
	}

	if idx.Len() != 3 {
		t.Fatalf("index changed before refresh: len = %d", idx.Len())
	}
	if err := idx.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if idx.Len() != 4 {
		t.Errorf("index len after refresh = %d, want 4", idx.Len())
	}
}

// A refresh that fails mid-load must leave the prior snapshot serving reads.
func TestRefreshFailurePreservesSnapshot(t *testing.T) {
	idx, repo := loadTestIndex(t)

	repo.FailReads = true
	if err := idx.Refresh(context.Background()); err == nil {
		t.Fatal("Refresh succeeded against an unreachable store")
	}

	if idx.Len() != 3 {
		t.Errorf("snapshot mutated by failed refresh: len = %d, want 3", idx.Len())
	}
	if _, ok := idx.GetByID("M3HhNcl2dMA"); !ok {
		t.Error("GetByID no longer answers against the prior snapshot")
	}
}

func TestLoadFailure(t *testing.T) {
	repo := testsupport.NewFakeSongRepo()
	repo.FailReads = true
	if _, err := Load(context.Background(), repo); err == nil {
		t.Fatal("Load succeeded against an unreachable store")
	}
}

func TestParseSearchType(t *testing.T) {
	cases := map[string]SearchType{
		"title":     TypeTitle,
		"uploader":  TypeUploader,
		"user":      TypeUser,
		"id":        TypeID,
		"default":   TypeDefault,
		"":          TypeDefault,
		"bogus":     TypeDefault,
		"TITLE":     TypeDefault, // tags are case-sensitive
		"playlists": TypeDefault,
	}
	for in, want := range cases {
		if got := ParseSearchType(in); got != want {
			t.Errorf("ParseSearchType(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseLimit(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 30},
		{"10", 10},
		{"abc", 30},
		{"-5", 30},
		{"0", 30},
		{"100", 50}, // capped at max
	}
	for _, c := range cases {
		if got := ParseLimit(c.in, 30, 50); got != c.want {
			t.Errorf("ParseLimit(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
