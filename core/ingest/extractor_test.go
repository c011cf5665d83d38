package ingest

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/notseanray/seanifyv2-backend/config"
	"github.com/notseanray/seanifyv2-backend/core/search"
	"github.com/notseanray/seanifyv2-backend/internal/testsupport"
	"github.com/notseanray/seanifyv2-backend/model"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		YtdlpPath:        "/nonexistent/yt-dlp",
		SongDir:          t.TempDir(),
		SocketTimeoutSec: 3,
		Retries:          2,
	}
}

func testPipeline(t *testing.T, songs ...model.Song) (*Extractor, *testsupport.FakeSongRepo, *search.Index) {
	t.Helper()
	repo := testsupport.NewFakeSongRepo(songs...)
	idx, err := search.Load(context.Background(), repo)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return NewExtractor(testConfig(t), repo, idx, nil), repo, idx
}

func TestParseVideoID(t *testing.T) {
	cases := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"https://www.youtube.com/watch?v=M3HhNcl2dMA", "M3HhNcl2dMA", false},
		{"https://www.youtube.com/watch?v=M3HhNcl2dMA&list=PL123", "M3HhNcl2dMA", false},
		{"https://www.youtube.com/watch?list=PL123&v=M3HhNcl2dMA", "M3HhNcl2dMA", false},
		{"https://www.youtube.com/watch", "", true},
		{"https://example.com/?video=abc", "", true},
		{"not a url at all", "", true},
		{"", "", true},
	}
	for _, c := range cases {
		got, err := ParseVideoID(c.url)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseVideoID(%q) succeeded with %q, want error", c.url, got)
			} else if !errors.Is(err, ErrMalformedURL) {
				t.Errorf("ParseVideoID(%q) error = %v, want ErrMalformedURL", c.url, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseVideoID(%q) failed: %v", c.url, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseVideoID(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}

func TestDownloaderArgs(t *testing.T) {
	cfg := testConfig(t)
	e := NewExtractor(cfg, nil, nil, nil)

	args := e.downloaderArgs("https://www.youtube.com/watch?v=M3HhNcl2dMA", "M3HhNcl2dMA")
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"--socket-timeout 3",
		"--retries 2",
		"--extract-audio",
		"--audio-format mp3",
		"--write-info-json",
		"--output " + filepath.Join(cfg.SongDir, "M3HhNcl2dMA.%(ext)s"),
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("downloader args missing %q: %s", want, joined)
		}
	}
	if args[len(args)-1] != "https://www.youtube.com/watch?v=M3HhNcl2dMA" {
		t.Errorf("url is not the final argument: %s", joined)
	}
}

// A malformed URL is rejected before the store or the downloader is touched.
func TestExtractMalformedURL(t *testing.T) {
	e, repo, idx := testPipeline(t)

	_, err := e.Extract(context.Background(), "https://www.youtube.com/watch", "alice")
	if !errors.Is(err, ErrMalformedURL) {
		t.Fatalf("Extract error = %v, want ErrMalformedURL", err)
	}
	if repo.Count() != 0 {
		t.Errorf("store gained %d songs from a malformed URL", repo.Count())
	}
	if idx.Len() != 0 {
		t.Errorf("index gained %d songs from a malformed URL", idx.Len())
	}
}

// An id already in the catalog short-circuits before the downloader runs;
// the configured binary here does not exist, so reaching it would surface
// ErrExternalTool instead.
func TestExtractDeduplicates(t *testing.T) {
	existing := model.Song{ID: "M3HhNcl2dMA", Title: "Yellow Submarine"}
	e, repo, _ := testPipeline(t, existing)

	_, err := e.Extract(context.Background(), "https://www.youtube.com/watch?v=M3HhNcl2dMA", "alice")
	if !errors.Is(err, ErrAlreadyCataloged) {
		t.Fatalf("Extract error = %v, want ErrAlreadyCataloged", err)
	}
	if repo.Count() != 1 {
		t.Errorf("store count = %d, want 1", repo.Count())
	}
}

// A missing downloader binary is an external tool failure, and nothing is
// persisted.
func TestExtractExternalToolFailure(t *testing.T) {
	e, repo, idx := testPipeline(t)

	_, err := e.Extract(context.Background(), "https://www.youtube.com/watch?v=M3HhNcl2dMA", "alice")
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("Extract error = %v, want ErrExternalTool", err)
	}
	if repo.Count() != 0 || idx.Len() != 0 {
		t.Errorf("store/index changed after tool failure: %d/%d", repo.Count(), idx.Len())
	}
}

// Cycle consumes the entry whatever the extraction outcome.
func TestCycleConsumesFailedEntry(t *testing.T) {
	e, repo, idx := testPipeline(t)
	q := NewQueue()
	q.Enqueue("https://www.youtube.com/watch", "alice")

	w := NewWorker(q, e, time.Minute)
	if !w.Cycle(context.Background()) {
		t.Fatal("Cycle reported an empty queue")
	}
	if q.Len() != 0 {
		t.Errorf("queue len after cycle = %d, want 0", q.Len())
	}
	if repo.Count() != 0 || idx.Len() != 0 {
		t.Errorf("store/index changed by failed cycle: %d/%d", repo.Count(), idx.Len())
	}

	if w.Cycle(context.Background()) {
		t.Error("Cycle on empty queue reported work")
	}
}
