package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.senan.xyz/taglib"

	"github.com/notseanray/seanifyv2-backend/config"
	"github.com/notseanray/seanifyv2-backend/core/search"
	"github.com/notseanray/seanifyv2-backend/logger"
	"github.com/notseanray/seanifyv2-backend/model"
	"github.com/notseanray/seanifyv2-backend/repository"
	"github.com/notseanray/seanifyv2-backend/storage"
)

// videoData is the sidecar metadata file the downloader writes next to the
// audio file (<id>.info.json).
type videoData struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Uploader   string `json:"uploader"`
	AgeLimit   int    `json:"age_limit"`
	WebpageURL string `json:"webpage_url"`
	WasLive    bool   `json:"was_live"`
	UploadDate string `json:"upload_date"`
	Filesize   int64  `json:"filesize"`
}

// Extractor runs the external downloader for one URL, merges tag and
// sidecar metadata into a Song, persists it and refreshes the search index.
type Extractor struct {
	cfg     *config.Config
	repo    repository.SongRepository
	index   *search.Index
	archive *storage.Archive
}

// NewExtractor wires an extractor. archive may be nil to disable archiving.
func NewExtractor(cfg *config.Config, repo repository.SongRepository, index *search.Index, archive *storage.Archive) *Extractor {
	return &Extractor{cfg: cfg, repo: repo, index: index, archive: archive}
}

// ParseVideoID extracts the stable identifier from a source URL. The id is
// the "v" query parameter; URLs without one are malformed.
func ParseVideoID(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedURL, rawURL)
	}
	id := u.Query().Get("v")
	if id == "" {
		return "", fmt.Errorf("%w: %q", ErrMalformedURL, rawURL)
	}
	return id, nil
}

// Extract runs the full pipeline for one URL on behalf of userID. On any
// failure no song is persisted and the index is left untouched.
func (e *Extractor) Extract(ctx context.Context, rawURL, userID string) (*model.Song, error) {
	id, err := ParseVideoID(rawURL)
	if err != nil {
		return nil, err
	}

	// Checking the catalog first avoids re-downloading a URL that was
	// queued twice or is already present.
	exists, err := e.repo.SongExists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: existence check: %v", ErrPersistence, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyCataloged, id)
	}

	if err := os.MkdirAll(e.cfg.SongDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", ErrExternalTool, e.cfg.SongDir, err)
	}

	if err := e.runDownloader(ctx, rawURL, id); err != nil {
		return nil, err
	}

	song, err := e.composeSong(id, rawURL, userID)
	if err != nil {
		return nil, err
	}

	if err := e.repo.CreateSong(ctx, song); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Archiving is best effort; the song is already catalogued.
	audioPath := filepath.Join(e.cfg.SongDir, id+".mp3")
	if err := e.archive.StoreAudio(ctx, id, audioPath); err != nil {
		logger.Warn("Failed to archive audio file.",
			logger.String("id", id), logger.ErrorField(err))
	}

	if err := e.index.Refresh(ctx); err != nil {
		logger.Error("Index refresh after ingestion failed; serving stale snapshot.",
			logger.String("id", id), logger.ErrorField(err))
	}

	return song, nil
}

// downloaderArgs builds the yt-dlp invocation for one URL.
func (e *Extractor) downloaderArgs(rawURL, id string) []string {
	return []string{
		"--socket-timeout", strconv.Itoa(e.cfg.SocketTimeoutSec),
		"--retries", strconv.Itoa(e.cfg.Retries),
		"--extract-audio",
		"--audio-format", "mp3",
		"--embed-thumbnail",
		"--add-metadata",
		"--write-info-json",
		"--output", filepath.Join(e.cfg.SongDir, id+".%(ext)s"),
		rawURL,
	}
}

func (e *Extractor) runDownloader(ctx context.Context, rawURL, id string) error {
	cmd := exec.CommandContext(ctx, e.cfg.YtdlpPath, e.downloaderArgs(rawURL, id)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return fmt.Errorf("%w: %v: %s", ErrExternalTool, err, detail)
		}
		return fmt.Errorf("%w: %v", ErrExternalTool, err)
	}
	return nil
}

// composeSong merges embedded tags with the sidecar metadata file. The
// tag's artist wins when non-empty, otherwise the uploader name is used.
func (e *Extractor) composeSong(id, rawURL, userID string) (*model.Song, error) {
	audioPath := filepath.Join(e.cfg.SongDir, id+".mp3")

	tags, err := taglib.ReadTags(audioPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading tags from %s: %v", ErrMetadata, audioPath, err)
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("%w: no tags in %s", ErrMetadata, audioPath)
	}

	props, err := taglib.ReadProperties(audioPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading properties from %s: %v", ErrMetadata, audioPath, err)
	}

	data, err := e.readSidecar(id)
	if err != nil {
		return nil, err
	}

	tagArtist := firstTag(tags, taglib.Artist)
	artist := tagArtist
	if artist == "" {
		artist = data.Uploader
	}
	album := firstTag(tags, taglib.Album)

	return &model.Song{
		ID:            id,
		Title:         data.Title,
		Uploader:      data.Uploader,
		Artist:        artist,
		Genre:         firstTag(tags, taglib.Genre),
		Album:         album,
		URL:           rawURL,
		Duration:      props.Length.Seconds(),
		AgeLimit:      data.AgeLimit,
		WebpageURL:    data.WebpageURL,
		WasLive:       data.WasLive,
		UploadDate:    data.UploadDate,
		Filesize:      data.Filesize,
		AddedBy:       userID,
		DefaultSearch: fmt.Sprintf("%s %s %s", data.Title, tagArtist, album),
	}, nil
}

func (e *Extractor) readSidecar(id string) (*videoData, error) {
	path := filepath.Join(e.cfg.SongDir, id+".info.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading sidecar %s: %v", ErrMetadata, path, err)
	}

	var data videoData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: parsing sidecar %s: %v", ErrMetadata, path, err)
	}
	return &data, nil
}

func firstTag(tags map[string][]string, key string) string {
	if vals := tags[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}
