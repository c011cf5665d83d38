package model

import "github.com/google/uuid"

// Song represents one catalogued audio track. The JSON shape matches the
// persisted row exactly; other components rely on it as the wire contract.
type Song struct {
	// ID is derived from the source URL and never changes once created.
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Uploader      string  `json:"uploader"`
	Artist        string  `json:"artist"`
	Genre         string  `json:"genre"`
	Album         string  `json:"album"`
	URL           string  `json:"url"`
	Duration      float64 `json:"duration"` // seconds
	AgeLimit      int     `json:"age_limit"`
	WebpageURL    string  `json:"webpage_url"`
	WasLive       bool    `json:"was_live"`
	UploadDate    string  `json:"upload_date"`
	Filesize      int64   `json:"filesize"`
	AddedBy       string  `json:"added_by"`
	DefaultSearch string  `json:"default_search"` // "title artist album"
}

// QueueEntry is one pending download request. It lives from enqueue until
// the worker pops it; a failed extraction does not recreate it.
type QueueEntry struct {
	ID          uuid.UUID `json:"id"`
	URL         string    `json:"url"`
	RequestedBy string    `json:"requested_by"`
}

// SearchResult pairs a song with its similarity score for a query.
type SearchResult struct {
	Song  Song    `json:"song"`
	Score float32 `json:"score"`
}
