package ingest

import "errors"

// Failure classes for the extraction pipeline. Each aborts the ingestion of
// one queue entry; none of them triggers an automatic retry.
var (
	// ErrMalformedURL means no video id could be parsed out of the URL.
	ErrMalformedURL = errors.New("no parseable video id in url")
	// ErrAlreadyCataloged means the derived id is already in the catalog;
	// the external tool is not invoked.
	ErrAlreadyCataloged = errors.New("song already catalogued")
	// ErrExternalTool means the downloader exited non-zero or is missing.
	// Partially written files are left on disk for operator cleanup.
	ErrExternalTool = errors.New("external downloader failed")
	// ErrMetadata means the produced file's tags or sidecar were unreadable.
	ErrMetadata = errors.New("metadata extraction failure")
	// ErrPersistence means the catalog insert failed; the index is not
	// refreshed so store and index stay consistent.
	ErrPersistence = errors.New("failed to persist song")
)
