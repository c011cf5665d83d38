package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/notseanray/seanifyv2-backend/model"
)

// SongRepository defines the interface for catalog data operations.
type SongRepository interface {
	// CreateSong inserts a song as a single atomic record.
	CreateSong(ctx context.Context, song *model.Song) error
	// GetAllSongs returns every catalogued song.
	GetAllSongs(ctx context.Context) ([]model.Song, error)
	// GetSongByID returns the song with the given id, or (nil, nil) when absent.
	GetSongByID(ctx context.Context, id string) (*model.Song, error)
	// SongExists reports whether a song with the given id is already catalogued.
	SongExists(ctx context.Context, id string) (bool, error)
}

// mysqlSongRepository implements SongRepository for MySQL.
type mysqlSongRepository struct {
	DB *sql.DB
}

// NewMySQLSongRepository creates a new instance of mysqlSongRepository.
func NewMySQLSongRepository(database *sql.DB) SongRepository {
	return &mysqlSongRepository{DB: database}
}

const songColumns = `id, title, uploader, artist, genre, album, url, duration,
	age_limit, webpage_url, was_live, upload_date, filesize, added_by, default_search`

// CreateSong adds a new song to the database.
func (r *mysqlSongRepository) CreateSong(ctx context.Context, song *model.Song) error {
	query := `INSERT INTO songs (` + songColumns + `)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := r.DB.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for CreateSong: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		song.ID, song.Title, song.Uploader, song.Artist, song.Genre, song.Album,
		song.URL, song.Duration, song.AgeLimit, song.WebpageURL, song.WasLive,
		song.UploadDate, song.Filesize, song.AddedBy, song.DefaultSearch)
	if err != nil {
		return fmt.Errorf("failed to execute CreateSong: %w", err)
	}
	return nil
}

// GetAllSongs retrieves all songs from the database.
func (r *mysqlSongRepository) GetAllSongs(ctx context.Context) ([]model.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	songs := make([]model.Song, 0)
	for rows.Next() {
		var song model.Song
		if err := scanSong(rows, &song); err != nil {
			return nil, fmt.Errorf("failed to scan song in GetAllSongs: %w", err)
		}
		songs = append(songs, song)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in GetAllSongs: %w", err)
	}

	return songs, nil
}

// GetSongByID retrieves a song by its ID.
func (r *mysqlSongRepository) GetSongByID(ctx context.Context, id string) (*model.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE id = ?`
	row := r.DB.QueryRowContext(ctx, query, id)

	song := &model.Song{}
	err := scanSong(row, song)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Song not found
		}
		return nil, fmt.Errorf("failed to scan song by ID %s: %w", id, err)
	}
	return song, nil
}

// SongExists checks whether a song with the given ID is already stored.
func (r *mysqlSongRepository) SongExists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM songs WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check song existence for ID %s: %w", id, err)
	}
	return count > 0, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSong(s scanner, song *model.Song) error {
	return s.Scan(&song.ID, &song.Title, &song.Uploader, &song.Artist, &song.Genre,
		&song.Album, &song.URL, &song.Duration, &song.AgeLimit, &song.WebpageURL,
		&song.WasLive, &song.UploadDate, &song.Filesize, &song.AddedBy, &song.DefaultSearch)
}
