package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fyyur/internal/interfaces"
	"fyyur/internal/models"
	"github.com/lib/pq"
)

type artistRepository struct {
	db *sql.DB
}

func NewArtistRepository(db *sql.DB) interfaces.ArtistRepository {
	return &artistRepository{db: db}
}

func (r *artistRepository) Create(ctx context.Context, artist *models.Artist) error {
	query := `
		INSERT INTO artists (
			name, city, state, phone, genres, facebook_link,
			image_link, website, seeking_venue, seeking_description
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	genres := artist.Genres
	if genres == nil {
		genres = []string{}
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, query,
			artist.Name,
			artist.City,
			artist.State,
			artist.Phone,
			pq.Array(genres),
			artist.FacebookLink,
			nullString(artist.ImageLink),
			nullString(artist.Website),
			artist.SeekingVenue,
			nullString(artist.SeekingDescription),
		).Scan(&artist.ID, &artist.CreatedAt, &artist.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create artist: %w", err)
		}
		return nil
	})
}

func (r *artistRepository) GetByID(ctx context.Context, id int) (*models.Artist, error) {
	query := `
		SELECT id, name, city, state, phone, genres, facebook_link,
		       image_link, website, seeking_venue, seeking_description, created_at, updated_at
		FROM artists
		WHERE id = $1
	`

	var artist models.Artist
	var imageLink, website, seekingDescription sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&artist.ID,
		&artist.Name,
		&artist.City,
		&artist.State,
		&artist.Phone,
		pq.Array(&artist.Genres),
		&artist.FacebookLink,
		&imageLink,
		&website,
		&artist.SeekingVenue,
		&seekingDescription,
		&artist.CreatedAt,
		&artist.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to get artist: %w", err)
	}

	artist.ImageLink = imageLink.String
	artist.Website = website.String
	artist.SeekingDescription = seekingDescription.String
	return &artist, nil
}

func (r *artistRepository) List(ctx context.Context) ([]models.ArtistSummary, error) {
	query := `
		SELECT id, name, 0
		FROM artists
		ORDER BY name, id
	`
	return r.querySummaries(ctx, "list artists", query)
}

func (r *artistRepository) SearchByName(ctx context.Context, term string, now time.Time) ([]models.ArtistSummary, error) {
	query := `
		SELECT a.id, a.name, COUNT(s.id)
		FROM artists a
		LEFT JOIN shows s ON s.artist_id = a.id AND s.start_time > $1
		WHERE a.name ILIKE $2 ESCAPE '\'
		GROUP BY a.id
		ORDER BY a.name, a.id
	`
	return r.querySummaries(ctx, "search artists", query, now, containsPattern(term))
}

func (r *artistRepository) ListRecent(ctx context.Context, limit int) ([]models.ArtistSummary, error) {
	query := `
		SELECT id, name, 0
		FROM artists
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	return r.querySummaries(ctx, "list recent artists", query, limit)
}

func (r *artistRepository) querySummaries(ctx context.Context, op string, query string, args ...any) ([]models.ArtistSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	defer rows.Close()

	artists := []models.ArtistSummary{}
	for rows.Next() {
		var a models.ArtistSummary
		if err := rows.Scan(&a.ID, &a.Name, &a.NumUpcomingShows); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating artists: %w", err)
	}

	return artists, nil
}

func (r *artistRepository) Update(ctx context.Context, artist *models.Artist) error {
	query := `
		UPDATE artists SET
			name = $1, city = $2, state = $3, phone = $4, genres = $5,
			facebook_link = $6, image_link = $7, website = $8, seeking_venue = $9,
			seeking_description = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING updated_at
	`

	genres := artist.Genres
	if genres == nil {
		genres = []string{}
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, query,
			artist.Name,
			artist.City,
			artist.State,
			artist.Phone,
			pq.Array(genres),
			artist.FacebookLink,
			nullString(artist.ImageLink),
			nullString(artist.Website),
			artist.SeekingVenue,
			nullString(artist.SeekingDescription),
			artist.ID,
		).Scan(&artist.UpdatedAt)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return sql.ErrNoRows
			}
			return fmt.Errorf("failed to update artist: %w", err)
		}
		return nil
	})
}

func (r *artistRepository) SetImageLink(ctx context.Context, id int, imageLink string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE artists SET image_link = $1, updated_at = NOW() WHERE id = $2`,
			nullString(imageLink), id)
		if err != nil {
			return fmt.Errorf("failed to set artist image: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to set artist image: %w", err)
		}
		if rowsAffected == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
}

// Delete follows the same rules as venue deletion: blocked by upcoming
// shows, past shows are removed with the artist.
func (r *artistRepository) Delete(ctx context.Context, id int, now time.Time) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var lockedID int
		err := tx.QueryRowContext(ctx, `SELECT id FROM artists WHERE id = $1 FOR UPDATE`, id).Scan(&lockedID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return sql.ErrNoRows
			}
			return fmt.Errorf("failed to lock artist: %w", err)
		}

		var upcoming int64
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM shows WHERE artist_id = $1 AND start_time > $2`,
			id, now).Scan(&upcoming)
		if err != nil {
			return fmt.Errorf("failed to check artist references: %w", err)
		}
		if upcoming > 0 {
			return &interfaces.DeletionBlockedError{
				Resource: "artist",
				References: map[string]int64{
					"upcoming_shows": upcoming,
				},
			}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM artists WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete artist: %w", err)
		}
		return nil
	})
}
