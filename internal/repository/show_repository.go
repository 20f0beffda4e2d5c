package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fyyur/internal/interfaces"
	"fyyur/internal/models"
	"github.com/lib/pq"
)

const (
	showsVenueFKey  = "shows_venue_id_fkey"
	showsArtistFKey = "shows_artist_id_fkey"
)

type showRepository struct {
	db *sql.DB
}

func NewShowRepository(db *sql.DB) interfaces.ShowRepository {
	return &showRepository{db: db}
}

// Create inserts a show after checking, inside the same transaction, that
// its venue and artist exist. A missing reference yields
// *interfaces.InvalidReferenceError and nothing is written.
func (r *showRepository) Create(ctx context.Context, show *models.Show) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockForShare(ctx, tx, `SELECT id FROM venues WHERE id = $1 FOR SHARE`, show.VenueID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return &interfaces.InvalidReferenceError{Field: "venue_id", ID: show.VenueID}
			}
			return fmt.Errorf("check venue: %w", err)
		}
		if err := lockForShare(ctx, tx, `SELECT id FROM artists WHERE id = $1 FOR SHARE`, show.ArtistID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return &interfaces.InvalidReferenceError{Field: "artist_id", ID: show.ArtistID}
			}
			return fmt.Errorf("check artist: %w", err)
		}

		query := `INSERT INTO shows (venue_id, artist_id, start_time)
				  VALUES ($1, $2, $3)
				  RETURNING id, created_at`
		err := tx.QueryRowContext(ctx, query, show.VenueID, show.ArtistID, show.StartTime).
			Scan(&show.ID, &show.CreatedAt)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23503" {
				switch pqErr.Constraint {
				case showsVenueFKey:
					return &interfaces.InvalidReferenceError{Field: "venue_id", ID: show.VenueID}
				case showsArtistFKey:
					return &interfaces.InvalidReferenceError{Field: "artist_id", ID: show.ArtistID}
				}
			}
			return fmt.Errorf("create show: %w", err)
		}
		return nil
	})
}

func lockForShare(ctx context.Context, tx *sql.Tx, query string, id int) error {
	var found int
	return tx.QueryRowContext(ctx, query, id).Scan(&found)
}

const showListingSelect = `
	SELECT s.id, s.venue_id, v.name, v.image_link, s.artist_id, a.name, a.image_link, s.start_time
	FROM shows s
	JOIN venues v ON v.id = s.venue_id
	JOIN artists a ON a.id = s.artist_id
`

func (r *showRepository) List(ctx context.Context) ([]models.ShowListing, error) {
	query := showListingSelect + ` ORDER BY s.start_time, s.id`
	return r.queryListings(ctx, "list shows", query)
}

func (r *showRepository) ListByVenue(ctx context.Context, venueID int) ([]models.ShowListing, error) {
	query := showListingSelect + ` WHERE s.venue_id = $1 ORDER BY s.start_time, s.id`
	return r.queryListings(ctx, "list shows by venue", query, venueID)
}

func (r *showRepository) ListByArtist(ctx context.Context, artistID int) ([]models.ShowListing, error) {
	query := showListingSelect + ` WHERE s.artist_id = $1 ORDER BY s.start_time, s.id`
	return r.queryListings(ctx, "list shows by artist", query, artistID)
}

func (r *showRepository) queryListings(ctx context.Context, op string, query string, args ...any) ([]models.ShowListing, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	shows := []models.ShowListing{}
	for rows.Next() {
		var s models.ShowListing
		var venueImage, artistImage sql.NullString
		if err := rows.Scan(
			&s.ID,
			&s.VenueID,
			&s.VenueName,
			&venueImage,
			&s.ArtistID,
			&s.ArtistName,
			&artistImage,
			&s.StartTime,
		); err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		s.VenueImageLink = venueImage.String
		s.ArtistImageLink = artistImage.String
		shows = append(shows, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return shows, nil
}
