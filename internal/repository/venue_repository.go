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

type venueRepository struct {
	db *sql.DB
}

func NewVenueRepository(db *sql.DB) interfaces.VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) Create(ctx context.Context, venue *models.Venue) error {
	query := `INSERT INTO venues (
				name, city, state, address, phone, genres, facebook_link,
				image_link, website, seeking_talent, seeking_description
			  ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING id, created_at, updated_at`

	genres := venue.Genres
	if genres == nil {
		genres = []string{}
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, query,
			venue.Name,
			venue.City,
			venue.State,
			venue.Address,
			venue.Phone,
			pq.Array(genres),
			venue.FacebookLink,
			nullString(venue.ImageLink),
			nullString(venue.Website),
			venue.SeekingTalent,
			nullString(venue.SeekingDescription),
		).Scan(&venue.ID, &venue.CreatedAt, &venue.UpdatedAt)
		if err != nil {
			return fmt.Errorf("create venue: %w", err)
		}
		return nil
	})
}

func (r *venueRepository) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	query := `SELECT id, name, city, state, address, phone, genres, facebook_link,
			  image_link, website, seeking_talent, seeking_description, created_at, updated_at
			  FROM venues WHERE id = $1`

	var venue models.Venue
	var imageLink, website, seekingDescription sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&venue.ID,
		&venue.Name,
		&venue.City,
		&venue.State,
		&venue.Address,
		&venue.Phone,
		pq.Array(&venue.Genres),
		&venue.FacebookLink,
		&imageLink,
		&website,
		&venue.SeekingTalent,
		&seekingDescription,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get venue by id: %w", err)
	}

	venue.ImageLink = imageLink.String
	venue.Website = website.String
	venue.SeekingDescription = seekingDescription.String
	return &venue, nil
}

// ListWithUpcoming returns every venue with its number of shows starting
// after now, ordered by city, state and name.
func (r *venueRepository) ListWithUpcoming(ctx context.Context, now time.Time) ([]models.VenueSummary, error) {
	query := `SELECT v.id, v.name, v.city, v.state, COUNT(s.id)
			  FROM venues v
			  LEFT JOIN shows s ON s.venue_id = v.id AND s.start_time > $1
			  GROUP BY v.id
			  ORDER BY v.city, v.state, v.name, v.id`

	return r.querySummaries(ctx, "list venues", query, now)
}

func (r *venueRepository) SearchByName(ctx context.Context, term string, now time.Time) ([]models.VenueSummary, error) {
	query := `SELECT v.id, v.name, v.city, v.state, COUNT(s.id)
			  FROM venues v
			  LEFT JOIN shows s ON s.venue_id = v.id AND s.start_time > $1
			  WHERE v.name ILIKE $2 ESCAPE '\'
			  GROUP BY v.id
			  ORDER BY v.name, v.id`

	return r.querySummaries(ctx, "search venues", query, now, containsPattern(term))
}

func (r *venueRepository) ListRecent(ctx context.Context, limit int) ([]models.VenueSummary, error) {
	query := `SELECT id, name, city, state, 0
			  FROM venues ORDER BY created_at DESC, id DESC LIMIT $1`

	return r.querySummaries(ctx, "list recent venues", query, limit)
}

func (r *venueRepository) querySummaries(ctx context.Context, op string, query string, args ...any) ([]models.VenueSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	venues := []models.VenueSummary{}
	for rows.Next() {
		var v models.VenueSummary
		if err := rows.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.NumUpcomingShows); err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return venues, nil
}

func (r *venueRepository) Update(ctx context.Context, venue *models.Venue) error {
	query := `UPDATE venues SET
				name = $1, city = $2, state = $3, address = $4, phone = $5, genres = $6,
				facebook_link = $7, image_link = $8, website = $9, seeking_talent = $10,
				seeking_description = $11, updated_at = NOW()
			  WHERE id = $12
			  RETURNING updated_at`

	genres := venue.Genres
	if genres == nil {
		genres = []string{}
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, query,
			venue.Name,
			venue.City,
			venue.State,
			venue.Address,
			venue.Phone,
			pq.Array(genres),
			venue.FacebookLink,
			nullString(venue.ImageLink),
			nullString(venue.Website),
			venue.SeekingTalent,
			nullString(venue.SeekingDescription),
			venue.ID,
		).Scan(&venue.UpdatedAt)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return sql.ErrNoRows
			}
			return fmt.Errorf("update venue: %w", err)
		}
		return nil
	})
}

func (r *venueRepository) SetImageLink(ctx context.Context, id int, imageLink string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE venues SET image_link = $1, updated_at = NOW() WHERE id = $2`,
			nullString(imageLink), id)
		if err != nil {
			return fmt.Errorf("set venue image: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("check rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
}

// Delete removes a venue together with its past shows. A venue that still
// has shows starting after now is not deleted and a
// *interfaces.DeletionBlockedError is returned instead.
func (r *venueRepository) Delete(ctx context.Context, id int, now time.Time) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var lockedID int
		err := tx.QueryRowContext(ctx, `SELECT id FROM venues WHERE id = $1 FOR UPDATE`, id).Scan(&lockedID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return sql.ErrNoRows
			}
			return fmt.Errorf("lock venue: %w", err)
		}

		var upcoming int64
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM shows WHERE venue_id = $1 AND start_time > $2`,
			id, now).Scan(&upcoming)
		if err != nil {
			return fmt.Errorf("check venue references: %w", err)
		}
		if upcoming > 0 {
			return &interfaces.DeletionBlockedError{
				Resource: "venue",
				References: map[string]int64{
					"upcoming_shows": upcoming,
				},
			}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete venue: %w", err)
		}
		return nil
	})
}
