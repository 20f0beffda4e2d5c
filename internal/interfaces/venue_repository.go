package interfaces

import (
	"context"
	"time"

	"fyyur/internal/models"
)

// VenueRepository defines the interface for venue data operations.
// Lookups of a missing id return sql.ErrNoRows.
type VenueRepository interface {
	Create(ctx context.Context, venue *models.Venue) error
	GetByID(ctx context.Context, id int) (*models.Venue, error)
	ListWithUpcoming(ctx context.Context, now time.Time) ([]models.VenueSummary, error)
	SearchByName(ctx context.Context, term string, now time.Time) ([]models.VenueSummary, error)
	ListRecent(ctx context.Context, limit int) ([]models.VenueSummary, error)
	Update(ctx context.Context, venue *models.Venue) error
	SetImageLink(ctx context.Context, id int, imageLink string) error
	Delete(ctx context.Context, id int, now time.Time) error
}
