package interfaces

import (
	"context"
	"time"

	"fyyur/internal/models"
)

// ArtistRepository defines the interface for artist data operations
type ArtistRepository interface {
	Create(ctx context.Context, artist *models.Artist) error
	GetByID(ctx context.Context, id int) (*models.Artist, error)
	List(ctx context.Context) ([]models.ArtistSummary, error)
	SearchByName(ctx context.Context, term string, now time.Time) ([]models.ArtistSummary, error)
	ListRecent(ctx context.Context, limit int) ([]models.ArtistSummary, error)
	Update(ctx context.Context, artist *models.Artist) error
	SetImageLink(ctx context.Context, id int, imageLink string) error
	Delete(ctx context.Context, id int, now time.Time) error
}
