package interfaces

import (
	"context"

	"fyyur/internal/models"
)

type ShowRepository interface {
	Create(ctx context.Context, show *models.Show) error
	List(ctx context.Context) ([]models.ShowListing, error)
	ListByVenue(ctx context.Context, venueID int) ([]models.ShowListing, error)
	ListByArtist(ctx context.Context, artistID int) ([]models.ShowListing, error)
}
