package models

import "time"

type Show struct {
	ID        int       `json:"id" db:"id"`
	VenueID   int       `json:"venue_id" db:"venue_id"`
	ArtistID  int       `json:"artist_id" db:"artist_id"`
	StartTime time.Time `json:"start_time" db:"start_time"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type ShowRequest struct {
	VenueID   int       `form:"venue_id" validate:"required,gt=0"`
	ArtistID  int       `form:"artist_id" validate:"required,gt=0"`
	StartTime time.Time `form:"start_time" validate:"required"`
}

// ShowListing is a show joined with the names and images of its venue and artist.
type ShowListing struct {
	ID              int       `json:"id"`
	VenueID         int       `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	VenueImageLink  string    `json:"venue_image_link,omitempty"`
	ArtistID        int       `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link,omitempty"`
	StartTime       time.Time `json:"start_time"`
}

// IsUpcoming reports whether the show starts strictly after now.
func (s ShowListing) IsUpcoming(now time.Time) bool {
	return s.StartTime.After(now)
}
