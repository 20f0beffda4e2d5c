package models

import "time"

type Artist struct {
	ID                 int       `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	City               string    `json:"city" db:"city"`
	State              string    `json:"state" db:"state"`
	Phone              string    `json:"phone" db:"phone"`
	Genres             []string  `json:"genres" db:"genres"`
	FacebookLink       string    `json:"facebook_link" db:"facebook_link"`
	ImageLink          string    `json:"image_link,omitempty" db:"image_link"`
	Website            string    `json:"website,omitempty" db:"website"`
	SeekingVenue       bool      `json:"seeking_venue" db:"seeking_venue"`
	SeekingDescription string    `json:"seeking_description,omitempty" db:"seeking_description"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

type ArtistRequest struct {
	Name               string   `form:"name" validate:"required,max=255"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,us_state"`
	Phone              string   `form:"phone" validate:"required,phone"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" validate:"required,url,max=120"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	Website            string   `form:"website_link" validate:"omitempty,url,max=120"`
	SeekingVenue       bool     `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" validate:"omitempty,max=500"`
}

func (r ArtistRequest) Apply(a *Artist) {
	a.Name = r.Name
	a.City = r.City
	a.State = r.State
	a.Phone = r.Phone
	a.Genres = NormalizeGenres(r.Genres)
	a.FacebookLink = r.FacebookLink
	a.ImageLink = r.ImageLink
	a.Website = r.Website
	a.SeekingVenue = r.SeekingVenue
	a.SeekingDescription = r.SeekingDescription
}

func ArtistRequestFrom(a *Artist) ArtistRequest {
	return ArtistRequest{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Genres:             a.Genres,
		FacebookLink:       a.FacebookLink,
		ImageLink:          a.ImageLink,
		Website:            a.Website,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

type ArtistSummary struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

type ArtistSearchResult struct {
	Count int             `json:"count"`
	Data  []ArtistSummary `json:"data"`
}

type ArtistDetail struct {
	Artist
	PastShows          []ShowListing `json:"past_shows"`
	UpcomingShows      []ShowListing `json:"upcoming_shows"`
	PastShowsCount     int           `json:"past_shows_count"`
	UpcomingShowsCount int           `json:"upcoming_shows_count"`
}
