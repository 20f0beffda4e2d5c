package models

import "time"

type Venue struct {
	ID                 int       `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	City               string    `json:"city" db:"city"`
	State              string    `json:"state" db:"state"`
	Address            string    `json:"address" db:"address"`
	Phone              string    `json:"phone" db:"phone"`
	Genres             []string  `json:"genres" db:"genres"`
	FacebookLink       string    `json:"facebook_link" db:"facebook_link"`
	ImageLink          string    `json:"image_link,omitempty" db:"image_link"`
	Website            string    `json:"website,omitempty" db:"website"`
	SeekingTalent      bool      `json:"seeking_talent" db:"seeking_talent"`
	SeekingDescription string    `json:"seeking_description,omitempty" db:"seeking_description"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// VenueRequest is the validated input of the create and edit venue forms.
type VenueRequest struct {
	Name               string   `form:"name" validate:"required,max=255"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,us_state"`
	Address            string   `form:"address" validate:"required,max=120"`
	Phone              string   `form:"phone" validate:"required,phone"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" validate:"required,url,max=120"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	Website            string   `form:"website_link" validate:"omitempty,url,max=120"`
	SeekingTalent      bool     `form:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" validate:"omitempty,max=500"`
}

// Apply copies the request fields onto v, leaving ID and timestamps untouched.
func (r VenueRequest) Apply(v *Venue) {
	v.Name = r.Name
	v.City = r.City
	v.State = r.State
	v.Address = r.Address
	v.Phone = r.Phone
	v.Genres = NormalizeGenres(r.Genres)
	v.FacebookLink = r.FacebookLink
	v.ImageLink = r.ImageLink
	v.Website = r.Website
	v.SeekingTalent = r.SeekingTalent
	v.SeekingDescription = r.SeekingDescription
}

// VenueRequestFrom pre-fills the edit form from a stored venue.
func VenueRequestFrom(v *Venue) VenueRequest {
	return VenueRequest{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		Genres:             v.Genres,
		FacebookLink:       v.FacebookLink,
		ImageLink:          v.ImageLink,
		Website:            v.Website,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

// VenueSummary is one row of the venue listing and search pages.
type VenueSummary struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	City             string `json:"-"`
	State            string `json:"-"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// VenueArea groups the venues located in one city/state pair.
type VenueArea struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

type VenueSearchResult struct {
	Count int            `json:"count"`
	Data  []VenueSummary `json:"data"`
}

type VenueDetail struct {
	Venue
	PastShows          []ShowListing `json:"past_shows"`
	UpcomingShows      []ShowListing `json:"upcoming_shows"`
	PastShowsCount     int           `json:"past_shows_count"`
	UpcomingShowsCount int           `json:"upcoming_shows_count"`
}
