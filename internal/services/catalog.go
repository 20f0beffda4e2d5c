package services

import (
	"context"
	"fmt"
	"time"

	"fyyur/internal/interfaces"
	"fyyur/internal/models"
)

// RecentLimit is the number of venues and artists shown on the home page.
const RecentLimit = 10

// RecentListings holds the most recently created venues and artists.
type RecentListings struct {
	Venues  []models.VenueSummary
	Artists []models.ArtistSummary
}

// Catalog assembles the pages of the site from the repositories. Every
// method reads the clock once, so a single page never mixes two values of
// now when it splits shows into past and upcoming.
type Catalog struct {
	venues  interfaces.VenueRepository
	artists interfaces.ArtistRepository
	shows   interfaces.ShowRepository
	now     func() time.Time
}

func NewCatalog(venues interfaces.VenueRepository, artists interfaces.ArtistRepository, shows interfaces.ShowRepository) *Catalog {
	return &Catalog{
		venues:  venues,
		artists: artists,
		shows:   shows,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// VenueAreas returns all venues grouped by city and state. The repository
// orders rows by city, state and name, so a group is a run of equal keys.
func (c *Catalog) VenueAreas(ctx context.Context) ([]models.VenueArea, error) {
	venues, err := c.venues.ListWithUpcoming(ctx, c.now())
	if err != nil {
		return nil, err
	}

	areas := []models.VenueArea{}
	for _, v := range venues {
		n := len(areas)
		if n == 0 || areas[n-1].City != v.City || areas[n-1].State != v.State {
			areas = append(areas, models.VenueArea{City: v.City, State: v.State})
			n++
		}
		areas[n-1].Venues = append(areas[n-1].Venues, v)
	}
	return areas, nil
}

func (c *Catalog) SearchVenues(ctx context.Context, term string) (*models.VenueSearchResult, error) {
	venues, err := c.venues.SearchByName(ctx, term, c.now())
	if err != nil {
		return nil, err
	}
	return &models.VenueSearchResult{Count: len(venues), Data: venues}, nil
}

func (c *Catalog) SearchArtists(ctx context.Context, term string) (*models.ArtistSearchResult, error) {
	artists, err := c.artists.SearchByName(ctx, term, c.now())
	if err != nil {
		return nil, err
	}
	return &models.ArtistSearchResult{Count: len(artists), Data: artists}, nil
}

// VenueDetail returns the venue with its shows split at now. A missing
// venue is reported as sql.ErrNoRows.
func (c *Catalog) VenueDetail(ctx context.Context, id int) (*models.VenueDetail, error) {
	venue, err := c.venues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := c.shows.ListByVenue(ctx, id)
	if err != nil {
		return nil, err
	}

	past, upcoming := partitionShows(shows, c.now())
	return &models.VenueDetail{
		Venue:              *venue,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

func (c *Catalog) ArtistDetail(ctx context.Context, id int) (*models.ArtistDetail, error) {
	artist, err := c.artists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := c.shows.ListByArtist(ctx, id)
	if err != nil {
		return nil, err
	}

	past, upcoming := partitionShows(shows, c.now())
	return &models.ArtistDetail{
		Artist:             *artist,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

func (c *Catalog) Artists(ctx context.Context) ([]models.ArtistSummary, error) {
	return c.artists.List(ctx)
}

func (c *Catalog) Shows(ctx context.Context) ([]models.ShowListing, error) {
	return c.shows.List(ctx)
}

func (c *Catalog) RecentListings(ctx context.Context) (*RecentListings, error) {
	venues, err := c.venues.ListRecent(ctx, RecentLimit)
	if err != nil {
		return nil, err
	}
	artists, err := c.artists.ListRecent(ctx, RecentLimit)
	if err != nil {
		return nil, err
	}
	return &RecentListings{Venues: venues, Artists: artists}, nil
}

func (c *Catalog) Venue(ctx context.Context, id int) (*models.Venue, error) {
	return c.venues.GetByID(ctx, id)
}

func (c *Catalog) Artist(ctx context.Context, id int) (*models.Artist, error) {
	return c.artists.GetByID(ctx, id)
}

func (c *Catalog) CreateVenue(ctx context.Context, venue *models.Venue) error {
	return c.venues.Create(ctx, venue)
}

func (c *Catalog) UpdateVenue(ctx context.Context, venue *models.Venue) error {
	return c.venues.Update(ctx, venue)
}

func (c *Catalog) SetVenueImage(ctx context.Context, id int, link string) error {
	return c.venues.SetImageLink(ctx, id, link)
}

// DeleteVenue removes a venue and its past shows. Upcoming shows block the
// delete with *interfaces.DeletionBlockedError.
func (c *Catalog) DeleteVenue(ctx context.Context, id int) error {
	return c.venues.Delete(ctx, id, c.now())
}

func (c *Catalog) CreateArtist(ctx context.Context, artist *models.Artist) error {
	return c.artists.Create(ctx, artist)
}

func (c *Catalog) UpdateArtist(ctx context.Context, artist *models.Artist) error {
	return c.artists.Update(ctx, artist)
}

func (c *Catalog) SetArtistImage(ctx context.Context, id int, link string) error {
	return c.artists.SetImageLink(ctx, id, link)
}

func (c *Catalog) DeleteArtist(ctx context.Context, id int) error {
	return c.artists.Delete(ctx, id, c.now())
}

func (c *Catalog) CreateShow(ctx context.Context, req models.ShowRequest) (*models.Show, error) {
	show := &models.Show{
		VenueID:   req.VenueID,
		ArtistID:  req.ArtistID,
		StartTime: req.StartTime.UTC(),
	}
	if err := c.shows.Create(ctx, show); err != nil {
		return nil, fmt.Errorf("create show: %w", err)
	}
	return show, nil
}

// partitionShows splits shows, already ordered by start time, into those
// at or before now and those strictly after it.
func partitionShows(shows []models.ShowListing, now time.Time) (past, upcoming []models.ShowListing) {
	past = []models.ShowListing{}
	upcoming = []models.ShowListing{}
	for _, s := range shows {
		if s.IsUpcoming(now) {
			upcoming = append(upcoming, s)
		} else {
			past = append(past, s)
		}
	}
	return past, upcoming
}
