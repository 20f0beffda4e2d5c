package handlers

import (
	"net/http"
	"strings"
	"testing"

	"fyyur/internal/interfaces"
)

func TestListShows(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(http.MethodGet, "/shows", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if got := strings.Count(w.Body.String(), "playing at"); got != 2 {
		t.Fatalf("expected 2 shows, got %d", got)
	}
}

func TestCreateShow(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.postForm("/shows/create", "artist_id=4&venue_id=1&start_time=2035-04-01+20%3A00%3A00")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d (%s)", w.Code, w.Body.String())
	}
	flashes := app.flashesOf(t, w)
	if len(flashes) != 1 || flashes[0] != "Show was successfully listed!" {
		t.Fatalf("unexpected flashes %v", flashes)
	}
	if len(app.shows.created) != 1 {
		t.Fatalf("expected one show created")
	}
	s := app.shows.created[0]
	if s.ArtistID != 4 || s.VenueID != 1 || s.StartTime.Year() != 2035 || s.StartTime.Hour() != 20 {
		t.Fatalf("unexpected show %+v", s)
	}
}

func TestCreateShowUnknownArtist(t *testing.T) {
	app := newTestApp(t, nil)
	app.shows.createErr = &interfaces.InvalidReferenceError{Field: "artist_id", ID: 999}

	w := app.postForm("/shows/create", "artist_id=999&venue_id=1&start_time=2035-04-01+20%3A00%3A00")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No record with this id exists.") {
		t.Fatalf("expected reference error in body")
	}
	if len(app.flashesOf(t, w)) != 0 {
		t.Fatalf("no flash expected on validation failure")
	}
}

func TestCreateShowInvalidInput(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.postForm("/shows/create", "artist_id=abc&start_time=tomorrow")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Must be a number.", "This field is required.", "Not a valid datetime value."} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in body", want)
		}
	}
	if len(app.shows.created) != 0 {
		t.Fatalf("nothing should be persisted")
	}
}
