package handlers

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fyyur/internal/interfaces"
	"fyyur/internal/models"
	"fyyur/internal/services"
	"fyyur/internal/web"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
)

type mockVenueRepo struct {
	venues    map[int]*models.Venue
	created   []*models.Venue
	createErr error
	deleteErr error
	deleted   []int
	images    map[int]string
}

var _ interfaces.VenueRepository = (*mockVenueRepo)(nil)

func (m *mockVenueRepo) Create(ctx context.Context, venue *models.Venue) error {
	if m.createErr != nil {
		return m.createErr
	}
	venue.ID = 100 + len(m.created)
	m.created = append(m.created, venue)
	return nil
}
func (m *mockVenueRepo) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	if v, ok := m.venues[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}
func (m *mockVenueRepo) ListWithUpcoming(ctx context.Context, now time.Time) ([]models.VenueSummary, error) {
	return []models.VenueSummary{}, nil
}
func (m *mockVenueRepo) SearchByName(ctx context.Context, term string, now time.Time) ([]models.VenueSummary, error) {
	out := []models.VenueSummary{}
	for _, v := range m.venues {
		if strings.Contains(strings.ToLower(v.Name), strings.ToLower(term)) {
			out = append(out, models.VenueSummary{ID: v.ID, Name: v.Name, City: v.City, State: v.State})
		}
	}
	return out, nil
}
func (m *mockVenueRepo) ListRecent(ctx context.Context, limit int) ([]models.VenueSummary, error) {
	return []models.VenueSummary{}, nil
}
func (m *mockVenueRepo) Update(ctx context.Context, venue *models.Venue) error {
	if _, ok := m.venues[venue.ID]; !ok {
		return sql.ErrNoRows
	}
	m.venues[venue.ID] = venue
	return nil
}
func (m *mockVenueRepo) SetImageLink(ctx context.Context, id int, imageLink string) error {
	if _, ok := m.venues[id]; !ok {
		return sql.ErrNoRows
	}
	if m.images == nil {
		m.images = map[int]string{}
	}
	m.images[id] = imageLink
	return nil
}
func (m *mockVenueRepo) Delete(ctx context.Context, id int, now time.Time) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.venues[id]; !ok {
		return sql.ErrNoRows
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type mockArtistRepo struct {
	artists   map[int]*models.Artist
	created   []*models.Artist
	deleteErr error
}

var _ interfaces.ArtistRepository = (*mockArtistRepo)(nil)

func (m *mockArtistRepo) Create(ctx context.Context, artist *models.Artist) error {
	artist.ID = 200 + len(m.created)
	m.created = append(m.created, artist)
	return nil
}
func (m *mockArtistRepo) GetByID(ctx context.Context, id int) (*models.Artist, error) {
	if a, ok := m.artists[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}
func (m *mockArtistRepo) List(ctx context.Context) ([]models.ArtistSummary, error) {
	out := []models.ArtistSummary{}
	for _, a := range m.artists {
		out = append(out, models.ArtistSummary{ID: a.ID, Name: a.Name})
	}
	return out, nil
}
func (m *mockArtistRepo) SearchByName(ctx context.Context, term string, now time.Time) ([]models.ArtistSummary, error) {
	out := []models.ArtistSummary{}
	for _, a := range m.artists {
		if strings.Contains(strings.ToLower(a.Name), strings.ToLower(term)) {
			out = append(out, models.ArtistSummary{ID: a.ID, Name: a.Name})
		}
	}
	return out, nil
}
func (m *mockArtistRepo) ListRecent(ctx context.Context, limit int) ([]models.ArtistSummary, error) {
	return []models.ArtistSummary{}, nil
}
func (m *mockArtistRepo) Update(ctx context.Context, artist *models.Artist) error {
	if _, ok := m.artists[artist.ID]; !ok {
		return sql.ErrNoRows
	}
	m.artists[artist.ID] = artist
	return nil
}
func (m *mockArtistRepo) SetImageLink(ctx context.Context, id int, imageLink string) error {
	return nil
}
func (m *mockArtistRepo) Delete(ctx context.Context, id int, now time.Time) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.artists[id]; !ok {
		return sql.ErrNoRows
	}
	return nil
}

type mockShowRepo struct {
	shows     []models.ShowListing
	created   []*models.Show
	createErr error
}

var _ interfaces.ShowRepository = (*mockShowRepo)(nil)

func (m *mockShowRepo) Create(ctx context.Context, show *models.Show) error {
	if m.createErr != nil {
		return m.createErr
	}
	show.ID = len(m.created) + 1
	m.created = append(m.created, show)
	return nil
}
func (m *mockShowRepo) List(ctx context.Context) ([]models.ShowListing, error) { return m.shows, nil }
func (m *mockShowRepo) ListByVenue(ctx context.Context, venueID int) ([]models.ShowListing, error) {
	out := []models.ShowListing{}
	for _, s := range m.shows {
		if s.VenueID == venueID {
			out = append(out, s)
		}
	}
	return out, nil
}
func (m *mockShowRepo) ListByArtist(ctx context.Context, artistID int) ([]models.ShowListing, error) {
	out := []models.ShowListing{}
	for _, s := range m.shows {
		if s.ArtistID == artistID {
			out = append(out, s)
		}
	}
	return out, nil
}

type mockImageStore struct {
	uploads []string
}

func (m *mockImageStore) Upload(ctx context.Context, prefix, filename string, body io.Reader) (string, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".png") {
		return "", services.ErrUnsupportedImage
	}
	link := "https://cdn.example.com/" + prefix + "/" + filename
	m.uploads = append(m.uploads, link)
	return link, nil
}

type testApp struct {
	router  *chi.Mux
	store   *sessions.CookieStore
	venues  *mockVenueRepo
	artists *mockArtistRepo
	shows   *mockShowRepo
}

func newTestApp(t *testing.T, images services.ImageStore) *testApp {
	t.Helper()

	views, err := web.LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}

	app := &testApp{
		venues: &mockVenueRepo{venues: map[int]*models.Venue{
			1: {ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA", Genres: []string{"Jazz"}},
		}},
		artists: &mockArtistRepo{artists: map[int]*models.Artist{
			4: {ID: 4, Name: "Guns N Petals", City: "San Francisco", State: "CA", Genres: []string{"Rock n Roll"}},
		}},
		shows: &mockShowRepo{shows: []models.ShowListing{
			{ID: 1, VenueID: 1, VenueName: "The Musical Hop", ArtistID: 4, ArtistName: "Guns N Petals", StartTime: time.Now().Add(-48 * time.Hour)},
			{ID: 2, VenueID: 1, VenueName: "The Musical Hop", ArtistID: 4, ArtistName: "Guns N Petals", StartTime: time.Now().Add(48 * time.Hour)},
		}},
	}

	catalog := services.NewCatalog(app.venues, app.artists, app.shows)
	app.store = NewSessionStore([]byte("test-session-key-0123456789abcdef"))
	base := NewBaseHandler(catalog, views, images, app.store, nil)
	venues := NewVenueHandler(base)
	artists := NewArtistHandler(base)
	shows := NewShowHandler(base)
	home := NewHomeHandler(base)

	r := chi.NewRouter()
	r.NotFound(base.NotFound)
	r.Get("/", home.Index)
	r.Route("/venues", func(r chi.Router) {
		r.Get("/", venues.List)
		r.Post("/search", venues.Search)
		r.Get("/create", venues.CreateForm)
		r.Post("/create", venues.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", venues.Get)
			r.Delete("/", venues.Delete)
			r.Post("/delete", venues.DeleteForm)
			r.Get("/edit", venues.EditForm)
			r.Post("/edit", venues.Update)
			r.Post("/image", venues.UploadImage)
		})
	})
	r.Route("/artists", func(r chi.Router) {
		r.Get("/", artists.List)
		r.Post("/search", artists.Search)
		r.Get("/create", artists.CreateForm)
		r.Post("/create", artists.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", artists.Get)
			r.Delete("/", artists.Delete)
			r.Post("/delete", artists.DeleteForm)
			r.Get("/edit", artists.EditForm)
			r.Post("/edit", artists.Update)
			r.Post("/image", artists.UploadImage)
		})
	})
	r.Route("/shows", func(r chi.Router) {
		r.Get("/", shows.List)
		r.Get("/create", shows.CreateForm)
		r.Post("/create", shows.Create)
	})
	app.router = r
	return app
}

func (a *testApp) do(method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) postForm(target, form string) *httptest.ResponseRecorder {
	return a.do(http.MethodPost, target, strings.NewReader(form), "application/x-www-form-urlencoded")
}

// flashesOf returns the flashes stored in the session cookie of a response.
func (a *testApp) flashesOf(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name != SessionName || c.Value == "" {
			continue
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(c)
		session, err := a.store.Get(req, SessionName)
		if err != nil {
			t.Fatalf("decode session cookie: %v", err)
		}
		var out []string
		for _, f := range session.Flashes() {
			out = append(out, f.(string))
		}
		return out
	}
	return nil
}

// sessionCookie returns a session cookie signed by the app's store and
// carrying msgs as pending flashes.
func (a *testApp) sessionCookie(t *testing.T, msgs ...string) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	session, err := a.store.New(req, SessionName)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	for _, m := range msgs {
		session.AddFlash(m)
	}
	if err := session.Save(req, w); err != nil {
		t.Fatalf("save session: %v", err)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionName {
			return c
		}
	}
	t.Fatal("no session cookie written")
	return nil
}
