package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"fyyur/internal/interfaces"
	"fyyur/internal/models"
	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

var showListingColumns = []string{
	"id", "venue_id", "venue_name", "venue_image_link", "artist_id", "artist_name", "artist_image_link", "start_time",
}

func TestShowCreateCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	start := testNow.Add(48 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM venues WHERE id = \$1 FOR SHARE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT id FROM artists WHERE id = \$1 FOR SHARE`).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectQuery("INSERT INTO shows").
		WithArgs(1, 4, start).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(10, testNow))
	mock.ExpectCommit()

	show := &models.Show{VenueID: 1, ArtistID: 4, StartTime: start}
	if err := NewShowRepository(db).Create(context.Background(), show); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if show.ID != 10 {
		t.Fatalf("expected id 10, got %d", show.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestShowCreateUnknownArtistPersistsNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM venues WHERE id = \$1 FOR SHARE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT id FROM artists WHERE id = \$1 FOR SHARE`).
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err = NewShowRepository(db).Create(context.Background(), &models.Show{VenueID: 1, ArtistID: 999, StartTime: testNow})
	var ref *interfaces.InvalidReferenceError
	if !errors.As(err, &ref) || ref.Field != "artist_id" || ref.ID != 999 {
		t.Fatalf("expected artist_id reference error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestShowCreateUnknownVenuePersistsNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM venues WHERE id = \$1 FOR SHARE`).
		WithArgs(77).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err = NewShowRepository(db).Create(context.Background(), &models.Show{VenueID: 77, ArtistID: 1, StartTime: testNow})
	var ref *interfaces.InvalidReferenceError
	if !errors.As(err, &ref) || ref.Field != "venue_id" {
		t.Fatalf("expected venue_id reference error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestShowCreateMapsForeignKeyViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM venues WHERE id = \$1 FOR SHARE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`FROM artists WHERE id = \$1 FOR SHARE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectQuery("INSERT INTO shows").
		WillReturnError(&pq.Error{Code: "23503", Constraint: "shows_artist_id_fkey"})
	mock.ExpectRollback()

	err = NewShowRepository(db).Create(context.Background(), &models.Show{VenueID: 1, ArtistID: 2, StartTime: testNow})
	var ref *interfaces.InvalidReferenceError
	if !errors.As(err, &ref) || ref.Field != "artist_id" {
		t.Fatalf("expected artist_id reference error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestShowListByVenue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	past := testNow.Add(-24 * time.Hour)
	mock.ExpectQuery(`WHERE s.venue_id = \$1 ORDER BY s.start_time, s.id`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(showListingColumns).
			AddRow(1, 1, "The Musical Hop", nil, 4, "Guns N Petals", "https://img.example.com/gnp.jpg", past))

	shows, err := NewShowRepository(db).ListByVenue(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByVenue: %v", err)
	}
	if len(shows) != 1 {
		t.Fatalf("expected 1 show, got %d", len(shows))
	}
	s := shows[0]
	if s.ArtistName != "Guns N Petals" || s.VenueImageLink != "" || !s.StartTime.Equal(past) {
		t.Fatalf("unexpected listing %+v", s)
	}
}

func TestShowListEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`JOIN artists a ON a.id = s.artist_id\s+ORDER BY s.start_time`).
		WillReturnRows(sqlmock.NewRows(showListingColumns))

	shows, err := NewShowRepository(db).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if shows == nil || len(shows) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", shows)
	}
}
