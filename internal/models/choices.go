package models

import (
	"regexp"
	"strings"
)

var Genres = []string{
	"Alternative",
	"Blues",
	"Classical",
	"Country",
	"Electronic",
	"Folk",
	"Funk",
	"Hip-Hop",
	"Heavy Metal",
	"Instrumental",
	"Jazz",
	"Musical Theatre",
	"Pop",
	"Punk",
	"R&B",
	"Reggae",
	"Rock n Roll",
	"Soul",
	"Other",
}

var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
	"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH",
	"OK", "OR", "MD", "MA", "MI", "MN", "MS", "MO", "PA", "RI",
	"SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI",
	"WY",
}

var (
	genreSet = toSet(Genres)
	stateSet = toSet(States)

	phonePattern = regexp.MustCompile(`^\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}$`)
)

func IsGenre(s string) bool { return genreSet[s] }

func IsState(s string) bool { return stateSet[s] }

func IsPhone(s string) bool { return phonePattern.MatchString(strings.TrimSpace(s)) }

// NormalizeGenres trims entries and drops blanks and duplicates, keeping
// first-seen order.
func NormalizeGenres(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, g := range in {
		g = strings.TrimSpace(g)
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out
}

func toSet(values []string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}
