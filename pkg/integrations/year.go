package integrations

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/LopezVillaFrancisco/wollen-music-app/pkg/domain"
)

var yearPattern = regexp.MustCompile(`(19|20)\d{2}`)

// dateLayouts are the date shapes the catalog and common feeds use, tried in order
// when the string carries no 19xx/20xx year.
var dateLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02",
	"2006-01",
	"2006",
	"02 Jan 2006, 15:04",
	"2 Jan 2006, 15:04",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006/01/02",
	"01/02/2006",
}

// ExtractYear finds a release year in a free-form date string. A four digit
// 19xx/20xx run anywhere in the string wins; otherwise the string must parse as
// one of the known date layouts.
func ExtractYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if m := yearPattern.FindString(s); m != "" {
		year, err := strconv.Atoi(m)
		if err == nil {
			return year, true
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Year(), true
		}
	}
	return 0, false
}

// releaseYear applies the lookup fallbacks: the track wiki publication date, then
// the album release date, then the album wiki publication date.
func releaseYear(info *domain.TrackInfo) (int, bool) {
	if info == nil {
		return 0, false
	}

	candidates := make([]string, 0, 3)
	if info.Wiki != nil {
		candidates = append(candidates, info.Wiki.Published)
	}
	if info.Album != nil {
		candidates = append(candidates, info.Album.ReleaseDate)
		if info.Album.Wiki != nil {
			candidates = append(candidates, info.Album.Wiki.Published)
		}
	}

	for _, c := range candidates {
		if year, ok := ExtractYear(c); ok && year > 0 {
			return year, true
		}
	}
	return 0, false
}
