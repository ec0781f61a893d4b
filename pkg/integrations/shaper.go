package integrations

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/LopezVillaFrancisco/wollen-music-app/pkg/domain"
)

// artistField decodes the catalog's artist value, which is a plain name in some
// methods and an object in others, into the name alone.
type artistField string

func (a *artistField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*a = ""
		return nil
	case data[0] == '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*a = artistField(name)
		return nil
	}

	var obj struct {
		Name string `json:"name"`
		Text string `json:"#text"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Name == "" {
		obj.Name = obj.Text
	}
	*a = artistField(obj.Name)
	return nil
}

// oneOrMany decodes a collection the catalog may send as an array, a bare object
// when there is exactly one match, or an empty string when there are none.
type oneOrMany[T any] []T

func (o *oneOrMany[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) || data[0] == '"' {
		*o = oneOrMany[T]{}
		return nil
	}

	if data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		if items == nil {
			items = []T{}
		}
		*o = items
		return nil
	}

	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	*o = oneOrMany[T]{item}
	return nil
}

// flexString accepts either a JSON string or a JSON number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(data)
	return nil
}

// number parses the value, treating empty or malformed input as zero.
func (f flexString) number() float64 {
	s := strings.TrimSpace(string(f))
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}

// seconds converts a millisecond value to seconds.
func (f flexString) seconds() float64 {
	return f.number() / 1000
}

type lastFMImage struct {
	Text string `json:"#text"`
	Size string `json:"size"`
}

type lastFMWiki struct {
	Published string `json:"published"`
	Summary   string `json:"summary"`
	Content   string `json:"content"`
}

type lastFMTag struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type lastFMTrack struct {
	Name      string        `json:"name"`
	Artist    artistField   `json:"artist"`
	Duration  flexString    `json:"duration"`
	Playcount flexString    `json:"playcount"`
	Listeners flexString    `json:"listeners"`
	URL       string        `json:"url"`
	MBID      string        `json:"mbid"`
	Image     []lastFMImage `json:"image"`
	Attr      *struct {
		Rank flexString `json:"rank"`
	} `json:"@attr"`
}

type lastFMTrackInfo struct {
	Name      string      `json:"name"`
	Artist    artistField `json:"artist"`
	Duration  flexString  `json:"duration"`
	Playcount flexString  `json:"playcount"`
	Listeners flexString  `json:"listeners"`
	URL       string      `json:"url"`
	MBID      string      `json:"mbid"`
	Album     *struct {
		Artist      artistField   `json:"artist"`
		Title       string        `json:"title"`
		MBID        string        `json:"mbid"`
		URL         string        `json:"url"`
		Image       []lastFMImage `json:"image"`
		ReleaseDate string        `json:"releasedate"`
		Wiki        *lastFMWiki   `json:"wiki"`
	} `json:"album"`
	TopTags struct {
		Tag oneOrMany[lastFMTag] `json:"tag"`
	} `json:"toptags"`
	Wiki *lastFMWiki `json:"wiki"`
}

type lastFMAlbum struct {
	Name      string        `json:"name"`
	Artist    artistField   `json:"artist"`
	MBID      string        `json:"mbid"`
	URL       string        `json:"url"`
	Playcount flexString    `json:"playcount"`
	Listeners flexString    `json:"listeners"`
	Image     []lastFMImage `json:"image"`
	Tags      struct {
		Tag oneOrMany[lastFMTag] `json:"tag"`
	} `json:"tags"`
	Wiki   *lastFMWiki `json:"wiki"`
	Tracks struct {
		Track oneOrMany[lastFMTrack] `json:"track"`
	} `json:"tracks"`
}

// durationMode says how a list entry's duration field is read.
type durationMode int

const (
	// durationOmitted ignores the field; enrichment fills it later.
	durationOmitted durationMode = iota
	// durationRaw keeps the catalog's number unscaled.
	durationRaw
)

func shapeTrack(t lastFMTrack, mode durationMode) domain.Track {
	track := domain.Track{
		Name:      t.Name,
		Artist:    string(t.Artist),
		Playcount: string(t.Playcount),
		Listeners: string(t.Listeners),
		URL:       t.URL,
		MBID:      t.MBID,
		Image:     shapeImages(t.Image),
	}

	switch mode {
	case durationRaw:
		track.Duration = t.Duration.number()
	}

	if t.Attr != nil && t.Attr.Rank != "" {
		track.Attr = &domain.Attr{Rank: string(t.Attr.Rank)}
	}
	return track
}

func shapeTracks(raw []lastFMTrack, mode durationMode) []domain.Track {
	tracks := make([]domain.Track, 0, len(raw))
	for _, t := range raw {
		tracks = append(tracks, shapeTrack(t, mode))
	}
	return tracks
}

func shapeTrackInfo(t lastFMTrackInfo) *domain.TrackInfo {
	info := &domain.TrackInfo{
		Name:      t.Name,
		Artist:    string(t.Artist),
		Duration:  t.Duration.seconds(),
		Playcount: string(t.Playcount),
		Listeners: string(t.Listeners),
		URL:       t.URL,
		MBID:      t.MBID,
		TopTags:   shapeTags(t.TopTags.Tag),
		Wiki:      shapeWiki(t.Wiki),
	}

	if t.Album != nil {
		info.Album = &domain.TrackAlbum{
			Artist:      string(t.Album.Artist),
			Title:       t.Album.Title,
			MBID:        t.Album.MBID,
			URL:         t.Album.URL,
			Image:       shapeImages(t.Album.Image),
			ReleaseDate: strings.TrimSpace(t.Album.ReleaseDate),
			Wiki:        shapeWiki(t.Album.Wiki),
		}
	}
	return info
}

// shapeAlbum maps the album without its tracks; the caller enriches those.
func shapeAlbum(a lastFMAlbum) *domain.Album {
	return &domain.Album{
		Name:      a.Name,
		Artist:    string(a.Artist),
		MBID:      a.MBID,
		URL:       a.URL,
		Playcount: string(a.Playcount),
		Listeners: string(a.Listeners),
		Image:     shapeImages(a.Image),
		Tags:      shapeTags(a.Tags.Tag),
		Wiki:      shapeWiki(a.Wiki),
		Tracks:    []domain.Track{},
	}
}

func shapeImages(raw []lastFMImage) []domain.Image {
	if len(raw) == 0 {
		return nil
	}
	images := make([]domain.Image, 0, len(raw))
	for _, img := range raw {
		images = append(images, domain.Image{URL: img.Text, Size: img.Size})
	}
	return images
}

func shapeTags(raw []lastFMTag) []domain.Tag {
	if len(raw) == 0 {
		return nil
	}
	tags := make([]domain.Tag, 0, len(raw))
	for _, tag := range raw {
		tags = append(tags, domain.Tag{Name: tag.Name, URL: tag.URL})
	}
	return tags
}

func shapeWiki(w *lastFMWiki) *domain.Wiki {
	if w == nil {
		return nil
	}
	return &domain.Wiki{Published: w.Published, Summary: w.Summary, Content: w.Content}
}
