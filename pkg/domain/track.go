package domain

// Image is one sized artwork entry as returned by the catalog.
type Image struct {
	URL  string `json:"#text"`
	Size string `json:"size"`
}

// Track is a shaped list entry. Artist is always the flat artist name.
type Track struct {
	Name      string  `json:"name"`
	Artist    string  `json:"artist"`
	Duration  float64 `json:"duration"`
	Playcount string  `json:"playcount,omitempty"`
	Listeners string  `json:"listeners,omitempty"`
	URL       string  `json:"url,omitempty"`
	MBID      string  `json:"mbid,omitempty"`
	Image     []Image `json:"image,omitempty"`
	Attr      *Attr   `json:"@attr,omitempty"`
}

type Attr struct {
	Rank string `json:"rank,omitempty"`
}

type Wiki struct {
	Published string `json:"published,omitempty"`
	Summary   string `json:"summary,omitempty"`
	Content   string `json:"content,omitempty"`
}

type Tag struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// TrackAlbum is the album a track belongs to, as embedded in a track lookup.
type TrackAlbum struct {
	Artist      string  `json:"artist,omitempty"`
	Title       string  `json:"title,omitempty"`
	MBID        string  `json:"mbid,omitempty"`
	URL         string  `json:"url,omitempty"`
	Image       []Image `json:"image,omitempty"`
	ReleaseDate string  `json:"releasedate,omitempty"`
	Wiki        *Wiki   `json:"wiki,omitempty"`
}

// TrackInfo is the result of a single track lookup. Duration is in seconds.
type TrackInfo struct {
	Name      string      `json:"name"`
	Artist    string      `json:"artist"`
	Duration  float64     `json:"duration"`
	Playcount string      `json:"playcount,omitempty"`
	Listeners string      `json:"listeners,omitempty"`
	URL       string      `json:"url,omitempty"`
	MBID      string      `json:"mbid,omitempty"`
	Album     *TrackAlbum `json:"album,omitempty"`
	TopTags   []Tag       `json:"toptags,omitempty"`
	Wiki      *Wiki       `json:"wiki,omitempty"`
}

// Album is an album lookup with its track list enriched.
type Album struct {
	Name      string  `json:"name"`
	Artist    string  `json:"artist"`
	MBID      string  `json:"mbid,omitempty"`
	URL       string  `json:"url,omitempty"`
	Playcount string  `json:"playcount,omitempty"`
	Listeners string  `json:"listeners,omitempty"`
	Image     []Image `json:"image,omitempty"`
	Tags      []Tag   `json:"tags,omitempty"`
	Wiki      *Wiki   `json:"wiki,omitempty"`
	Tracks    []Track `json:"tracks"`
}
