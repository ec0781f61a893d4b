package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/LopezVillaFrancisco/wollen-music-app/pkg/domain"
)

const defaultLastFMBaseURL = "https://ws.audioscrobbler.com/2.0/"

type LastFMClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type LastFMConfig struct {
	APIKey  string
	BaseURL string
	// HTTPClient defaults to a client without a timeout; callers bound latency
	// through the request context.
	HTTPClient *http.Client
}

// Params are the method-specific query parameters of a catalog call.
type Params map[string]string

func NewLastFMClient(config LastFMConfig) (*LastFMClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("last.fm API key is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultLastFMBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid last.fm base URL: %w", err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &LastFMClient{
		baseURL:    baseURL,
		apiKey:     config.APIKey,
		httpClient: httpClient,
	}, nil
}

// Call performs one catalog method invocation and returns the raw JSON body.
// Credentials and the response format are always injected and cannot be
// overridden through params. Nothing is retried.
func (c *LastFMClient) Call(ctx context.Context, method string, params Params) (json.RawMessage, error) {
	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	query.Set("method", method)
	query.Set("api_key", c.apiKey)
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, &domain.UpstreamError{Method: method, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Method: method, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Method: method, Status: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	var envelope struct {
		Error   int    `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &envelope)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := string(body)
		if envelope.Message != "" {
			detail = envelope.Message
		}
		return nil, &domain.UpstreamError{Method: method, Status: resp.StatusCode, Code: envelope.Error, Body: detail}
	}
	if envelope.Error != 0 {
		return nil, &domain.UpstreamError{Method: method, Status: resp.StatusCode, Code: envelope.Error, Body: envelope.Message}
	}

	return body, nil
}

func (c *LastFMClient) call(ctx context.Context, method string, params Params, out interface{}) error {
	body, err := c.Call(ctx, method, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	return nil
}

func (c *LastFMClient) SearchArtists(ctx context.Context, name string) ([]json.RawMessage, error) {
	var resp struct {
		Results struct {
			ArtistMatches struct {
				Artist oneOrMany[json.RawMessage] `json:"artist"`
			} `json:"artistmatches"`
		} `json:"results"`
	}
	if err := c.call(ctx, "artist.search", Params{"artist": name}, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.Results.ArtistMatches.Artist), nil
}

func (c *LastFMClient) ArtistInfo(ctx context.Context, name string) (json.RawMessage, error) {
	var resp struct {
		Artist json.RawMessage `json:"artist"`
	}
	if err := c.call(ctx, "artist.getinfo", Params{"artist": name}, &resp); err != nil {
		return nil, err
	}
	return orNull(resp.Artist), nil
}

// ArtistTopTracks returns domain.ErrNoTracks when the response carries no track
// list, including a successful response holding only the catalog's error envelope.
func (c *LastFMClient) ArtistTopTracks(ctx context.Context, name string, limit int) ([]domain.Track, error) {
	var resp struct {
		TopTracks *struct {
			Track *oneOrMany[lastFMTrack] `json:"track"`
		} `json:"toptracks"`
	}
	params := Params{"artist": name, "limit": strconv.Itoa(limit)}
	if err := c.call(ctx, "artist.gettoptracks", params, &resp); err != nil {
		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) && upstream.Code != 0 && upstream.Status >= 200 && upstream.Status < 300 {
			return nil, domain.ErrNoTracks
		}
		return nil, err
	}
	if resp.TopTracks == nil || resp.TopTracks.Track == nil {
		return nil, domain.ErrNoTracks
	}
	return shapeTracks(*resp.TopTracks.Track, durationOmitted), nil
}

func (c *LastFMClient) ArtistTopAlbums(ctx context.Context, name string, limit int) (json.RawMessage, error) {
	var resp struct {
		TopAlbums struct {
			Album json.RawMessage `json:"album"`
		} `json:"topalbums"`
	}
	params := Params{"artist": name, "limit": strconv.Itoa(limit)}
	if err := c.call(ctx, "artist.gettopalbums", params, &resp); err != nil {
		return nil, err
	}
	return orNull(resp.TopAlbums.Album), nil
}

// AlbumInfo returns the shaped album and its raw track list, unenriched.
func (c *LastFMClient) AlbumInfo(ctx context.Context, artist, album string) (*domain.Album, []domain.Track, error) {
	var resp struct {
		Album *lastFMAlbum `json:"album"`
	}
	if err := c.call(ctx, "album.getinfo", Params{"artist": artist, "album": album}, &resp); err != nil {
		return nil, nil, err
	}
	if resp.Album == nil {
		return nil, nil, fmt.Errorf("album.getinfo response has no album")
	}

	// Album track durations are already in seconds.
	return shapeAlbum(*resp.Album), shapeTracks(resp.Album.Tracks.Track, durationRaw), nil
}

func (c *LastFMClient) SearchAlbums(ctx context.Context, query string, limit int) ([]json.RawMessage, error) {
	var resp struct {
		Results struct {
			AlbumMatches struct {
				Album oneOrMany[json.RawMessage] `json:"album"`
			} `json:"albummatches"`
		} `json:"results"`
	}
	params := Params{"album": query, "limit": strconv.Itoa(limit)}
	if err := c.call(ctx, "album.search", params, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.Results.AlbumMatches.Album), nil
}

func (c *LastFMClient) TrackInfo(ctx context.Context, artist, track string) (*domain.TrackInfo, error) {
	var resp struct {
		Track *lastFMTrackInfo `json:"track"`
	}
	if err := c.call(ctx, "track.getinfo", Params{"artist": artist, "track": track}, &resp); err != nil {
		return nil, err
	}
	if resp.Track == nil {
		return nil, fmt.Errorf("track.getinfo response has no track")
	}
	return shapeTrackInfo(*resp.Track), nil
}

// ChartTopTracks keeps the catalog's duration number unscaled.
func (c *LastFMClient) ChartTopTracks(ctx context.Context, limit int) ([]domain.Track, error) {
	var resp struct {
		Tracks struct {
			Track oneOrMany[lastFMTrack] `json:"track"`
		} `json:"tracks"`
	}
	if err := c.call(ctx, "chart.gettoptracks", Params{"limit": strconv.Itoa(limit)}, &resp); err != nil {
		return nil, err
	}
	return shapeTracks(resp.Tracks.Track, durationRaw), nil
}

func (c *LastFMClient) SearchTracks(ctx context.Context, query string, limit int) ([]json.RawMessage, error) {
	var resp struct {
		Results struct {
			TrackMatches struct {
				Track oneOrMany[json.RawMessage] `json:"track"`
			} `json:"trackmatches"`
		} `json:"results"`
	}
	params := Params{"track": query, "limit": strconv.Itoa(limit)}
	if err := c.call(ctx, "track.search", params, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.Results.TrackMatches.Track), nil
}

func (c *LastFMClient) TopTags(ctx context.Context) (json.RawMessage, error) {
	var resp struct {
		Tags struct {
			Tag json.RawMessage `json:"tag"`
		} `json:"tags"`
	}
	if err := c.call(ctx, "chart.gettoptags", nil, &resp); err != nil {
		return nil, err
	}
	return orNull(resp.Tags.Tag), nil
}

func (c *LastFMClient) TagTopArtists(ctx context.Context, tag string, limit int) (json.RawMessage, error) {
	var resp struct {
		TopArtists struct {
			Artist json.RawMessage `json:"artist"`
		} `json:"topartists"`
	}
	params := Params{"tag": tag, "limit": strconv.Itoa(limit)}
	if err := c.call(ctx, "tag.gettopartists", params, &resp); err != nil {
		return nil, err
	}
	return orNull(resp.TopArtists.Artist), nil
}

// TagTopTracks returns an empty list, not an error, for a tag with no tracks.
func (c *LastFMClient) TagTopTracks(ctx context.Context, tag string, limit int) ([]domain.Track, error) {
	var resp struct {
		Tracks struct {
			Track oneOrMany[lastFMTrack] `json:"track"`
		} `json:"tracks"`
	}
	params := Params{"tag": tag, "limit": strconv.Itoa(limit)}
	if err := c.call(ctx, "tag.gettoptracks", params, &resp); err != nil {
		return nil, err
	}
	return shapeTracks(resp.Tracks.Track, durationOmitted), nil
}

func nonNil(items []json.RawMessage) []json.RawMessage {
	if items == nil {
		return []json.RawMessage{}
	}
	return items
}

func orNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}
