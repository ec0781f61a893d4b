package domain

import (
	"context"
	"encoding/json"
)

// MusicService is what the HTTP layer needs from the catalog pipeline.
// Pass-through results are returned as raw catalog JSON.
type MusicService interface {
	SearchArtists(ctx context.Context, name string) ([]json.RawMessage, error)
	GetArtistInfo(ctx context.Context, name string) (json.RawMessage, error)
	GetArtistTopTracks(ctx context.Context, name string, limit int) ([]Track, error)
	GetArtistTopAlbums(ctx context.Context, name string, limit int) (json.RawMessage, error)
	GetAlbumInfo(ctx context.Context, artist, album string) (*Album, error)
	SearchAlbums(ctx context.Context, query string, limit int) ([]json.RawMessage, error)
	GetTrackInfo(ctx context.Context, artist, track string) (*TrackInfo, error)
	GetChartTopTracks(ctx context.Context, limit int) ([]Track, error)
	SearchTracks(ctx context.Context, query string, limit int) ([]json.RawMessage, error)
	GetTopTags(ctx context.Context) (json.RawMessage, error)
	GetTagTopArtists(ctx context.Context, tag string, limit int) (json.RawMessage, error)
	GetTagTrends(ctx context.Context, query TrendQuery) (*TrendResult, error)
}
