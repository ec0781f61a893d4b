package interfaces

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/LopezVillaFrancisco/wollen-music-app/pkg/domain"
	"github.com/LopezVillaFrancisco/wollen-music-app/pkg/integrations"
)

// Catalog is the subset of the Last.fm client the service drives.
type Catalog interface {
	integrations.TagTrackSource
	SearchArtists(ctx context.Context, name string) ([]json.RawMessage, error)
	ArtistInfo(ctx context.Context, name string) (json.RawMessage, error)
	ArtistTopTracks(ctx context.Context, name string, limit int) ([]domain.Track, error)
	ArtistTopAlbums(ctx context.Context, name string, limit int) (json.RawMessage, error)
	AlbumInfo(ctx context.Context, artist, album string) (*domain.Album, []domain.Track, error)
	SearchAlbums(ctx context.Context, query string, limit int) ([]json.RawMessage, error)
	ChartTopTracks(ctx context.Context, limit int) ([]domain.Track, error)
	SearchTracks(ctx context.Context, query string, limit int) ([]json.RawMessage, error)
	TopTags(ctx context.Context) (json.RawMessage, error)
	TagTopArtists(ctx context.Context, tag string, limit int) (json.RawMessage, error)
}

// CatalogService implements domain.MusicService on top of the catalog,
// enriching list results with per-track lookups.
type CatalogService struct {
	catalog  Catalog
	enricher *integrations.Enricher
	trends   *integrations.TrendAggregator
	logger   *slog.Logger
}

func NewCatalogService(catalog Catalog, enricher *integrations.Enricher, trends *integrations.TrendAggregator, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		catalog:  catalog,
		enricher: enricher,
		trends:   trends,
		logger:   logger,
	}
}

func required(field, value string) error {
	if value == "" {
		return domain.ValidationError{Field: field, Message: fmt.Sprintf("%s is required", field)}
	}
	return nil
}

func (s *CatalogService) SearchArtists(ctx context.Context, name string) ([]json.RawMessage, error) {
	if err := required("name", name); err != nil {
		return nil, err
	}
	return s.catalog.SearchArtists(ctx, name)
}

func (s *CatalogService) GetArtistInfo(ctx context.Context, name string) (json.RawMessage, error) {
	if err := required("name", name); err != nil {
		return nil, err
	}
	return s.catalog.ArtistInfo(ctx, name)
}

// GetArtistTopTracks looks up the duration of the leading tracks; the rest report zero.
func (s *CatalogService) GetArtistTopTracks(ctx context.Context, name string, limit int) ([]domain.Track, error) {
	if err := required("name", name); err != nil {
		return nil, err
	}

	tracks, err := s.catalog.ArtistTopTracks(ctx, name, limit)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("enriching artist top tracks", "artist", name, "tracks", len(tracks), "head_limit", s.enricher.HeadLimit())

	lookup := func(ctx context.Context, track domain.Track) (domain.Track, error) {
		info, err := s.catalog.TrackInfo(ctx, track.Artist, track.Name)
		if err != nil {
			return track, err
		}
		track.Duration = info.Duration
		return track, nil
	}

	return s.enricher.Enrich(ctx, tracks, lookup, integrations.ZeroDuration), nil
}

func (s *CatalogService) GetArtistTopAlbums(ctx context.Context, name string, limit int) (json.RawMessage, error) {
	if err := required("name", name); err != nil {
		return nil, err
	}
	return s.catalog.ArtistTopAlbums(ctx, name, limit)
}

// GetAlbumInfo enriches every album track, not only the head.
func (s *CatalogService) GetAlbumInfo(ctx context.Context, artist, album string) (*domain.Album, error) {
	if err := required("artist", artist); err != nil {
		return nil, err
	}
	if err := required("album", album); err != nil {
		return nil, err
	}

	info, tracks, err := s.catalog.AlbumInfo(ctx, artist, album)
	if err != nil {
		return nil, err
	}

	base := func(track domain.Track) domain.Track {
		return domain.Track{
			Name:      track.Name,
			Artist:    info.Artist,
			Duration:  track.Duration,
			Playcount: firstNonEmpty(track.Playcount, "0"),
			URL:       track.URL,
		}
	}

	lookup := func(ctx context.Context, track domain.Track) (domain.Track, error) {
		details, err := s.catalog.TrackInfo(ctx, info.Artist, track.Name)
		if err != nil {
			return track, err
		}

		enriched := base(track)
		if details.Duration > 0 {
			enriched.Duration = details.Duration
		}
		enriched.Playcount = firstNonEmpty(details.Playcount, track.Playcount, "0")
		enriched.Listeners = firstNonEmpty(details.Listeners, "0")
		return enriched, nil
	}

	info.Tracks = s.enricher.EnrichAll(ctx, tracks, lookup, base)
	return info, nil
}

func (s *CatalogService) SearchAlbums(ctx context.Context, query string, limit int) ([]json.RawMessage, error) {
	if err := required("query", query); err != nil {
		return nil, err
	}
	return s.catalog.SearchAlbums(ctx, query, limit)
}

func (s *CatalogService) GetTrackInfo(ctx context.Context, artist, track string) (*domain.TrackInfo, error) {
	if err := required("artist", artist); err != nil {
		return nil, err
	}
	if err := required("track", track); err != nil {
		return nil, err
	}
	return s.catalog.TrackInfo(ctx, artist, track)
}

// GetChartTopTracks returns the chart shaped but not enriched.
func (s *CatalogService) GetChartTopTracks(ctx context.Context, limit int) ([]domain.Track, error) {
	return s.catalog.ChartTopTracks(ctx, limit)
}

func (s *CatalogService) SearchTracks(ctx context.Context, query string, limit int) ([]json.RawMessage, error) {
	if err := required("query", query); err != nil {
		return nil, err
	}
	return s.catalog.SearchTracks(ctx, query, limit)
}

func (s *CatalogService) GetTopTags(ctx context.Context) (json.RawMessage, error) {
	return s.catalog.TopTags(ctx)
}

func (s *CatalogService) GetTagTopArtists(ctx context.Context, tag string, limit int) (json.RawMessage, error) {
	if err := required("tag", tag); err != nil {
		return nil, err
	}
	return s.catalog.TagTopArtists(ctx, tag, limit)
}

func (s *CatalogService) GetTagTrends(ctx context.Context, query domain.TrendQuery) (*domain.TrendResult, error) {
	if err := required("tag", query.Tag); err != nil {
		return nil, err
	}

	s.logger.Debug("aggregating tag trends", "tag", query.Tag, "limit", query.Limit)
	return s.trends.Aggregate(ctx, query)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
