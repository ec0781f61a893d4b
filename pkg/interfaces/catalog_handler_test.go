package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LopezVillaFrancisco/wollen-music-app/pkg/domain"
	"github.com/LopezVillaFrancisco/wollen-music-app/pkg/logging"
)

type mockMusicService struct {
	searchArtistsFunc func(ctx context.Context, name string) ([]json.RawMessage, error)
	artistInfoFunc    func(ctx context.Context, name string) (json.RawMessage, error)
	topTracksFunc     func(ctx context.Context, name string, limit int) ([]domain.Track, error)
	topAlbumsFunc     func(ctx context.Context, name string, limit int) (json.RawMessage, error)
	albumInfoFunc     func(ctx context.Context, artist, album string) (*domain.Album, error)
	searchAlbumsFunc  func(ctx context.Context, query string, limit int) ([]json.RawMessage, error)
	trackInfoFunc     func(ctx context.Context, artist, track string) (*domain.TrackInfo, error)
	chartFunc         func(ctx context.Context, limit int) ([]domain.Track, error)
	searchTracksFunc  func(ctx context.Context, query string, limit int) ([]json.RawMessage, error)
	topTagsFunc       func(ctx context.Context) (json.RawMessage, error)
	tagArtistsFunc    func(ctx context.Context, tag string, limit int) (json.RawMessage, error)
	tagTrendsFunc     func(ctx context.Context, query domain.TrendQuery) (*domain.TrendResult, error)
}

func (m *mockMusicService) SearchArtists(ctx context.Context, name string) ([]json.RawMessage, error) {
	if m.searchArtistsFunc != nil {
		return m.searchArtistsFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockMusicService) GetArtistInfo(ctx context.Context, name string) (json.RawMessage, error) {
	if m.artistInfoFunc != nil {
		return m.artistInfoFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockMusicService) GetArtistTopTracks(ctx context.Context, name string, limit int) ([]domain.Track, error) {
	if m.topTracksFunc != nil {
		return m.topTracksFunc(ctx, name, limit)
	}
	return nil, nil
}

func (m *mockMusicService) GetArtistTopAlbums(ctx context.Context, name string, limit int) (json.RawMessage, error) {
	if m.topAlbumsFunc != nil {
		return m.topAlbumsFunc(ctx, name, limit)
	}
	return nil, nil
}

func (m *mockMusicService) GetAlbumInfo(ctx context.Context, artist, album string) (*domain.Album, error) {
	if m.albumInfoFunc != nil {
		return m.albumInfoFunc(ctx, artist, album)
	}
	return nil, nil
}

func (m *mockMusicService) SearchAlbums(ctx context.Context, query string, limit int) ([]json.RawMessage, error) {
	if m.searchAlbumsFunc != nil {
		return m.searchAlbumsFunc(ctx, query, limit)
	}
	return nil, nil
}

func (m *mockMusicService) GetTrackInfo(ctx context.Context, artist, track string) (*domain.TrackInfo, error) {
	if m.trackInfoFunc != nil {
		return m.trackInfoFunc(ctx, artist, track)
	}
	return nil, nil
}

func (m *mockMusicService) GetChartTopTracks(ctx context.Context, limit int) ([]domain.Track, error) {
	if m.chartFunc != nil {
		return m.chartFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockMusicService) SearchTracks(ctx context.Context, query string, limit int) ([]json.RawMessage, error) {
	if m.searchTracksFunc != nil {
		return m.searchTracksFunc(ctx, query, limit)
	}
	return nil, nil
}

func (m *mockMusicService) GetTopTags(ctx context.Context) (json.RawMessage, error) {
	if m.topTagsFunc != nil {
		return m.topTagsFunc(ctx)
	}
	return nil, nil
}

func (m *mockMusicService) GetTagTopArtists(ctx context.Context, tag string, limit int) (json.RawMessage, error) {
	if m.tagArtistsFunc != nil {
		return m.tagArtistsFunc(ctx, tag, limit)
	}
	return nil, nil
}

func (m *mockMusicService) GetTagTrends(ctx context.Context, query domain.TrendQuery) (*domain.TrendResult, error) {
	if m.tagTrendsFunc != nil {
		return m.tagTrendsFunc(ctx, query)
	}
	return nil, nil
}

func serve(t *testing.T, service domain.MusicService, target string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewCatalogHandler(service, HandlerConfig{TrendMaxLimit: 500}, logging.Discard())
	router := NewRouter(handler, logging.Discard())

	req, _ := http.NewRequest("GET", target, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var response ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("could not unmarshal error response %q: %v", rr.Body.String(), err)
	}
	return response
}

func TestCatalogHandler_RequiredParameters(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"artist search without name", "/api/artists/search"},
		{"album info without album", "/api/albums?artist=Cher"},
		{"album info without artist", "/api/albums?album=Believe"},
		{"album search without query", "/api/albums/search"},
		{"track info without track", "/api/tracks?artist=Cher"},
		{"track search without query", "/api/tracks/search?limit=5"},
		{"blank tag", "/api/tags/%20/trends"},
		{"invalid limit", "/api/artists/Cher/tracks?limit=abc"},
		{"negative limit", "/api/tracks/chart?limit=-1"},
		{"invalid from year", "/api/tags/rock/trends?from=nineties"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, &mockMusicService{}, tt.target)

			if status := rr.Code; status != http.StatusBadRequest {
				t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadRequest)
			}
			if response := decodeError(t, rr); response.Error == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestCatalogHandler_GetArtistTopTracks(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		var gotName string
		var gotLimit int
		mockService := &mockMusicService{
			topTracksFunc: func(ctx context.Context, name string, limit int) ([]domain.Track, error) {
				gotName, gotLimit = name, limit
				return []domain.Track{{Name: "Thunderstruck", Artist: name, Duration: 292}}, nil
			},
		}

		rr := serve(t, mockService, "/api/artists/AC%2FDC/tracks")

		if status := rr.Code; status != http.StatusOK {
			t.Fatalf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
		}
		if gotName != "AC/DC" {
			t.Errorf("expected encoded slash to survive routing, got %q", gotName)
		}
		if gotLimit != 50 {
			t.Errorf("expected default limit 50, got %d", gotLimit)
		}

		var tracks []domain.Track
		if err := json.Unmarshal(rr.Body.Bytes(), &tracks); err != nil {
			t.Fatalf("could not unmarshal response: %v", err)
		}
		if len(tracks) != 1 || tracks[0].Duration != 292 {
			t.Errorf("unexpected tracks %+v", tracks)
		}
	})

	t.Run("no tracks is a 404 with the artist", func(t *testing.T) {
		mockService := &mockMusicService{
			topTracksFunc: func(ctx context.Context, name string, limit int) ([]domain.Track, error) {
				return nil, domain.ErrNoTracks
			},
		}

		rr := serve(t, mockService, "/api/artists/Nobody/tracks?limit=5")

		if status := rr.Code; status != http.StatusNotFound {
			t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusNotFound)
		}
		if response := decodeError(t, rr); response.Artist != "Nobody" {
			t.Errorf("expected artist in payload, got %+v", response)
		}
	})

	t.Run("upstream failure is a 500 with details", func(t *testing.T) {
		mockService := &mockMusicService{
			topTracksFunc: func(ctx context.Context, name string, limit int) ([]domain.Track, error) {
				return nil, &domain.UpstreamError{Method: "artist.gettoptracks", Status: 502, Body: "bad gateway"}
			},
		}

		rr := serve(t, mockService, "/api/artists/Cher/tracks")

		if status := rr.Code; status != http.StatusInternalServerError {
			t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusInternalServerError)
		}
		response := decodeError(t, rr)
		if response.Message == "" || response.Details != "bad gateway" {
			t.Errorf("expected message and upstream details, got %+v", response)
		}
	})
}

func TestCatalogHandler_Routing(t *testing.T) {
	t.Run("artist search is not an artist name", func(t *testing.T) {
		called := false
		mockService := &mockMusicService{
			searchArtistsFunc: func(ctx context.Context, name string) ([]json.RawMessage, error) {
				called = true
				return []json.RawMessage{json.RawMessage(`{"name":"Cher"}`)}, nil
			},
		}

		rr := serve(t, mockService, "/api/artists/search?name=cher")
		if rr.Code != http.StatusOK || !called {
			t.Errorf("expected artist search to be routed, got status %d", rr.Code)
		}
		if rr.Body.String() != `[{"name":"Cher"}]` {
			t.Errorf("expected raw pass-through, got %s", rr.Body.String())
		}
	})

	t.Run("chart is not track info", func(t *testing.T) {
		gotLimit := 0
		mockService := &mockMusicService{
			chartFunc: func(ctx context.Context, limit int) ([]domain.Track, error) {
				gotLimit = limit
				return []domain.Track{}, nil
			},
		}

		rr := serve(t, mockService, "/api/tracks/chart?limit=25")
		if rr.Code != http.StatusOK || gotLimit != 25 {
			t.Errorf("expected chart with limit 25, got status %d limit %d", rr.Code, gotLimit)
		}
	})

	t.Run("default limits", func(t *testing.T) {
		limits := map[string]int{}
		mockService := &mockMusicService{
			topAlbumsFunc: func(ctx context.Context, name string, limit int) (json.RawMessage, error) {
				limits["albums"] = limit
				return json.RawMessage(`[]`), nil
			},
			tagArtistsFunc: func(ctx context.Context, tag string, limit int) (json.RawMessage, error) {
				limits["tag artists"] = limit
				return json.RawMessage(`[]`), nil
			},
			searchTracksFunc: func(ctx context.Context, query string, limit int) ([]json.RawMessage, error) {
				limits["track search"] = limit
				return []json.RawMessage{}, nil
			},
		}

		serve(t, mockService, "/api/artists/Cher/albums")
		serve(t, mockService, "/api/tags/rock/artists")
		serve(t, mockService, "/api/tracks/search?query=believe")

		want := map[string]int{"albums": 10, "tag artists": 20, "track search": 10}
		for name, limit := range want {
			if limits[name] != limit {
				t.Errorf("%s: expected default limit %d, got %d", name, limit, limits[name])
			}
		}
	})

	t.Run("health", func(t *testing.T) {
		rr := serve(t, &mockMusicService{}, "/health")
		if rr.Code != http.StatusOK || rr.Body.String() != `{"status":"ok"}` {
			t.Errorf("unexpected health response %d %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("request id is echoed", func(t *testing.T) {
		rr := serve(t, &mockMusicService{}, "/health")
		if rr.Header().Get(requestIDHeader) == "" {
			t.Error("expected a generated request id")
		}
	})
}

func TestCatalogHandler_GetTagTrends(t *testing.T) {
	t.Run("parses range and clamps limit", func(t *testing.T) {
		var got domain.TrendQuery
		mockService := &mockMusicService{
			tagTrendsFunc: func(ctx context.Context, query domain.TrendQuery) (*domain.TrendResult, error) {
				got = query
				return &domain.TrendResult{
					Tag:      query.Tag,
					Trends:   []domain.YearBucket{{Year: 2000, Count: 3}},
					Coverage: domain.Coverage{Total: 10, WithDate: 3, Percentage: "30.0"},
				}, nil
			},
		}

		rr := serve(t, mockService, "/api/tags/hip%20hop/trends?limit=5000&from=1990&to=2005")

		if rr.Code != http.StatusOK {
			t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
		}
		if got.Tag != "hip hop" {
			t.Errorf("expected tag hip hop, got %q", got.Tag)
		}
		if got.Limit != 500 {
			t.Errorf("expected limit clamped to 500, got %d", got.Limit)
		}
		if got.FromYear == nil || *got.FromYear != 1990 || got.ToYear == nil || *got.ToYear != 2005 {
			t.Errorf("unexpected year range %v %v", got.FromYear, got.ToYear)
		}

		var result domain.TrendResult
		if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
			t.Fatalf("could not unmarshal response: %v", err)
		}
		if result.Coverage.Percentage != "30.0" {
			t.Errorf("expected percentage 30.0, got %q", result.Coverage.Percentage)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		var got domain.TrendQuery
		mockService := &mockMusicService{
			tagTrendsFunc: func(ctx context.Context, query domain.TrendQuery) (*domain.TrendResult, error) {
				got = query
				return &domain.TrendResult{Tag: query.Tag, Trends: []domain.YearBucket{}}, nil
			},
		}

		rr := serve(t, mockService, "/api/tags/rock/trends")

		if rr.Code != http.StatusOK {
			t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
		}
		if got.Limit != 100 {
			t.Errorf("expected default limit 100, got %d", got.Limit)
		}
		if got.FromYear != nil || got.ToYear != nil {
			t.Errorf("expected open range, got %v %v", got.FromYear, got.ToYear)
		}
	})

	t.Run("zero years leave the range open", func(t *testing.T) {
		var got domain.TrendQuery
		mockService := &mockMusicService{
			tagTrendsFunc: func(ctx context.Context, query domain.TrendQuery) (*domain.TrendResult, error) {
				got = query
				return &domain.TrendResult{Tag: query.Tag, Trends: []domain.YearBucket{}}, nil
			},
		}

		rr := serve(t, mockService, "/api/tags/rock/trends?from=0&to=0")

		if rr.Code != http.StatusOK {
			t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
		}
		if got.FromYear != nil || got.ToYear != nil {
			t.Errorf("expected open range, got %v %v", got.FromYear, got.ToYear)
		}
	})

	t.Run("service failure", func(t *testing.T) {
		mockService := &mockMusicService{
			tagTrendsFunc: func(ctx context.Context, query domain.TrendQuery) (*domain.TrendResult, error) {
				return nil, errors.New("boom")
			},
		}

		rr := serve(t, mockService, "/api/tags/rock/trends")
		if rr.Code != http.StatusInternalServerError {
			t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusInternalServerError)
		}
	})
}

func TestCatalogHandler_ValidationFromService(t *testing.T) {
	mockService := &mockMusicService{
		trackInfoFunc: func(ctx context.Context, artist, track string) (*domain.TrackInfo, error) {
			return nil, domain.ValidationError{Field: "track", Message: "track is required"}
		},
	}

	rr := serve(t, mockService, "/api/tracks?artist=a&track=b")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusBadRequest)
	}
}
