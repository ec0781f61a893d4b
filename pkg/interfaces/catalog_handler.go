package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/LopezVillaFrancisco/wollen-music-app/pkg/domain"
)

type HandlerConfig struct {
	RequestTimeout    time.Duration
	TrendsTimeout     time.Duration
	TrendDefaultLimit int
	TrendMaxLimit     int
}

type CatalogHandler struct {
	service domain.MusicService
	config  HandlerConfig
	logger  *slog.Logger
}

func NewCatalogHandler(service domain.MusicService, config HandlerConfig, logger *slog.Logger) *CatalogHandler {
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 30 * time.Second
	}
	if config.TrendsTimeout <= 0 {
		config.TrendsTimeout = 120 * time.Second
	}
	if config.TrendDefaultLimit <= 0 {
		config.TrendDefaultLimit = 100
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CatalogHandler{
		service: service,
		config:  config,
		logger:  logger,
	}
}

func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/artists/search", h.SearchArtists).Methods("GET")
	api.HandleFunc("/artists/{name}", h.GetArtistInfo).Methods("GET")
	api.HandleFunc("/artists/{name}/tracks", h.GetArtistTopTracks).Methods("GET")
	api.HandleFunc("/artists/{name}/albums", h.GetArtistTopAlbums).Methods("GET")

	api.HandleFunc("/albums", h.GetAlbumInfo).Methods("GET")
	api.HandleFunc("/albums/search", h.SearchAlbums).Methods("GET")

	api.HandleFunc("/tracks", h.GetTrackInfo).Methods("GET")
	api.HandleFunc("/tracks/chart", h.GetChartTopTracks).Methods("GET")
	api.HandleFunc("/tracks/search", h.SearchTracks).Methods("GET")

	api.HandleFunc("/tags", h.GetTopTags).Methods("GET")
	api.HandleFunc("/tags/{tag}/artists", h.GetTagTopArtists).Methods("GET")
	api.HandleFunc("/tags/{tag}/trends", h.GetTagTrends).Methods("GET")
}

func (h *CatalogHandler) SearchArtists(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	name := r.URL.Query().Get("name")
	if name == "" {
		h.respondWithError(w, http.StatusBadRequest, `parameter "name" is required`)
		return
	}

	artists, err := h.service.SearchArtists(ctx, name)
	if err != nil {
		h.respondWithServiceError(w, "failed to search artists", err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, artists)
}

func (h *CatalogHandler) GetArtistInfo(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	name, ok := h.pathVar(w, r, "name")
	if !ok {
		return
	}

	artist, err := h.service.GetArtistInfo(ctx, name)
	if err != nil {
		h.respondWithServiceError(w, "failed to get artist info", err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, artist)
}

func (h *CatalogHandler) GetArtistTopTracks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	name, ok := h.pathVar(w, r, "name")
	if !ok {
		return
	}
	limit, ok := h.limitParam(w, r, 50)
	if !ok {
		return
	}

	tracks, err := h.service.GetArtistTopTracks(ctx, name, limit)
	if err != nil {
		if errors.Is(err, domain.ErrNoTracks) {
			h.respondWithJSON(w, http.StatusNotFound, ErrorResponse{
				Error:  "no tracks found for this artist",
				Artist: name,
			})
			return
		}
		h.respondWithServiceError(w, "failed to get artist top tracks", err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, tracks)
}

func (h *CatalogHandler) GetArtistTopAlbums(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	name, ok := h.pathVar(w, r, "name")
	if !ok {
		return
	}
	limit, ok := h.limitParam(w, r, 10)
	if !ok {
		return
	}

	albums, err := h.service.GetArtistTopAlbums(ctx, name, limit)
	if err != nil {
		h.respondWithServiceError(w, "failed to get artist top albums", err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, albums)
}

func (h *CatalogHandler) GetAlbumInfo(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	artist := r.URL.Query().Get("artist")
	album := r.URL.Query().Get("album")
	if artist == "" || album == "" {
		h.respondWithError(w, http.StatusBadRequest, `parameters "artist" and "album" are required`)
		return
	}

	info, err := h.service.GetAlbumInfo(ctx, artist, album)
	if err != nil {
		h.respondWithServiceError(w, "failed to get album info", err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, info)
}

func (h *CatalogHandler) SearchAlbums(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	query := r.URL.Query().Get("query")
	if query == "" {
		h.respondWithError(w, http.StatusBadRequest, `parameter "query" is required`)
		return
	}
	limit, ok := h.limitParam(w, r, 10)
	if !ok {
		return
	}

	albums, err := h.service.SearchAlbums(ctx, query, limit)
	if err != nil {
		h.respondWithServiceError(w, "failed to search albums", err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, albums)
}

func (h *CatalogHandler) GetTrackInfo(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	artist := r.URL.Query().Get("artist")
	track := r.URL.Query().Get("track")
	if artist == "" || track == "" {
		h.respondWithError(w, http.StatusBadRequest, `parameters "artist" and "track" are required`)
		return
	}

	info, err := h.service.GetTrackInfo(ctx, artist, track)
	if err != nil {
		h.respondWithServiceError(w, "failed to get track info", err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, info)
}

func (h *CatalogHandler) GetChartTopTracks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	limit, ok := h.limitParam(w, r, 50)
	if !ok {
		return
	}

	tracks, err := h.service.GetChartTopTracks(ctx, limit)
	if err != nil {
		h.respondWithServiceError(w, "failed to get top tracks chart", err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, tracks)
}

func (h *CatalogHandler) SearchTracks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	query := r.URL.Query().Get("query")
	if query == "" {
		h.respondWithError(w, http.StatusBadRequest, `parameter "query" is required`)
		return
	}
	limit, ok := h.limitParam(w, r, 10)
	if !ok {
		return
	}

	tracks, err := h.service.SearchTracks(ctx, query, limit)
	if err != nil {
		h.respondWithServiceError(w, "failed to search tracks", err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, tracks)
}

func (h *CatalogHandler) GetTopTags(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	tags, err := h.service.GetTopTags(ctx)
	if err != nil {
		h.respondWithServiceError(w, "failed to get top tags", err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, tags)
}

func (h *CatalogHandler) GetTagTopArtists(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	tag, ok := h.pathVar(w, r, "tag")
	if !ok {
		return
	}
	limit, ok := h.limitParam(w, r, 20)
	if !ok {
		return
	}

	artists, err := h.service.GetTagTopArtists(ctx, tag, limit)
	if err != nil {
		h.respondWithServiceError(w, "failed to get tag top artists", err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, artists)
}

func (h *CatalogHandler) GetTagTrends(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.config.TrendsTimeout)
	defer cancel()

	tag, ok := h.pathVar(w, r, "tag")
	if !ok {
		return
	}
	limit, ok := h.limitParam(w, r, h.config.TrendDefaultLimit)
	if !ok {
		return
	}
	if h.config.TrendMaxLimit > 0 && limit > h.config.TrendMaxLimit {
		limit = h.config.TrendMaxLimit
	}

	query := domain.TrendQuery{Tag: tag, Limit: limit}
	if query.FromYear, ok = h.yearParam(w, r, "from"); !ok {
		return
	}
	if query.ToYear, ok = h.yearParam(w, r, "to"); !ok {
		return
	}

	result, err := h.service.GetTagTrends(ctx, query)
	if err != nil {
		h.respondWithServiceError(w, "failed to get tag trends", err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, result)
}

// pathVar returns the unescaped route variable, answering 400 when it is blank.
func (h *CatalogHandler) pathVar(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value, err := url.PathUnescape(mux.Vars(r)[name])
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid "+name+" in path")
		return "", false
	}
	if strings.TrimSpace(value) == "" {
		h.respondWithError(w, http.StatusBadRequest, `parameter "`+name+`" is required`)
		return "", false
	}
	return value, true
}

func (h *CatalogHandler) limitParam(w http.ResponseWriter, r *http.Request, fallback int) (int, bool) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return fallback, true
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		h.respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
		return 0, false
	}
	return limit, true
}

// yearParam reads an optional year bound. Zero leaves the bound open.
func (h *CatalogHandler) yearParam(w http.ResponseWriter, r *http.Request, name string) (*int, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, true
	}

	year, err := strconv.Atoi(value)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, name+" must be a year")
		return nil, false
	}
	if year == 0 {
		return nil, true
	}
	return &year, true
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
	Artist  string `json:"artist,omitempty"`
}

func (h *CatalogHandler) respondWithServiceError(w http.ResponseWriter, message string, err error) {
	var validation domain.ValidationError
	if errors.As(err, &validation) {
		h.respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: validation.Message})
		return
	}

	h.logger.Error(message, "err", err)

	response := ErrorResponse{Error: message, Message: err.Error()}
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		response.Details = upstream.Body
	}
	h.respondWithJSON(w, http.StatusInternalServerError, response)
}

func (h *CatalogHandler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, ErrorResponse{Error: message})
}

func (h *CatalogHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
