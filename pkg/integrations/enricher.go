package integrations

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/LopezVillaFrancisco/wollen-music-app/pkg/domain"
)

// DefaultHeadLimit is how many leading tracks of a list get a secondary lookup.
const DefaultHeadLimit = 15

// TrackLookup resolves secondary fields for one track and returns the merged track.
type TrackLookup func(ctx context.Context, track domain.Track) (domain.Track, error)

// Enricher fans out lookups over the head of a track list.
type Enricher struct {
	headLimit int
	logger    *slog.Logger
}

// NewEnricher returns an enricher that looks up at most headLimit tracks per list.
// A headLimit of zero or less means every track is looked up.
func NewEnricher(headLimit int, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{headLimit: headLimit, logger: logger}
}

func (e *Enricher) HeadLimit() int {
	return e.headLimit
}

// Enrich returns a list positionally matching tracks. The first HeadLimit tracks
// are looked up concurrently and all lookups are awaited. Tracks past the head,
// and tracks whose lookup failed, are replaced by degrade(track). Lookup failures
// are logged and never returned.
func (e *Enricher) Enrich(ctx context.Context, tracks []domain.Track, lookup TrackLookup, degrade func(domain.Track) domain.Track) []domain.Track {
	return e.enrich(ctx, tracks, e.headLimit, lookup, degrade)
}

// EnrichAll looks up every track regardless of the head limit.
func (e *Enricher) EnrichAll(ctx context.Context, tracks []domain.Track, lookup TrackLookup, degrade func(domain.Track) domain.Track) []domain.Track {
	return e.enrich(ctx, tracks, 0, lookup, degrade)
}

func (e *Enricher) enrich(ctx context.Context, tracks []domain.Track, headLimit int, lookup TrackLookup, degrade func(domain.Track) domain.Track) []domain.Track {
	head := len(tracks)
	if headLimit > 0 && headLimit < head {
		head = headLimit
	}

	out := make([]domain.Track, len(tracks))

	var g errgroup.Group
	for i := 0; i < head; i++ {
		g.Go(func() error {
			enriched, err := lookup(ctx, tracks[i])
			if err != nil {
				e.logger.Warn("track enrichment failed",
					"track", tracks[i].Name,
					"artist", tracks[i].Artist,
					"err", err,
				)
				out[i] = degrade(tracks[i])
				return nil
			}
			out[i] = enriched
			return nil
		})
	}

	for i := head; i < len(tracks); i++ {
		out[i] = degrade(tracks[i])
	}

	_ = g.Wait()
	return out
}

// ZeroDuration is the degrade function for list endpoints: the track keeps its
// list fields and reports no duration.
func ZeroDuration(track domain.Track) domain.Track {
	track.Duration = 0
	return track
}
