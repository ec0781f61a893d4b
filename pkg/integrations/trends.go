package integrations

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/LopezVillaFrancisco/wollen-music-app/pkg/domain"
)

const (
	DefaultTrendBatchSize  = 10
	DefaultTrendBatchDelay = 200 * time.Millisecond
)

// TagTrackSource is the part of the catalog the trend aggregation reads.
type TagTrackSource interface {
	TagTopTracks(ctx context.Context, tag string, limit int) ([]domain.Track, error)
	TrackInfo(ctx context.Context, artist, track string) (*domain.TrackInfo, error)
}

type TrendAggregatorConfig struct {
	BatchSize  int
	BatchDelay time.Duration
	Logger     *slog.Logger
}

// TrendAggregator buckets a tag's top tracks by release year. Tracks are looked
// up in sequential batches with a fixed pause between batches.
type TrendAggregator struct {
	source     TagTrackSource
	batchSize  int
	batchDelay time.Duration
	logger     *slog.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

func NewTrendAggregator(source TagTrackSource, config TrendAggregatorConfig) *TrendAggregator {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultTrendBatchSize
	}
	if config.BatchDelay <= 0 {
		config.BatchDelay = DefaultTrendBatchDelay
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &TrendAggregator{
		source:     source,
		batchSize:  config.BatchSize,
		batchDelay: config.BatchDelay,
		logger:     config.Logger,
		sleep:      sleepContext,
	}
}

// Aggregate fetches up to query.Limit tracks for the tag and counts the ones
// whose release year falls in the query's range. Failed lookups are logged and
// skipped. Cancelling ctx aborts the run once the current batch settles.
func (a *TrendAggregator) Aggregate(ctx context.Context, query domain.TrendQuery) (*domain.TrendResult, error) {
	tracks, err := a.source.TagTopTracks(ctx, query.Tag, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top tracks for tag %q: %w", query.Tag, err)
	}

	result := &domain.TrendResult{
		Tag:    query.Tag,
		Trends: []domain.YearBucket{},
	}
	if len(tracks) == 0 {
		return result, nil
	}

	counts := make(map[int]int)
	withDate := 0

	for start := 0; start < len(tracks); start += a.batchSize {
		end := min(start+a.batchSize, len(tracks))

		for _, year := range a.resolveBatch(ctx, tracks[start:end]) {
			if year == 0 || !query.Contains(year) {
				continue
			}
			counts[year]++
			withDate++
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("trend aggregation for tag %q interrupted: %w", query.Tag, err)
		}

		if end < len(tracks) {
			if err := a.sleep(ctx, a.batchDelay); err != nil {
				return nil, fmt.Errorf("trend aggregation for tag %q interrupted: %w", query.Tag, err)
			}
		}
	}

	for year, count := range counts {
		result.Trends = append(result.Trends, domain.YearBucket{Year: year, Count: count})
	}
	sort.Slice(result.Trends, func(i, j int) bool {
		return result.Trends[i].Year < result.Trends[j].Year
	})

	result.Coverage = domain.Coverage{
		Total:      len(tracks),
		WithDate:   withDate,
		Percentage: fmt.Sprintf("%.1f", float64(withDate)/float64(len(tracks))*100),
	}
	return result, nil
}

// resolveBatch looks up every track of the batch concurrently and returns the
// release year of each, zero where none was found.
func (a *TrendAggregator) resolveBatch(ctx context.Context, batch []domain.Track) []int {
	years := make([]int, len(batch))

	var g errgroup.Group
	for i, track := range batch {
		g.Go(func() error {
			info, err := a.source.TrackInfo(ctx, track.Artist, track.Name)
			if err != nil {
				a.logger.Warn("trend lookup failed", "track", track.Name, "artist", track.Artist, "err", err)
				return nil
			}
			if year, ok := releaseYear(info); ok {
				years[i] = year
			}
			return nil
		})
	}
	_ = g.Wait()

	return years
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
