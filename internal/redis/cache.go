package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"taubit/internal/domain"
)

// CacheStore handles transit line caching in Redis. Line listings are read
// far more often than lines are rated, so the full listing is cached and
// invalidated wholesale on any rating write.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// LineCacheTTL bounds staleness of cached line listings.
const LineCacheTTL = 30 * time.Second

const lineListCachePrefix = "cache:lines:"

// CachedLine represents a cached transit line entity.
type CachedLine struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"rating_count"`
	Reliability int     `json:"reliability"`
	NoiseLevel  string  `json:"noise_level"`
	Occupancy   string  `json:"occupancy"`
	Status      string  `json:"status"`
}

// CachedLineFrom converts a transit line into its cached form.
func CachedLineFrom(line *domain.TransitLine) CachedLine {
	return CachedLine{
		ID:          line.ID,
		Name:        line.Name,
		Type:        string(line.Type),
		Rating:      line.AverageRating,
		RatingCount: line.RatingCount,
		Reliability: line.Reliability,
		NoiseLevel:  string(line.NoiseLevel),
		Occupancy:   string(line.Occupancy),
		Status:      string(line.Status),
	}
}

// ToDomain converts a cached line back into a transit line.
func (c CachedLine) ToDomain() *domain.TransitLine {
	return &domain.TransitLine{
		ID:            c.ID,
		Name:          c.Name,
		Type:          domain.LineType(c.Type),
		AverageRating: c.Rating,
		RatingCount:   c.RatingCount,
		Reliability:   c.Reliability,
		NoiseLevel:    domain.CrowdLevel(c.NoiseLevel),
		Occupancy:     domain.CrowdLevel(c.Occupancy),
		Status:        domain.LineStatus(c.Status),
	}
}

// GetLines retrieves a cached line listing for a filter key.
// Returns nil on cache miss.
func (s *CacheStore) GetLines(ctx context.Context, filterKey string) ([]CachedLine, error) {
	data, err := s.client.Get(ctx, lineListCachePrefix+filterKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var lines []CachedLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// SetLines stores a line listing for a filter key.
func (s *CacheStore) SetLines(ctx context.Context, filterKey string, lines []CachedLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, lineListCachePrefix+filterKey, data, LineCacheTTL).Err()
}

// InvalidateLines drops all cached line listings. Called after any rating
// write so readers never see an average older than the TTL.
func (s *CacheStore) InvalidateLines(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, lineListCachePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
