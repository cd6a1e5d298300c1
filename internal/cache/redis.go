package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fastbreak/courtvision/internal/store"
)

// Completed analyses change rarely; an hour keeps repeat report fetches off
// the database without risking staleness.
const analysisTTL = time.Hour

// RedisCache handles caching of completed analyses.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache connection.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
	}, nil
}

// Close closes the Redis connection.
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client.
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify connection.
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

func analysisKey(analysisID string) string {
	return "analysis:" + analysisID
}

// cacheEnvelope re-exposes the payload bytes, which the record's API form
// deliberately leaves out of its JSON.
type cacheEnvelope struct {
	store.AnalysisRecord
	Payload []byte `json:"payload"`
}

// CacheAnalysis stores a completed analysis record, payload included.
func (rc *RedisCache) CacheAnalysis(ctx context.Context, rec *store.AnalysisRecord) error {
	data, err := json.Marshal(cacheEnvelope{AnalysisRecord: *rec, Payload: rec.Payload})
	if err != nil {
		return fmt.Errorf("marshal analysis %s for cache: %w", rec.AnalysisID, err)
	}
	return rc.client.Set(ctx, analysisKey(rec.AnalysisID), data, analysisTTL).Err()
}

// GetAnalysis retrieves a cached analysis record. A cache miss returns
// (nil, nil); only transport failures are errors.
func (rc *RedisCache) GetAnalysis(ctx context.Context, analysisID string) (*store.AnalysisRecord, error) {
	data, err := rc.client.Get(ctx, analysisKey(analysisID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var env cacheEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal cached analysis %s: %w", analysisID, err)
	}
	rec := env.AnalysisRecord
	rec.Payload = env.Payload
	return &rec, nil
}

// InvalidateAnalysis removes cached entries.
func (rc *RedisCache) InvalidateAnalysis(ctx context.Context, analysisIDs ...string) error {
	keys := make([]string, len(analysisIDs))
	for i, id := range analysisIDs {
		keys[i] = analysisKey(id)
	}
	return rc.client.Del(ctx, keys...).Err()
}
