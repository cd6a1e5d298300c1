// Package publisher emits completed analyses onto Redis streams for
// downstream consumers (report builders, dashboards).
package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fastbreak/courtvision/internal/store"
)

// AnalysisStream is the stream completed analyses are published to.
const AnalysisStream = "analysis.completed.basketball"

// RedisStreamPublisher publishes analysis events to Redis streams.
type RedisStreamPublisher struct {
	client *redis.Client
}

// NewRedisStreamPublisher creates a publisher over an existing client.
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
	}
}

// NewRedisPublisher creates a publisher with its own connection.
func NewRedisPublisher(redisURL string) (*RedisStreamPublisher, error) {
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

	return &RedisStreamPublisher{
		client: client,
	}, nil
}

// Close closes the Redis connection.
func (rsp *RedisStreamPublisher) Close() error {
	return rsp.client.Close()
}

// PublishAnalysisCompleted publishes a completed analysis record to the
// analysis stream. The full payload travels in the message so consumers
// need no database access.
func (rsp *RedisStreamPublisher) PublishAnalysisCompleted(ctx context.Context, rec *store.AnalysisRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return rsp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: AnalysisStream,
		Values: map[string]interface{}{
			"analysis_id": rec.AnalysisID,
			"our_team":    rec.OurTeam,
			"opponent":    rec.OpponentTeam,
			"data":        string(data),
			"payload":     string(rec.Payload),
			"timestamp":   time.Now().Unix(),
		},
	}).Err()
}
