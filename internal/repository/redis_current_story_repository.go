package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jtbrown6/language-storygen/pkg/model"
)

// snapshotRetention is how many snapshots are kept per device.
const snapshotRetention = 5

type redisCurrentStoryRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisCurrentStoryRepository creates a Redis-backed CurrentStoryRepository.
// Each device maps to a list keyed by deviceId; LPUSH + LTRIM keeps the
// newest-first history bounded in a single pipeline.
func NewRedisCurrentStoryRepository(client *redis.Client, logger *zap.Logger) CurrentStoryRepository {
	return &redisCurrentStoryRepository{
		client: client,
		logger: logger.Named("CurrentStoryRepo"),
	}
}

func snapshotKey(deviceID string) string {
	return fmt.Sprintf("current_story:%s", deviceID)
}

func (r *redisCurrentStoryRepository) SaveSnapshot(ctx context.Context, snapshot *model.CurrentStory) error {
	log := r.logger.With(zap.String("deviceID", snapshot.DeviceID))

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal current story snapshot: %w", err)
	}

	key := snapshotKey(snapshot.DeviceID)
	pipe := r.client.Pipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, snapshotRetention-1)

	if _, err := pipe.Exec(ctx); err != nil {
		log.Error("Failed to save current story snapshot", zap.Error(err))
		return fmt.Errorf("failed to save current story snapshot for device %s: %w", snapshot.DeviceID, err)
	}

	log.Debug("Current story snapshot saved", zap.String("snapshotID", snapshot.ID.String()))
	return nil
}

func (r *redisCurrentStoryRepository) Latest(ctx context.Context, deviceID string) (*model.CurrentStory, error) {
	log := r.logger.With(zap.String("deviceID", deviceID))

	payload, err := r.client.LIndex(ctx, snapshotKey(deviceID), 0).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			log.Debug("No current story snapshot for device")
			return nil, model.ErrNotFound
		}
		log.Error("Failed to get current story snapshot", zap.Error(err))
		return nil, fmt.Errorf("failed to get current story for device %s: %w", deviceID, err)
	}

	var snapshot model.CurrentStory
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		log.Error("Corrupted current story snapshot", zap.Error(err))
		return nil, fmt.Errorf("corrupted current story data for device %s: %w", deviceID, err)
	}
	return &snapshot, nil
}

func (r *redisCurrentStoryRepository) Purge(ctx context.Context, deviceID string) (int64, error) {
	log := r.logger.With(zap.String("deviceID", deviceID))

	key := snapshotKey(deviceID)
	count, err := r.client.LLen(ctx, key).Result()
	if err != nil {
		log.Error("Failed to count current story snapshots", zap.Error(err))
		return 0, fmt.Errorf("failed to count snapshots for device %s: %w", deviceID, err)
	}

	if err := r.client.Del(ctx, key).Err(); err != nil {
		log.Error("Failed to purge current story snapshots", zap.Error(err))
		return 0, fmt.Errorf("failed to purge snapshots for device %s: %w", deviceID, err)
	}

	log.Info("Current story snapshots purged", zap.Int64("count", count))
	return count, nil
}
