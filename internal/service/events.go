package service

import (
	"context"
	"encoding/json"

	"github.com/campusworks/rollbook-backend/internal/config"
	"github.com/campusworks/rollbook-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisBroadcaster publishes recorded batches on the attendance events
// channel and bumps the report-cache version so cached branch reports
// are never served stale.
type RedisBroadcaster struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewRedisBroadcaster creates a new RedisBroadcaster.
func NewRedisBroadcaster(rdb *redis.Client, log zerolog.Logger) *RedisBroadcaster {
	return &RedisBroadcaster{
		rdb: rdb,
		log: log.With().Str("component", "broadcaster").Logger(),
	}
}

// BatchRecorded implements Broadcaster. Redis failures are logged and
// swallowed: the batch is already durable in PostgreSQL.
func (b *RedisBroadcaster) BatchRecorded(ctx context.Context, batch []model.Attendance) {
	if err := b.rdb.Incr(ctx, config.RedisKey.ReportVersionKey()).Err(); err != nil {
		b.log.Error().Err(err).Msg("Report version bump failed")
	}

	payload, err := json.Marshal(batch)
	if err != nil {
		b.log.Error().Err(err).Msg("Marshal attendance batch failed")
		return
	}
	if err := b.rdb.Publish(ctx, config.RedisKey.AttendanceEventsChannel(), payload).Err(); err != nil {
		b.log.Error().Err(err).Msg("Publish attendance batch failed")
	}
}
