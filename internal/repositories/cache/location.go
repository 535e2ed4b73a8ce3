package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vigil/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	locationKeyPrefix   = "lastloc:"
	DefaultLocationTTL  = 24 * time.Hour
	locationStampLayout = "2006-01-02 15:04:05"
)

// LocationStore keeps the last successful transaction location per payment
// address in redis. It serves deployments where the transaction history
// lives in another system and only a recent-location feed is available:
// the payment processor calls Record after each successful payment, and
// the store doubles as the risk engine's LastLocationProvider.
type LocationStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLocationStore(client *redis.Client, ttl time.Duration) *LocationStore {
	if client == nil {
		panic("redis client is required")
	}
	if ttl == 0 {
		ttl = DefaultLocationTTL
	}
	return &LocationStore{client: client, ttl: ttl}
}

// Record stores where a successful transaction was observed. Entries
// expire after the TTL; a stale location is worse than none for the
// velocity check.
func (s *LocationStore) Record(ctx context.Context, paymentAddress string, latitude, longitude float64, observedAt time.Time) error {
	loc := models.LastKnownLocation{
		Latitude:  latitude,
		Longitude: longitude,
		Timestamp: observedAt.Format(locationStampLayout),
	}

	payload, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("failed to marshal location: %w", err)
	}

	if err := s.client.Set(ctx, locationKeyPrefix+paymentAddress, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store location: %w", err)
	}
	return nil
}

// GetLastSuccessfulTransaction implements risk.LastLocationProvider. A
// missing key means no known prior location, not an error.
func (s *LocationStore) GetLastSuccessfulTransaction(ctx context.Context, paymentAddress string) (*models.LastKnownLocation, error) {
	payload, err := s.client.Get(ctx, locationKeyPrefix+paymentAddress).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	var loc models.LastKnownLocation
	if err := json.Unmarshal([]byte(payload), &loc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal location: %w", err)
	}
	return &loc, nil
}
