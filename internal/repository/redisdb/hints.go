// Package redisdb keeps the realtime attendance hints: the latest same-day
// scan state per employee, written on every badge scan and consumed by the
// status deriver. Keys expire at the end of the civil day so stale hints
// can never leak into the next one.
package redisdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ems/backend/internal/attendance"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type HintStore struct {
	client *redis.Client
}

func NewHintStore(client *redis.Client) *HintStore {
	return &HintStore{client: client}
}

func hintKey(employeeID string, day time.Time) string {
	return fmt.Sprintf("hint:%s:%s", employeeID, day.In(attendance.Location).Format("2006-01-02"))
}

// Set stores the hint for its own day, expiring at the next midnight in the
// school zone.
func (s *HintStore) Set(ctx context.Context, employeeID string, hint attendance.RealtimeHint) error {
	payload, err := json.Marshal(hint)
	if err != nil {
		return errors.Wrap(err, "marshaling hint")
	}

	local := hint.Day.In(attendance.Location)
	midnight := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, attendance.Location)
	ttl := time.Until(midnight)
	if ttl <= 0 {
		return nil
	}

	if err := s.client.Set(ctx, hintKey(employeeID, hint.Day), payload, ttl).Err(); err != nil {
		return errors.Wrap(err, "storing hint")
	}
	return nil
}

// Get returns the hint for the employee and day, or nil when none is set.
func (s *HintStore) Get(ctx context.Context, employeeID string, day time.Time) (*attendance.RealtimeHint, error) {
	raw, err := s.client.Get(ctx, hintKey(employeeID, day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading hint")
	}

	var hint attendance.RealtimeHint
	if err := json.Unmarshal(raw, &hint); err != nil {
		return nil, errors.Wrap(err, "unmarshaling hint")
	}
	return &hint, nil
}

const snapshotKey = "dashboard:today"

// SetSnapshot caches the derived dashboard rows for today.
func (s *HintStore) SetSnapshot(ctx context.Context, payload []byte, ttl time.Duration) error {
	return s.client.Set(ctx, snapshotKey, payload, ttl).Err()
}

// GetSnapshot returns the cached dashboard rows, or nil when expired.
func (s *HintStore) GetSnapshot(ctx context.Context) ([]byte, error) {
	raw, err := s.client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return raw, err
}
