// Package fleet reserves municipal vehicles for reports so that two
// dispatches never receive the same vehicle.
package fleet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Reserver is an atomic check-and-set over vehicle ownership.
type Reserver interface {
	// Reserve claims vehicleID for reportID. It returns false when another
	// report already holds the vehicle.
	Reserve(ctx context.Context, vehicleID, reportID string) (bool, error)
	Release(ctx context.Context, vehicleID string) error
	// Holder returns the report holding vehicleID, or "" when it is free.
	Holder(ctx context.Context, vehicleID string) (string, error)
}

// MemoryReserver keeps reservations in process memory.
type MemoryReserver struct {
	mu   sync.Mutex
	held map[string]string
}

func NewMemoryReserver() *MemoryReserver {
	return &MemoryReserver{held: make(map[string]string)}
}

func (r *MemoryReserver) Reserve(_ context.Context, vehicleID, reportID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if holder, ok := r.held[vehicleID]; ok {
		return holder == reportID, nil
	}
	r.held[vehicleID] = reportID
	return true, nil
}

func (r *MemoryReserver) Release(_ context.Context, vehicleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.held, vehicleID)
	return nil
}

func (r *MemoryReserver) Holder(_ context.Context, vehicleID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.held[vehicleID], nil
}

// RedisReserver stores one key per reserved vehicle. SETNX gives the
// check-and-set across service instances; the TTL frees vehicles whose
// release was lost.
type RedisReserver struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisReserver(client *redis.Client, prefix string, ttl time.Duration) *RedisReserver {
	if prefix == "" {
		prefix = "fleet:reservation"
	}
	return &RedisReserver{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisReserver) key(vehicleID string) string {
	return r.prefix + ":" + vehicleID
}

func (r *RedisReserver) Reserve(ctx context.Context, vehicleID, reportID string) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.key(vehicleID), reportID, r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reserve vehicle %s: %w", vehicleID, err)
	}
	if ok {
		return true, nil
	}
	holder, err := r.Holder(ctx, vehicleID)
	if err != nil {
		return false, err
	}
	return holder == reportID, nil
}

func (r *RedisReserver) Release(ctx context.Context, vehicleID string) error {
	if err := r.client.Del(ctx, r.key(vehicleID)).Err(); err != nil {
		return fmt.Errorf("release vehicle %s: %w", vehicleID, err)
	}
	return nil
}

func (r *RedisReserver) Holder(ctx context.Context, vehicleID string) (string, error) {
	holder, err := r.client.Get(ctx, r.key(vehicleID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read reservation %s: %w", vehicleID, err)
	}
	return holder, nil
}
