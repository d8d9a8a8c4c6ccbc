package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// OrderLocker bounds concurrent ticket issuance for a single order. Lock
// blocks until the order lock is held or the attempt is abandoned; the
// returned function releases it.
type OrderLocker interface {
	Lock(ctx context.Context, orderID int) (release func(), err error)
}

// NewOrderLocker picks the lock backend: redis when a client is configured
// (multi-instance deployments), an in-process keyed mutex otherwise.
func NewOrderLocker(client *redis.Client, ttl time.Duration) OrderLocker {
	if client != nil {
		return NewRedisOrderLocker(client, ttl)
	}
	return newLocalOrderLocker()
}

// RedisOrderLocker implements OrderLocker with a redis SetNX lease. The TTL
// caps how long a crashed issuer can hold the lock.
type RedisOrderLocker struct {
	client   *redis.Client
	ttl      time.Duration
	retry    time.Duration
	newToken func() string
}

// NewRedisOrderLocker creates a redis-backed order locker.
func NewRedisOrderLocker(client *redis.Client, ttl time.Duration) *RedisOrderLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisOrderLocker{
		client:   client,
		ttl:      ttl,
		retry:    100 * time.Millisecond,
		newToken: uuid.NewString,
	}
}

func issueLockKey(orderID int) string {
	return fmt.Sprintf("ticket:issue:%d", orderID)
}

// Lock acquires the per-order lease, polling while another issuer holds it.
func (l *RedisOrderLocker) Lock(ctx context.Context, orderID int) (func(), error) {
	key := issueLockKey(orderID)
	token := l.newToken()
	deadline := time.Now().Add(l.ttl)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire issuance lock: %w", err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("issuance lock for order %d is held", orderID)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		// Only drop the lease if it is still ours; an expired lease may
		// already belong to another issuer.
		if val, err := l.client.Get(ctx, key).Result(); err == nil && val == token {
			l.client.Del(ctx, key)
		}
	}
	return release, nil
}

// localOrderLocker is the single-process fallback: one mutex per order id.
type localOrderLocker struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func newLocalOrderLocker() *localOrderLocker {
	return &localOrderLocker{locks: make(map[int]*sync.Mutex)}
}

func (l *localOrderLocker) Lock(ctx context.Context, orderID int) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[orderID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[orderID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}
