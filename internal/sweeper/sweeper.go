package sweeper

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/eventhive/eventhive/internal/services"
)

const lockKey = "eventhive:reservation_sweep"

// Locker gates a sweep run. TryLock returns false when another process
// holds the lock for the current interval.
type Locker interface {
	TryLock(ctx context.Context, ttl time.Duration) (bool, error)
}

// RedisLocker implements Locker with a SetNX lease so only one instance
// sweeps per interval.
type RedisLocker struct {
	Client *redis.Client
}

func (l *RedisLocker) TryLock(ctx context.Context, ttl time.Duration) (bool, error) {
	return l.Client.SetNX(ctx, lockKey, time.Now().Format(time.RFC3339), ttl).Result()
}

// Run cancels expired payment orders every interval until ctx is done.
// A nil locker means single-instance deployment: sweep unconditionally.
func Run(ctx context.Context, db *gorm.DB, locker Locker, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if locker != nil {
				ok, err := locker.TryLock(ctx, interval)
				if err != nil {
					log.Printf("sweeper: lock error: %v", err)
					continue
				}
				if !ok {
					continue
				}
			}
			n, err := services.CleanupExpiredReservations(db)
			if err != nil {
				log.Printf("sweeper: cleanup failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("sweeper: cancelled %d expired payment orders", n)
			}
		}
	}
}
