package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (o Options) Addr() string {
	return fmt.Sprintf("%s:%s", o.Host, o.Port)
}

// NewRedisClient dials Redis and fails fast when the server does not answer a
// PING within five seconds.
func NewRedisClient(ctx context.Context, opts Options, log *logrus.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr(),
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr(), err)
	}

	if log != nil {
		log.WithFields(logrus.Fields{"addr": opts.Addr(), "db": opts.DB}).Info("redis connected")
	}

	return rdb, nil
}
