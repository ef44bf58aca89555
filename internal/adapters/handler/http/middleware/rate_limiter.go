package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RateLimiterMiddleware implements a fixed window counter in Redis. Callers
// are keyed by user id when authenticated and by client IP otherwise. Redis
// failures let the request through.
func RateLimiterMiddleware(rdb *redis.Client, limit int, window time.Duration, log *logrus.Logger) gin.HandlerFunc {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:ip:%s", c.ClientIP())
		if userID, ok := GetUserID(c); ok {
			key = fmt.Sprintf("rate_limit:user:%s", userID)
		}

		ctx := c.Request.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.WithError(err).WithField("key", key).Warn("rate limiter skipped: redis unavailable")
			c.Next()
			return
		}

		if count == 1 {
			if err := rdb.Expire(ctx, key, window).Err(); err != nil {
				log.WithError(err).WithField("key", key).Warn("rate limiter expire failed, dropping key")
				rdb.Del(ctx, key)
				c.Next()
				return
			}
		}

		ttl, err := rdb.TTL(ctx, key).Result()
		if err != nil || ttl <= 0 {
			ttl = window
		}

		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":     "error",
				"message":    "Too many requests. Slow down!",
				"retry_in_s": int(ttl.Seconds()),
			})
			return
		}

		c.Next()
	}
}
