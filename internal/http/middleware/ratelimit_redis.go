package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window limiter over Redis INCR/EXPIRE. With no
// usable Redis it fails open: every request passes.
type RateLimiter struct {
	client *redis.Client
}

// NewRateLimiter connects to Redis. An empty addr or a failed ping leaves
// the client nil, which keeps the API available without limiting.
func NewRateLimiter(addr, password string, db int) *RateLimiter {
	rl := &RateLimiter{}
	if addr == "" {
		return rl
	}

	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err == nil {
		rl.client = client
	}
	return rl
}

// Limit caps requests per client IP within the window.
// key format: rl:<window_seconds>:<identifier>
func (rl *RateLimiter) Limit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.client == nil {
			c.Next()
			return
		}

		key := "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + c.ClientIP()
		rl.check(c, key, maxRequests, window, c.FullPath())
	}
}

// LimitPerUser caps requests per authenticated user. Requires the JWT
// middleware to have run first.
func (rl *RateLimiter) LimitPerUser(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.client == nil {
			c.Next()
			return
		}

		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID, ok := userIDVal.(int64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user"})
			return
		}

		key := "rl_user:" + strconv.FormatInt(userID, 10) + ":" + strconv.FormatInt(int64(window.Seconds()), 10)
		rl.check(c, key, maxRequests, window, "user:"+c.FullPath())
	}
}

func (rl *RateLimiter) check(c *gin.Context, key string, maxRequests int, window time.Duration, endpoint string) {
	ctx := context.Background()

	val, err := rl.client.Incr(ctx, key).Result()
	if err != nil {
		// on Redis error, fail-open (allow) but set header
		c.Header("X-RateLimit-Error", "redis-error")
		c.Next()
		return
	}

	if val == 1 {
		// first increment, set expiry
		rl.client.Expire(ctx, key, window)
	}

	if val > int64(maxRequests) {
		RLBlocked.WithLabelValues(endpoint).Inc()
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	RLRequests.WithLabelValues(endpoint).Inc()
	c.Next()
}
