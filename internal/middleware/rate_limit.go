package middleware

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// OpRateLimit caps mutating ledger operations per principal per minute
// using Redis. Without Redis, or on cache errors, it fails open: rate
// limiting is a protection layer, not a correctness requirement.
func OpRateLimit(cache *redis.Client, maxPerMin int) fiber.Handler {
	if maxPerMin <= 0 {
		maxPerMin = 60
	}
	return func(c *fiber.Ctx) error {
		if cache == nil {
			return c.Next()
		}
		principal, _ := c.Locals("principal").(string)
		if principal == "" {
			principal = c.IP()
		}
		key := "rl:ops:" + principal
		cnt, err := cache.Incr(c.UserContext(), key).Result()
		if err != nil {
			return c.Next()
		}
		if cnt == 1 {
			cache.Expire(c.UserContext(), key, time.Minute)
		}
		if cnt > int64(maxPerMin) {
			return fiber.NewError(http.StatusTooManyRequests, "too many operations, try again later")
		}
		return c.Next()
	}
}
