package middleware

import (
	"net/http/httptest"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func TestOpRateLimitCapsOperations(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("principal", "wallet1")
		return c.Next()
	})
	app.Use(OpRateLimit(cache, 2))
	app.Post("/op", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/op", nil))
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		statuses = append(statuses, resp.StatusCode)
	}

	if statuses[0] != fiber.StatusCreated || statuses[1] != fiber.StatusCreated {
		t.Fatalf("first two requests should pass, got %v", statuses)
	}
	if statuses[2] != fiber.StatusTooManyRequests {
		t.Fatalf("third request should be limited, got %v", statuses)
	}
}

func TestOpRateLimitFailsOpenWithoutRedis(t *testing.T) {
	app := fiber.New()
	app.Use(OpRateLimit(nil, 1))
	app.Post("/op", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/op", nil))
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		if resp.StatusCode != fiber.StatusCreated {
			t.Fatalf("expected pass-through without redis, got %d", resp.StatusCode)
		}
	}
}
