package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/sburn-labs/sburn/internal/logging"
)

func setupTestApp(t *testing.T) (*fiber.App, *int, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := fiber.New()
	app.Use(Idempotency(cache, time.Minute, logging.Discard()))

	hits := 0
	app.Post("/transfer", func(c *fiber.Ctx) error {
		hits++
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"net": 997_500})
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}

	return app, &hits, cleanup
}

func TestIdempotencyRequiresHeader(t *testing.T) {
	app, _, cleanup := setupTestApp(t)
	defer cleanup()

	req := httptest.NewRequest(fiber.MethodPost, "/transfer", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected %d got %d", fiber.StatusBadRequest, resp.StatusCode)
	}
}

func TestIdempotencyReplaysWithoutReexecuting(t *testing.T) {
	app, hits, cleanup := setupTestApp(t)
	defer cleanup()

	send := func() (int, string) {
		req := httptest.NewRequest(fiber.MethodPost, "/transfer", strings.NewReader("{}"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(idempotencyKeyHeader, "op-1")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		resp.Body.Close()
		return resp.StatusCode, string(body)
	}

	status1, body1 := send()
	status2, body2 := send()

	if status1 != fiber.StatusCreated || status2 != fiber.StatusCreated {
		t.Fatalf("expected %d for both requests, got %d and %d", fiber.StatusCreated, status1, status2)
	}
	if body1 != body2 {
		t.Fatalf("cached payload mismatch: %q vs %q", body1, body2)
	}
	if *hits != 1 {
		t.Fatalf("handler invoked %d times, want 1", *hits)
	}
}

func TestIdempotencyIgnoresReads(t *testing.T) {
	app, _, cleanup := setupTestApp(t)
	defer cleanup()

	app.Get("/balance", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// No Idempotency-Key required on GET.
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/balance", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected %d got %d", fiber.StatusOK, resp.StatusCode)
	}
}
