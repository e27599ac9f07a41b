package middleware

import (
	"bytes"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/paulbarron/portfolio/internal/cache"
	"github.com/paulbarron/portfolio/internal/logger"
	"github.com/paulbarron/portfolio/internal/utils"
)

// entries are stored as "<content-type>\x00<body>"
var cacheSep = []byte{0}

// ResponseCache caches successful GET responses for the given
// revalidation window, keyed by request URL. This is the hosting-layer
// page cache; handlers behind it recompute from scratch on every miss.
func ResponseCache(store cache.Cache, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet {
			return c.Next()
		}

		key := utils.Hash(c.OriginalURL())

		if entry, ok, err := store.Get(c.Context(), key); err == nil && ok {
			contentType, body, found := bytes.Cut(entry, cacheSep)
			if found {
				c.Set(fiber.HeaderContentType, string(contentType))
				c.Set("X-Cache", "HIT")
				return c.Send(body)
			}
		} else if err != nil {
			logger.Get().Warn().Err(err).Msg("Response cache read failed")
		}

		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() == fiber.StatusOK {
			contentType := c.Response().Header.ContentType()
			entry := make([]byte, 0, len(contentType)+1+len(c.Response().Body()))
			entry = append(entry, contentType...)
			entry = append(entry, cacheSep...)
			entry = append(entry, c.Response().Body()...)

			if err := store.Set(c.Context(), key, entry, ttl); err != nil {
				logger.Get().Warn().Err(err).Msg("Response cache write failed")
			}
			c.Set("X-Cache", "MISS")
		}

		return nil
	}
}
