package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/paulbarron/portfolio/internal/avatar"
	"github.com/paulbarron/portfolio/internal/catalog"
	"github.com/paulbarron/portfolio/internal/config"
	"github.com/paulbarron/portfolio/internal/content"
	"github.com/paulbarron/portfolio/internal/feed"
	"github.com/paulbarron/portfolio/internal/logger"
	"github.com/paulbarron/portfolio/internal/middleware"
	"github.com/paulbarron/portfolio/internal/newsletter"
)

type Handlers struct {
	config     *config.Config
	aggregator *catalog.Aggregator
	avatar     *avatar.Client
	newsletter *newsletter.Client
	validator  *middleware.Validator
}

func NewHandlers(cfg *config.Config) (*Handlers, error) {
	registry, err := content.NewRegistry(cfg.SiteAuthor)
	if err != nil {
		return nil, fmt.Errorf("failed to build article registry: %w", err)
	}

	fetcher := feed.NewFetcher(cfg)

	return &Handlers{
		config:     cfg,
		aggregator: catalog.NewAggregator(registry, fetcher, cfg),
		avatar:     avatar.NewClient(cfg),
		newsletter: newsletter.NewClient(cfg),
		validator:  middleware.NewValidator(),
	}, nil
}

// HealthCheck handles the /health endpoint
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": "1.0.0",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// ListArticles handles GET /api/v1/articles
func (h *Handlers) ListArticles(c *fiber.Ctx) error {
	items := h.aggregator.Catalog(c.Context())

	return c.JSON(fiber.Map{
		"total": len(items),
		"items": items,
	})
}

// GetArticle handles GET /api/v1/articles/:slug
func (h *Handlers) GetArticle(c *fiber.Ctx) error {
	slug := c.Params("slug")

	item, err := h.aggregator.Item(c.Context(), slug)
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			logger.Get().Error().Err(err).Str("slug", slug).Msg("Error resolving article")
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Article not found",
		})
	}

	return c.JSON(item)
}

// GetAvatar handles GET /api/avatar: it resolves the profile picture URL
// upstream and streams the image bytes through from our own domain
func (h *Handlers) GetAvatar(c *fiber.Ctx) error {
	if !h.avatar.Configured() {
		return c.Status(fiber.StatusInternalServerError).SendString("Missing IG access token")
	}

	imageURL, err := h.avatar.ProfilePictureURL(c.Context())
	if err != nil {
		if errors.Is(err, avatar.ErrNoProfilePicture) {
			return c.Status(fiber.StatusNotFound).SendString("No profile picture")
		}
		logger.Get().Error().Err(err).Msg("Failed to fetch profile")
		return c.Status(fiber.StatusBadGateway).SendString("Failed to fetch profile")
	}

	image, contentType, err := h.avatar.FetchImage(c.Context(), imageURL)
	if err != nil {
		logger.Get().Error().Err(err).Msg("Failed to fetch avatar image")
		return c.Status(fiber.StatusBadGateway).SendString("Failed to fetch image")
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, fmt.Sprintf("public, max-age=%d", int(h.config.AvatarCacheTTL.Seconds())))
	return c.Send(image)
}

type subscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Subscribe handles POST /api/subscribe
func (h *Handlers) Subscribe(c *fiber.Ctx) error {
	if !h.config.NewsletterConfigured() {
		logger.Get().Error().Msg("Missing Mailchimp configuration")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server is not configured correctly.",
		})
	}

	var req subscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A valid email address is required.",
		})
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := h.validator.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A valid email address is required.",
		})
	}

	result, err := h.newsletter.Subscribe(c.Context(), req.Email)
	if err != nil {
		logger.Get().Error().Err(err).Msg("Subscription failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to subscribe. Please try again later.",
		})
	}

	return c.JSON(result)
}
