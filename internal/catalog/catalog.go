// Package catalog merges locally authored articles and syndicated feed
// posts into one addressable content catalog.
package catalog

import (
	"context"
	"errors"

	"github.com/paulbarron/portfolio/internal/config"
	"github.com/paulbarron/portfolio/internal/content"
	"github.com/paulbarron/portfolio/internal/logger"
	"github.com/paulbarron/portfolio/internal/models"
)

// ErrNotFound is returned when a slug matches neither source. It is the
// only failure the rendering layer ever sees; feed outages degrade to
// local-only content instead.
var ErrNotFound = errors.New("content not found")

// LocalSource enumerates locally authored articles and loads their bodies.
// Load reports content.ErrNotFound for unknown slugs.
type LocalSource interface {
	List() []models.LocalArticle
	Load(slug string) (models.LocalArticle, string, error)
}

// FeedSource retrieves syndicated posts from the remote feed
type FeedSource interface {
	FetchPosts(ctx context.Context, limit int) ([]models.SyndicatedPost, error)
	FetchPostBySlug(ctx context.Context, slug string, limit int) (models.SyndicatedPost, bool, error)
}

type Aggregator struct {
	registry    LocalSource
	fetcher     FeedSource
	feedLimit   int
	lookupLimit int
}

func NewAggregator(registry LocalSource, fetcher FeedSource, cfg *config.Config) *Aggregator {
	return &Aggregator{
		registry:    registry,
		fetcher:     fetcher,
		feedLimit:   cfg.FeedLimit,
		lookupLimit: cfg.FeedLookupLimit,
	}
}

// Catalog assembles the full listing: local articles first (declared
// order, reverse-chronological), then syndicated posts in feed order.
// A syndicated post whose slug collides with a local article is never
// surfaced. Feed failures are absorbed into a local-only listing.
func (a *Aggregator) Catalog(ctx context.Context) []models.ContentItem {
	type fetchResult struct {
		posts []models.SyndicatedPost
		err   error
	}

	results := make(chan fetchResult, 1)
	go func() {
		posts, err := a.fetcher.FetchPosts(ctx, a.feedLimit)
		results <- fetchResult{posts: posts, err: err}
	}()

	locals := a.registry.List()

	res := <-results
	if res.err != nil {
		logger.Get().Warn().
			Err(res.err).
			Msg("Feed unavailable, serving local content only")
		res.posts = nil
	}

	items := make([]models.ContentItem, 0, len(locals)+len(res.posts))
	seen := make(map[string]bool, len(locals))

	for _, article := range locals {
		items = append(items, localItem(article, ""))
		seen[article.Slug] = true
	}

	for _, post := range res.posts {
		// Unaddressable posts (no derivable slug) still appear in the
		// listing, keyed by URL
		if post.Slug != "" {
			if seen[post.Slug] {
				continue
			}
			seen[post.Slug] = true
		}
		items = append(items, syndicatedItem(post, false))
	}

	return items
}

// Item resolves one content item by slug, local content first. The feed
// is only consulted when no local document matches; local content is
// authoritative for its slugs.
func (a *Aggregator) Item(ctx context.Context, slug string) (models.ContentItem, error) {
	if slug == "" {
		return models.ContentItem{}, ErrNotFound
	}

	meta, body, err := a.registry.Load(slug)
	if err == nil {
		return localItem(meta, body), nil
	}
	if !errors.Is(err, content.ErrNotFound) {
		logger.Get().Error().Err(err).Str("slug", slug).Msg("Failed to load local article")
		return models.ContentItem{}, ErrNotFound
	}

	post, found, err := a.fetcher.FetchPostBySlug(ctx, slug, a.lookupLimit)
	if err != nil {
		logger.Get().Warn().
			Err(err).
			Str("slug", slug).
			Msg("Feed unavailable during slug lookup")
		return models.ContentItem{}, ErrNotFound
	}
	if !found {
		return models.ContentItem{}, ErrNotFound
	}

	return syndicatedItem(post, true), nil
}

func localItem(article models.LocalArticle, bodyHTML string) models.ContentItem {
	return models.ContentItem{
		Title:       article.Title,
		Slug:        article.Slug,
		Date:        article.Date,
		Description: article.Description,
		Author:      article.Author,
		Source:      models.SourceLocal,
		BodyHTML:    bodyHTML,
	}
}

func syndicatedItem(post models.SyndicatedPost, withBody bool) models.ContentItem {
	item := models.ContentItem{
		Title:       post.Title,
		Slug:        post.Slug,
		Date:        post.Date,
		Description: post.Description,
		Author:      post.Author,
		Source:      models.SourceSyndicated,
		URL:         post.URL,
	}
	if withBody {
		item.BodyHTML = post.ContentHTML
	}
	return item
}
