// Package feed retrieves the remote Substack RSS feed and normalizes its
// entries into syndicated posts.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"

	"github.com/paulbarron/portfolio/internal/config"
	"github.com/paulbarron/portfolio/internal/logger"
	"github.com/paulbarron/portfolio/internal/models"
	"github.com/paulbarron/portfolio/internal/sanitize"
	"github.com/paulbarron/portfolio/internal/slug"
)

// descriptionLimit bounds the plain-text excerpt derived from post content
const descriptionLimit = 280

type Fetcher struct {
	client        *resty.Client
	parser        *gofeed.Parser
	feedURL       string
	defaultAuthor string
}

func NewFetcher(cfg *config.Config) *Fetcher {
	// A failed fetch degrades to an empty listing, so no retries here
	return &Fetcher{
		client: resty.New().
			SetTimeout(30 * time.Second).
			SetHeader("Accept", "application/rss+xml, application/xml, text/xml"),
		parser:        gofeed.NewParser(),
		feedURL:       cfg.FeedURL,
		defaultAuthor: cfg.SiteAuthor,
	}
}

// FetchPosts retrieves the feed and returns up to limit posts,
// most-recent-first in feed order. Transport, status, and parse failures
// are returned as errors; callers absorb them into an empty listing.
func (f *Fetcher) FetchPosts(ctx context.Context, limit int) ([]models.SyndicatedPost, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(f.feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed from %s: %w", f.feedURL, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode(), f.feedURL)
	}

	parsed, err := f.parser.ParseString(string(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := parsed.Items
	if len(items) > limit {
		items = items[:limit]
	}

	posts := make([]models.SyndicatedPost, 0, len(items))
	for _, item := range items {
		posts = append(posts, f.normalizeItem(item))
	}

	logger.Get().Debug().
		Int("items", len(posts)).
		Str("url", f.feedURL).
		Msg("Fetched syndicated posts")

	return posts, nil
}

// FetchPostBySlug scans up to limit posts for one whose derived slug
// matches. The second return value reports whether a match was found.
func (f *Fetcher) FetchPostBySlug(ctx context.Context, s string, limit int) (models.SyndicatedPost, bool, error) {
	posts, err := f.FetchPosts(ctx, limit)
	if err != nil {
		return models.SyndicatedPost{}, false, err
	}
	for _, post := range posts {
		if post.Slug != "" && post.Slug == s {
			return post, true, nil
		}
	}
	return models.SyndicatedPost{}, false, nil
}

// normalizeItem converts a gofeed.Item into a SyndicatedPost
func (f *Fetcher) normalizeItem(item *gofeed.Item) models.SyndicatedPost {
	// First non-empty wins: full encoded content, then the plain
	// description/snippet the feed carries
	contentHTML := coalesce(item.Content, item.Description)

	post := models.SyndicatedPost{
		Title:       item.Title,
		URL:         item.Link,
		Slug:        slug.Derive(item.Link),
		Date:        normalizeDate(item.PublishedParsed),
		Description: sanitize.Excerpt(contentHTML, descriptionLimit),
		ContentHTML: contentHTML,
		Author:      f.defaultAuthor,
	}

	if item.Author != nil && item.Author.Name != "" {
		post.Author = item.Author.Name
	}

	return post
}

// normalizeDate renders a feed timestamp as a YYYY-MM-DD calendar date.
// A missing or unparseable timestamp normalizes to "" rather than an error.
func normalizeDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

// coalesce returns the first non-empty string from the provided values
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
