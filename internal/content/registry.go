// Package content loads locally authored articles from an embedded set of
// markdown documents. A document's identity is its directory name; the
// frontmatter never carries a slug, so storage location and addressable
// identity cannot drift.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/paulbarron/portfolio/internal/models"
)

//go:embed articles
var articlesFS embed.FS

// ErrNotFound is returned when no local document exists for a slug.
// This is an expected condition; callers fall back to the syndicated feed.
var ErrNotFound = errors.New("local article not found")

const articleFilename = "page.md"

type entry struct {
	meta     models.LocalArticle
	bodyHTML string
}

// Registry is the static slug -> article mapping built once at startup.
// Lookups only consult the prebuilt map; no path is ever constructed from
// request input.
type Registry struct {
	entries map[string]*entry
	order   []string // slugs, reverse-chronological
}

// NewRegistry builds the registry from the embedded article documents
func NewRegistry(defaultAuthor string) (*Registry, error) {
	return newRegistryFromFS(articlesFS, "articles", defaultAuthor)
}

func newRegistryFromFS(fsys fs.FS, root, defaultAuthor string) (*Registry, error) {
	dirs, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("failed to read article directory: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)

	r := &Registry{entries: make(map[string]*entry)}

	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		articleSlug := dir.Name()

		raw, err := fs.ReadFile(fsys, path.Join(root, articleSlug, articleFilename))
		if err != nil {
			return nil, fmt.Errorf("failed to read article %q: %w", articleSlug, err)
		}

		var meta models.LocalArticle
		body, err := frontmatter.Parse(bytes.NewReader(raw), &meta)
		if err != nil {
			return nil, fmt.Errorf("failed to parse frontmatter for %q: %w", articleSlug, err)
		}

		var buf bytes.Buffer
		if err := md.Convert(body, &buf); err != nil {
			return nil, fmt.Errorf("failed to render article %q: %w", articleSlug, err)
		}

		meta.Slug = articleSlug
		if meta.Author == "" {
			meta.Author = defaultAuthor
		}

		r.entries[articleSlug] = &entry{meta: meta, bodyHTML: buf.String()}
		r.order = append(r.order, articleSlug)
	}

	// Reverse-chronological; dates are YYYY-MM-DD so string order is
	// date order. Slug breaks ties to keep the listing stable.
	sort.Slice(r.order, func(i, j int) bool {
		a, b := r.entries[r.order[i]].meta, r.entries[r.order[j]].meta
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		return a.Slug < b.Slug
	})

	return r, nil
}

// List returns the metadata of all local articles, reverse-chronological
func (r *Registry) List() []models.LocalArticle {
	articles := make([]models.LocalArticle, 0, len(r.order))
	for _, s := range r.order {
		articles = append(articles, r.entries[s].meta)
	}
	return articles
}

// Load returns the metadata and rendered HTML body for a slug,
// or ErrNotFound when no such document exists
func (r *Registry) Load(slug string) (models.LocalArticle, string, error) {
	e, ok := r.entries[slug]
	if !ok {
		return models.LocalArticle{}, "", ErrNotFound
	}
	return e.meta, e.bodyHTML, nil
}

// Len reports the number of registered articles
func (r *Registry) Len() int {
	return len(r.entries)
}
