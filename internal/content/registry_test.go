package content

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

const firstPost = `---
title: "First post"
date: "2025-01-01"
description: "The first one"
---

## Heading

Some **bold** text.
`

const secondPost = `---
title: "Second post"
date: "2025-02-01"
description: "The second one"
author: "Guest Author"
---

Plain paragraph.
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"articles/first-post/page.md":  {Data: []byte(firstPost)},
		"articles/second-post/page.md": {Data: []byte(secondPost)},
	}
}

func TestRegistry_ListReverseChronological(t *testing.T) {
	r, err := newRegistryFromFS(testFS(), "articles", "Paul Barron")
	if err != nil {
		t.Fatalf("newRegistryFromFS returned error: %v", err)
	}

	articles := r.List()
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].Slug != "second-post" || articles[1].Slug != "first-post" {
		t.Errorf("expected reverse-chronological order, got %q then %q",
			articles[0].Slug, articles[1].Slug)
	}
}

func TestRegistry_SlugComesFromDirectoryName(t *testing.T) {
	r, err := newRegistryFromFS(testFS(), "articles", "Paul Barron")
	if err != nil {
		t.Fatalf("newRegistryFromFS returned error: %v", err)
	}

	meta, _, err := r.Load("first-post")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if meta.Slug != "first-post" {
		t.Errorf("expected slug attached from directory name, got %q", meta.Slug)
	}
}

func TestRegistry_DefaultAuthor(t *testing.T) {
	r, err := newRegistryFromFS(testFS(), "articles", "Paul Barron")
	if err != nil {
		t.Fatalf("newRegistryFromFS returned error: %v", err)
	}

	first, _, _ := r.Load("first-post")
	if first.Author != "Paul Barron" {
		t.Errorf("expected default author applied, got %q", first.Author)
	}

	second, _, _ := r.Load("second-post")
	if second.Author != "Guest Author" {
		t.Errorf("expected declared author preserved, got %q", second.Author)
	}
}

func TestRegistry_RendersMarkdown(t *testing.T) {
	r, err := newRegistryFromFS(testFS(), "articles", "Paul Barron")
	if err != nil {
		t.Fatalf("newRegistryFromFS returned error: %v", err)
	}

	_, body, err := r.Load("first-post")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !strings.Contains(body, "<h2") {
		t.Errorf("expected rendered heading, got %q", body)
	}
	if !strings.Contains(body, "<strong>bold</strong>") {
		t.Errorf("expected rendered emphasis, got %q", body)
	}
}

func TestRegistry_LoadUnknownSlug(t *testing.T) {
	r, err := newRegistryFromFS(testFS(), "articles", "Paul Barron")
	if err != nil {
		t.Fatalf("newRegistryFromFS returned error: %v", err)
	}

	if _, _, err := r.Load("no-such-article"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRegistry_EmbeddedArticlesLoad(t *testing.T) {
	r, err := NewRegistry("Paul Barron")
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}
	if r.Len() == 0 {
		t.Fatal("expected embedded articles to be registered")
	}

	if _, _, err := r.Load("hello-world"); err != nil {
		t.Errorf("expected hello-world to resolve, got %v", err)
	}
}
