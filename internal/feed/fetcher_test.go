package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/paulbarron/portfolio/internal/config"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>Test Newsletter</title>
    <link>https://example.substack.com</link>
    <item>
      <title>Newest post</title>
      <link>https://example.substack.com/p/newest-post?utm_source=rss</link>
      <pubDate>Mon, 02 Jun 2025 14:00:00 GMT</pubDate>
      <dc:creator>Guest Writer</dc:creator>
      <description>Short snippet</description>
      <content:encoded><![CDATA[<p>Full <strong>encoded</strong> body of the newest post.</p>]]></content:encoded>
    </item>
    <item>
      <title>Snippet only</title>
      <link>https://example.substack.com/p/snippet-only</link>
      <pubDate>Wed, 14 May 2025 09:30:00 GMT</pubDate>
      <description>Only a plain description here</description>
    </item>
    <item>
      <title>Undated post</title>
      <link>https://example.substack.com/p/undated-post</link>
      <description>No timestamp on this one</description>
    </item>
  </channel>
</rss>`

func testConfig(feedURL string) *config.Config {
	return &config.Config{
		FeedURL:         feedURL,
		FeedLimit:       10,
		FeedLookupLimit: 50,
		SiteAuthor:      "Paul Barron",
	}
}

func newFeedServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchPosts_NormalizesItems(t *testing.T) {
	srv := newFeedServer(t, feedXML, http.StatusOK)
	fetcher := NewFetcher(testConfig(srv.URL))

	posts, err := fetcher.FetchPosts(context.Background(), 10)
	if err != nil {
		t.Fatalf("FetchPosts returned error: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}

	newest := posts[0]
	if newest.Slug != "newest-post" {
		t.Errorf("expected slug derived from link, got %q", newest.Slug)
	}
	if newest.Date != "2025-06-02" {
		t.Errorf("expected normalized date 2025-06-02, got %q", newest.Date)
	}
	if newest.Author != "Guest Writer" {
		t.Errorf("expected feed creator as author, got %q", newest.Author)
	}
	// Full encoded content wins over the plain description
	if !strings.Contains(newest.ContentHTML, "<strong>encoded</strong>") {
		t.Errorf("expected encoded content selected, got %q", newest.ContentHTML)
	}
	if strings.Contains(newest.Description, "<") {
		t.Errorf("description must be plain text, got %q", newest.Description)
	}
}

func TestFetchPosts_FallsBackToDescription(t *testing.T) {
	srv := newFeedServer(t, feedXML, http.StatusOK)
	fetcher := NewFetcher(testConfig(srv.URL))

	posts, err := fetcher.FetchPosts(context.Background(), 10)
	if err != nil {
		t.Fatalf("FetchPosts returned error: %v", err)
	}

	snippetOnly := posts[1]
	if snippetOnly.ContentHTML != "Only a plain description here" {
		t.Errorf("expected description fallback, got %q", snippetOnly.ContentHTML)
	}
	if snippetOnly.Author != "Paul Barron" {
		t.Errorf("expected default author, got %q", snippetOnly.Author)
	}
}

func TestFetchPosts_UnparseableDateNormalizesToEmpty(t *testing.T) {
	srv := newFeedServer(t, feedXML, http.StatusOK)
	fetcher := NewFetcher(testConfig(srv.URL))

	posts, err := fetcher.FetchPosts(context.Background(), 10)
	if err != nil {
		t.Fatalf("FetchPosts returned error: %v", err)
	}

	undated := posts[2]
	if undated.Date != "" {
		t.Errorf("expected empty date for missing timestamp, got %q", undated.Date)
	}
}

func TestFetchPosts_AppliesLimit(t *testing.T) {
	srv := newFeedServer(t, feedXML, http.StatusOK)
	fetcher := NewFetcher(testConfig(srv.URL))

	posts, err := fetcher.FetchPosts(context.Background(), 1)
	if err != nil {
		t.Fatalf("FetchPosts returned error: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected limit of 1 applied, got %d posts", len(posts))
	}
	if posts[0].Title != "Newest post" {
		t.Errorf("expected most-recent-first order preserved, got %q", posts[0].Title)
	}
}

func TestFetchPosts_NonOKStatus(t *testing.T) {
	srv := newFeedServer(t, "gone", http.StatusBadGateway)
	fetcher := NewFetcher(testConfig(srv.URL))

	if _, err := fetcher.FetchPosts(context.Background(), 10); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestFetchPosts_MalformedXML(t *testing.T) {
	srv := newFeedServer(t, "this is not a feed", http.StatusOK)
	fetcher := NewFetcher(testConfig(srv.URL))

	if _, err := fetcher.FetchPosts(context.Background(), 10); err == nil {
		t.Fatal("expected error on unparseable feed")
	}
}

func TestFetchPostBySlug(t *testing.T) {
	srv := newFeedServer(t, feedXML, http.StatusOK)
	fetcher := NewFetcher(testConfig(srv.URL))

	post, found, err := fetcher.FetchPostBySlug(context.Background(), "snippet-only", 50)
	if err != nil {
		t.Fatalf("FetchPostBySlug returned error: %v", err)
	}
	if !found {
		t.Fatal("expected post to be found")
	}
	if post.Title != "Snippet only" {
		t.Errorf("wrong post matched: %q", post.Title)
	}

	_, found, err = fetcher.FetchPostBySlug(context.Background(), "missing-slug", 50)
	if err != nil {
		t.Fatalf("FetchPostBySlug returned error: %v", err)
	}
	if found {
		t.Error("expected no match for unknown slug")
	}
}
