package models

// Source identifies where a content item came from
type Source string

const (
	// SourceLocal marks articles authored in this repository
	SourceLocal Source = "local"
	// SourceSyndicated marks posts pulled from the remote Substack feed
	SourceSyndicated Source = "syndicated"
)

// ContentItem is the unified view of an article consumed by the frontend,
// regardless of whether it was authored locally or syndicated from the feed
type ContentItem struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Date        string `json:"date"` // YYYY-MM-DD, empty when the source date was unparseable
	Description string `json:"description"`
	Author      string `json:"author"`
	Source      Source `json:"source"`
	URL         string `json:"url,omitempty"`       // canonical upstream URL for syndicated posts
	BodyHTML    string `json:"body_html,omitempty"` // only populated on detail lookups
}

// Addressable reports whether the item can be resolved by slug.
// Items with no derivable slug are listed keyed by URL instead.
func (c ContentItem) Addressable() bool {
	return c.Slug != ""
}
