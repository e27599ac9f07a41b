package models

// SyndicatedPost is a normalized entry from the remote Substack RSS feed
type SyndicatedPost struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Slug        string `json:"slug"`
	Date        string `json:"date"` // YYYY-MM-DD, empty when the feed timestamp was missing or unparseable
	Description string `json:"description"`
	ContentHTML string `json:"content_html"`
	Author      string `json:"author"`
}

// LocalArticle is the metadata declared in a local document's frontmatter.
// Slug is never part of the frontmatter itself; the loader derives it from
// the document's directory name and attaches it here.
type LocalArticle struct {
	Title       string `json:"title" yaml:"title"`
	Date        string `json:"date" yaml:"date"`
	Description string `json:"description" yaml:"description"`
	Author      string `json:"author" yaml:"author"`
	Slug        string `json:"slug" yaml:"-"`
}
