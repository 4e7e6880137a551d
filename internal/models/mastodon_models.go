package models

// MastodonStatus is the subset of a status object from the Mastodon
// timeline API that the fetcher cares about. CreatedAt stays a raw string;
// the sentiment pipeline owns timestamp parsing.
type MastodonStatus struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	URL       string `json:"url"`
}
