package models

// ImageResult is the projected view of one search hit. Transient: replaced
// wholesale on each search, never persisted.
type ImageResult struct {
	URL   string
	Title string
}

// RawImage mirrors the richer record the search endpoint returns.
type RawImage struct {
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
	Title     string `json:"title"`
}

// Project reduces a server record to the displayed form: thumbnail preferred
// over the full url, missing titles become "Untitled Image".
func (r RawImage) Project() ImageResult {
	url := r.Thumbnail
	if url == "" {
		url = r.URL
	}
	title := r.Title
	if title == "" {
		title = "Untitled Image"
	}
	return ImageResult{URL: url, Title: title}
}
