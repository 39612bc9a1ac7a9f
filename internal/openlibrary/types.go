package openlibrary

// Doc is one raw document from /search.json. Every field is optional.
type Doc struct {
	Key                   string   `json:"key,omitempty"`
	Title                 string   `json:"title,omitempty"`
	TitleSuggest          string   `json:"title_suggest,omitempty"`
	AuthorName            []string `json:"author_name,omitempty"`
	AuthorAlternativeName []string `json:"author_alternative_name,omitempty"`
	FirstPublishYear      int      `json:"first_publish_year,omitempty"`
	PublishYear           []int    `json:"publish_year,omitempty"`
	Publisher             []string `json:"publisher,omitempty"`
	CoverI                int64    `json:"cover_i,omitempty"`
}

// SearchResponse is the subset of the search payload the widget reads.
type SearchResponse struct {
	NumFound int   `json:"numFound"`
	Start    int   `json:"start"`
	Docs     []Doc `json:"docs"`
}
