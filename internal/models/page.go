package models

// Page is the standard paginated list envelope returned by most platform
// list endpoints.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// PageLinks holds the navigation links of a [LinkedPage].
type PageLinks struct {
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// LinkedPage is the richer paginated wrapper some resources return, carrying
// explicit links and a page total alongside the results.
type LinkedPage[T any] struct {
	Links      PageLinks `json:"links"`
	TotalPages int       `json:"total_pages"`
	Count      int       `json:"count"`
	Results    []T       `json:"results"`
}

// HasNext reports whether another page follows.
func (p Page[T]) HasNext() bool { return p.Next != nil }

// HasNext reports whether another page follows.
func (p LinkedPage[T]) HasNext() bool { return p.Links.Next != nil }
