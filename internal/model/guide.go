package model

type Guide struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Stage       string `json:"stage"` // "pre-departure" or "post-arrival"
	Order       int    `json:"order"`
	ReadTime    int    `json:"readTime"`
	Content     string `json:"-"`
	HTMLContent string `json:"html,omitempty"`
}

// ChecklistItem is a static to-do entry shipped with a guide.
type ChecklistItem struct {
	ID          string `json:"id" yaml:"id"`
	Category    string `json:"category" yaml:"category"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Link        string `json:"link,omitempty" yaml:"link"`
}
