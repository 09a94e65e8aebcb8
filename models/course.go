package models

// Course is a single entry of the course catalog. Records are read-only once
// the catalog is loaded; ID is the position in the catalog.
type Course struct {
	ID         int    `yaml:"-" json:"id"`
	Category   string `yaml:"category" json:"category"`
	Title      string `yaml:"title" json:"title"`
	DetailText string `yaml:"details" json:"details"`
	URL        string `yaml:"url,omitempty" json:"url,omitempty"`
	Image      string `yaml:"image,omitempty" json:"image,omitempty"`
	Badge      string `yaml:"badge,omitempty" json:"badge,omitempty"`
}

// FacetOption is one selectable value of a filter dropdown or sidebar link
type FacetOption struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// FAQItem is a question shown in the FAQ accordion. Answer is markdown;
// AnswerHTML is filled in when the catalog is loaded.
type FAQItem struct {
	Question   string `yaml:"question" json:"question"`
	Answer     string `yaml:"answer" json:"answer"`
	AnswerHTML string `yaml:"-" json:"-"`
}
