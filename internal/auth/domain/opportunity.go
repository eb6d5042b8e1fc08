package domain

import "time"

// Opportunity is a posted listing athletes can browse. Served from the
// authenticated catalog endpoint.
type Opportunity struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Sport        string    `json:"sport"`
	Level        string    `json:"level"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	PostedBy     string    `json:"postedBy"`
	PostedAt     time.Time `json:"postedAt"`
	Deadline     time.Time `json:"deadline"`
}

// OpportunityFilter narrows a catalog listing. Zero values mean no
// constraint on that field.
type OpportunityFilter struct {
	Sport string
	Level string
	Page  int
	Limit int
}
