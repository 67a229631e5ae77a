package model

import "time"

// Project is the top-level container every discovery record belongs to.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Tag is a free-form label attached to stakeholders, problems and outcomes.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TagNames returns the names of tags in their stored order.
// It never returns nil so the JSON form is always an array.
func TagNames(tags []Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}
