package models

// Category groups news articles. Categories are created by seeding only.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
