package models

import "time"

type News struct {
	ID           int64     `json:"id"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"` // joined from categories on read
	Title        string    `json:"title"`
	Text         string    `json:"text"`
	Created      time.Time `json:"created"`
}
