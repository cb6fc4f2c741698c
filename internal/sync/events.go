package sync

import "time"

const NewsCreated = "news.created"

type NewsEvent struct {
	Type       string    `json:"type"` // "news.created"
	NewsID     int64     `json:"news_id"`
	CategoryID int64     `json:"category_id"`
	Title      string    `json:"title"`
	At         time.Time `json:"at"`
}
