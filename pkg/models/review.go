package models

import "time"

type Review struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	Text    string    `json:"text"`
	Email   string    `json:"email"`
	Rating  int       `json:"rating"`
	Created time.Time `json:"created"`
}
