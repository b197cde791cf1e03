package model

import "time"

type Book struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	PublishedAt *time.Time `json:"publishedAt"`
	UserID      int64      `json:"-"`
}

type BookRequest struct {
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	PublishedAt *time.Time `json:"publishedAt"`
}
