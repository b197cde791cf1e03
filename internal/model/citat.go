package model

import "time"

// CitatRequest is the payload for creating or updating a citat: a
// saved quotation, optionally linked to a book on the same shelf.
type CitatRequest struct {
	Text   string  `json:"text"`
	Author *string `json:"author"`
	BookID *int64  `json:"bookId"`
}

// CitatResponse carries the display author: the citat's own author when
// set, otherwise the linked book's author.
type CitatResponse struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Author    *string   `json:"author"`
	BookID    *int64    `json:"bookId"`
	BookTitle *string   `json:"bookTitle"`
	CreatedAt time.Time `json:"createdAt"`
}
