package db

import (
	"context"

	"github.com/mybookshelf/backend/internal/model"
)

// citat rows are returned joined with their optional book so handlers
// can fall back to the book's author and show its title.
const citatSelect = `
	SELECT c.id, c.text, c.author, c.book_id, b.title, b.author, c.created_at
	FROM citats c
	LEFT JOIN books b ON b.id = c.book_id
`

func (db *Postgres) ListCitats(ctx context.Context, userID int64) ([]model.CitatResponse, error) {
	query := citatSelect + `
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC
	`
	return db.queryCitats(ctx, query, userID)
}

func (db *Postgres) ListTopCitats(ctx context.Context, userID int64, limit int) ([]model.CitatResponse, error) {
	query := citatSelect + `
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2
	`
	return db.queryCitats(ctx, query, userID, limit)
}

func (db *Postgres) GetCitat(ctx context.Context, id, userID int64) (*model.CitatResponse, error) {
	query := citatSelect + `
		WHERE c.id = $1 AND c.user_id = $2
	`
	var c model.CitatResponse
	var bookTitle, bookAuthor *string
	err := db.Pool.QueryRow(ctx, query, id, userID).Scan(
		&c.ID, &c.Text, &c.Author, &c.BookID, &bookTitle, &bookAuthor, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	applyBookFallback(&c, bookTitle, bookAuthor)
	return &c, nil
}

func (db *Postgres) CreateCitat(ctx context.Context, userID int64, req model.CitatRequest) (*model.CitatResponse, error) {
	query := `
		INSERT INTO citats (text, author, book_id, created_at, user_id)
		VALUES ($1, $2, $3, NOW(), $4)
		RETURNING id
	`
	var id int64
	if err := db.Pool.QueryRow(ctx, query, req.Text, req.Author, req.BookID, userID).Scan(&id); err != nil {
		return nil, err
	}
	return db.GetCitat(ctx, id, userID)
}

func (db *Postgres) UpdateCitat(ctx context.Context, id, userID int64, req model.CitatRequest) (bool, error) {
	query := `
		UPDATE citats
		SET text = $3, author = $4, book_id = $5
		WHERE id = $1 AND user_id = $2
	`
	tag, err := db.Pool.Exec(ctx, query, id, userID, req.Text, req.Author, req.BookID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (db *Postgres) DeleteCitat(ctx context.Context, id, userID int64) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM citats WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (db *Postgres) queryCitats(ctx context.Context, query string, args ...any) ([]model.CitatResponse, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.CitatResponse
	for rows.Next() {
		var c model.CitatResponse
		var bookTitle, bookAuthor *string
		if err := rows.Scan(&c.ID, &c.Text, &c.Author, &c.BookID, &bookTitle, &bookAuthor, &c.CreatedAt); err != nil {
			return nil, err
		}
		applyBookFallback(&c, bookTitle, bookAuthor)
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if list == nil {
		list = []model.CitatResponse{}
	}
	return list, nil
}

func applyBookFallback(c *model.CitatResponse, bookTitle, bookAuthor *string) {
	c.BookTitle = bookTitle
	if (c.Author == nil || *c.Author == "") && bookAuthor != nil && *bookAuthor != "" {
		c.Author = bookAuthor
	}
}
