package db

import (
	"context"

	"github.com/mybookshelf/backend/internal/model"
)

func (db *Postgres) EnsureLibrarySchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS books (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT NOT NULL DEFAULT '',
			published_at TIMESTAMPTZ,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE
		)
		`,
		`CREATE INDEX IF NOT EXISTS books_user_id_idx ON books(user_id)`,
		`
		CREATE TABLE IF NOT EXISTS citats (
			id BIGSERIAL PRIMARY KEY,
			text TEXT NOT NULL,
			author TEXT,
			book_id BIGINT REFERENCES books(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE
		)
		`,
		`CREATE INDEX IF NOT EXISTS citats_user_id_idx ON citats(user_id)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

func (db *Postgres) ListBooks(ctx context.Context, userID int64) ([]model.Book, error) {
	query := `
		SELECT id, title, author, published_at, user_id
		FROM books
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.PublishedAt, &b.UserID); err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if list == nil {
		list = []model.Book{}
	}
	return list, nil
}

func (db *Postgres) GetBook(ctx context.Context, id, userID int64) (*model.Book, error) {
	query := `
		SELECT id, title, author, published_at, user_id
		FROM books
		WHERE id = $1 AND user_id = $2
	`
	var b model.Book
	err := db.Pool.QueryRow(ctx, query, id, userID).Scan(&b.ID, &b.Title, &b.Author, &b.PublishedAt, &b.UserID)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (db *Postgres) CreateBook(ctx context.Context, userID int64, req model.BookRequest) (*model.Book, error) {
	query := `
		INSERT INTO books (title, author, published_at, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, author, published_at, user_id
	`
	var b model.Book
	err := db.Pool.QueryRow(ctx, query, req.Title, req.Author, req.PublishedAt, userID).Scan(
		&b.ID, &b.Title, &b.Author, &b.PublishedAt, &b.UserID,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (db *Postgres) UpdateBook(ctx context.Context, id, userID int64, req model.BookRequest) (bool, error) {
	query := `
		UPDATE books
		SET title = $3, author = $4, published_at = $5
		WHERE id = $1 AND user_id = $2
	`
	tag, err := db.Pool.Exec(ctx, query, id, userID, req.Title, req.Author, req.PublishedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (db *Postgres) DeleteBook(ctx context.Context, id, userID int64) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM books WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
