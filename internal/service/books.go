package service

import (
	"context"

	"github.com/mybookshelf/backend/internal/db"
	"github.com/mybookshelf/backend/internal/model"
)

// BookStore is implemented by db.Postgres.
type BookStore interface {
	ListBooks(ctx context.Context, userID int64) ([]model.Book, error)
	GetBook(ctx context.Context, id, userID int64) (*model.Book, error)
	CreateBook(ctx context.Context, userID int64, req model.BookRequest) (*model.Book, error)
	UpdateBook(ctx context.Context, id, userID int64, req model.BookRequest) (bool, error)
	DeleteBook(ctx context.Context, id, userID int64) (bool, error)
}

// BookService exposes a user's shelf. Every operation is scoped to the
// owning user; a row belonging to someone else is indistinguishable
// from a missing one.
type BookService struct {
	store BookStore
}

func NewBookService(store BookStore) *BookService {
	return &BookService{store: store}
}

func (s *BookService) List(ctx context.Context, userID int64) ([]model.Book, error) {
	return s.store.ListBooks(ctx, userID)
}

func (s *BookService) Get(ctx context.Context, id, userID int64) (*model.Book, error) {
	book, err := s.store.GetBook(ctx, id, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return book, nil
}

func (s *BookService) Create(ctx context.Context, userID int64, req model.BookRequest) (*model.Book, error) {
	if req.Title == "" {
		return nil, validationError("Title is required.")
	}
	return s.store.CreateBook(ctx, userID, req)
}

func (s *BookService) Update(ctx context.Context, id, userID int64, req model.BookRequest) error {
	if req.Title == "" {
		return validationError("Title is required.")
	}
	ok, err := s.store.UpdateBook(ctx, id, userID, req)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *BookService) Delete(ctx context.Context, id, userID int64) error {
	ok, err := s.store.DeleteBook(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
