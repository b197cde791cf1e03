package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/mybookshelf/backend/internal/model"
	"github.com/mybookshelf/backend/internal/service"
)

type memBookStore struct {
	books  map[int64]*model.Book
	nextID int64
}

func newMemBookStore() *memBookStore {
	return &memBookStore{books: map[int64]*model.Book{}}
}

func (s *memBookStore) ListBooks(ctx context.Context, userID int64) ([]model.Book, error) {
	list := []model.Book{}
	for _, b := range s.books {
		if b.UserID == userID {
			list = append(list, *b)
		}
	}
	return list, nil
}

func (s *memBookStore) GetBook(ctx context.Context, id, userID int64) (*model.Book, error) {
	b, ok := s.books[id]
	if !ok || b.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	copied := *b
	return &copied, nil
}

func (s *memBookStore) CreateBook(ctx context.Context, userID int64, req model.BookRequest) (*model.Book, error) {
	s.nextID++
	b := &model.Book{ID: s.nextID, Title: req.Title, Author: req.Author, PublishedAt: req.PublishedAt, UserID: userID}
	s.books[b.ID] = b
	copied := *b
	return &copied, nil
}

func (s *memBookStore) UpdateBook(ctx context.Context, id, userID int64, req model.BookRequest) (bool, error) {
	b, ok := s.books[id]
	if !ok || b.UserID != userID {
		return false, nil
	}
	b.Title, b.Author, b.PublishedAt = req.Title, req.Author, req.PublishedAt
	return true, nil
}

func (s *memBookStore) DeleteBook(ctx context.Context, id, userID int64) (bool, error) {
	b, ok := s.books[id]
	if !ok || b.UserID != userID {
		return false, nil
	}
	delete(s.books, id)
	return true, nil
}

func newBookRouter(t *testing.T, store service.BookStore, userID int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	books := NewBookHandler(service.NewBookService(store))
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(authUserKey, &model.AuthUser{ID: userID, Email: "a@x.com", Username: "a"})
	})
	r.GET("/api/books", books.List)
	r.POST("/api/books", books.Create)
	r.GET("/api/books/:id", books.Get)
	r.PUT("/api/books/:id", books.Update)
	r.DELETE("/api/books/:id", books.Delete)
	return r
}

func TestBookCRUD(t *testing.T) {
	store := newMemBookStore()
	r := newBookRouter(t, store, 1)

	w := doJSON(t, r, http.MethodPost, "/api/books", `{"title":"Pippi Långstrump","author":"Astrid Lindgren"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	var created model.Book
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created book: %v", err)
	}
	if created.ID == 0 || created.Title != "Pippi Långstrump" {
		t.Fatalf("unexpected created book: %+v", created)
	}

	w = doJSON(t, r, http.MethodGet, "/api/books", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, "/api/books/1", `{"title":"Pippi Goes Aboard","author":"Astrid Lindgren"}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("update: expected 204, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/books/1", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/books/1", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", w.Code)
	}
}

func TestBookCreateRequiresTitle(t *testing.T) {
	r := newBookRouter(t, newMemBookStore(), 1)

	w := doJSON(t, r, http.MethodPost, "/api/books", `{"author":"Astrid Lindgren"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestBookAccessIsOwnerScoped(t *testing.T) {
	store := newMemBookStore()
	owner := newBookRouter(t, store, 1)
	other := newBookRouter(t, store, 2)

	if w := doJSON(t, owner, http.MethodPost, "/api/books", `{"title":"Mio, min Mio"}`); w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", w.Code)
	}

	// Another user's row looks exactly like a missing one.
	if w := doJSON(t, other, http.MethodGet, "/api/books/1", ""); w.Code != http.StatusNotFound {
		t.Fatalf("foreign get: expected 404, got %d", w.Code)
	}
	if w := doJSON(t, other, http.MethodDelete, "/api/books/1", ""); w.Code != http.StatusNotFound {
		t.Fatalf("foreign delete: expected 404, got %d", w.Code)
	}
	if w := doJSON(t, owner, http.MethodGet, "/api/books/1", ""); w.Code != http.StatusOK {
		t.Fatalf("owner get: expected 200, got %d", w.Code)
	}
}
