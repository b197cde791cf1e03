package service

import (
	"context"

	"github.com/mybookshelf/backend/internal/db"
	"github.com/mybookshelf/backend/internal/model"
)

const topCitatLimit = 5

// CitatStore is implemented by db.Postgres.
type CitatStore interface {
	ListCitats(ctx context.Context, userID int64) ([]model.CitatResponse, error)
	ListTopCitats(ctx context.Context, userID int64, limit int) ([]model.CitatResponse, error)
	GetCitat(ctx context.Context, id, userID int64) (*model.CitatResponse, error)
	CreateCitat(ctx context.Context, userID int64, req model.CitatRequest) (*model.CitatResponse, error)
	UpdateCitat(ctx context.Context, id, userID int64, req model.CitatRequest) (bool, error)
	DeleteCitat(ctx context.Context, id, userID int64) (bool, error)
}

type CitatService struct {
	store CitatStore
}

func NewCitatService(store CitatStore) *CitatService {
	return &CitatService{store: store}
}

func (s *CitatService) List(ctx context.Context, userID int64) ([]model.CitatResponse, error) {
	return s.store.ListCitats(ctx, userID)
}

func (s *CitatService) Top(ctx context.Context, userID int64) ([]model.CitatResponse, error) {
	return s.store.ListTopCitats(ctx, userID, topCitatLimit)
}

func (s *CitatService) Get(ctx context.Context, id, userID int64) (*model.CitatResponse, error) {
	citat, err := s.store.GetCitat(ctx, id, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return citat, nil
}

func (s *CitatService) Create(ctx context.Context, userID int64, req model.CitatRequest) (*model.CitatResponse, error) {
	if req.Text == "" {
		return nil, validationError("Text is required.")
	}
	if req.Author != nil && *req.Author == "" {
		req.Author = nil
	}
	return s.store.CreateCitat(ctx, userID, req)
}

func (s *CitatService) Update(ctx context.Context, id, userID int64, req model.CitatRequest) error {
	if req.Text == "" {
		return validationError("Text is required.")
	}
	if req.Author != nil && *req.Author == "" {
		req.Author = nil
	}
	ok, err := s.store.UpdateCitat(ctx, id, userID, req)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *CitatService) Delete(ctx context.Context, id, userID int64) error {
	ok, err := s.store.DeleteCitat(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
