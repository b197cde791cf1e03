package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mybookshelf/backend/internal/model"
	"github.com/mybookshelf/backend/internal/service"
)

type BookHandler struct {
	svc *service.BookService
}

func NewBookHandler(svc *service.BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

// List godoc
// @Summary List the authenticated user's books
// @Tags books
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Book
// @Router /api/books [get]
func (h *BookHandler) List(c *gin.Context) {
	user := GetAuthUser(c)
	books, err := h.svc.List(c.Request.Context(), user.ID)
	if err != nil {
		writeResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// Get godoc
// @Summary Get one book
// @Tags books
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Book
// @Failure 404 {object} model.MessageResponse
// @Router /api/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	user := GetAuthUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	book, err := h.svc.Get(c.Request.Context(), id, user.ID)
	if err != nil {
		writeResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Create godoc
// @Summary Add a book to the shelf
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} model.Book
// @Failure 400 {object} model.MessageResponse
// @Router /api/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	user := GetAuthUser(c)
	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.MessageResponse{Message: "Invalid request body."})
		return
	}

	book, err := h.svc.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		writeResourceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

// Update godoc
// @Summary Update a book
// @Tags books
// @Accept json
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} model.MessageResponse
// @Router /api/books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	user := GetAuthUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.MessageResponse{Message: "Invalid request body."})
		return
	}

	if err := h.svc.Update(c.Request.Context(), id, user.ID, req); err != nil {
		writeResourceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete godoc
// @Summary Remove a book
// @Tags books
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} model.MessageResponse
// @Router /api/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	user := GetAuthUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, user.ID); err != nil {
		writeResourceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.MessageResponse{Message: "Invalid id."})
		return 0, false
	}
	return id, true
}

func writeResourceError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, model.MessageResponse{Message: validationErr.Reason})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, model.MessageResponse{Message: "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Message: "Unexpected error",
			Error:   "internal error",
		})
	}
}
