package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mybookshelf/backend/internal/model"
	"github.com/mybookshelf/backend/internal/service"
)

type CitatHandler struct {
	svc *service.CitatService
}

func NewCitatHandler(svc *service.CitatService) *CitatHandler {
	return &CitatHandler{svc: svc}
}

// List godoc
// @Summary List the authenticated user's citats, newest first
// @Tags citats
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.CitatResponse
// @Router /api/citat [get]
func (h *CitatHandler) List(c *gin.Context) {
	user := GetAuthUser(c)
	citats, err := h.svc.List(c.Request.Context(), user.ID)
	if err != nil {
		writeResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, citats)
}

// Top godoc
// @Summary The five most recent citats
// @Tags citats
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.CitatResponse
// @Router /api/citat/top5 [get]
func (h *CitatHandler) Top(c *gin.Context) {
	user := GetAuthUser(c)
	citats, err := h.svc.Top(c.Request.Context(), user.ID)
	if err != nil {
		writeResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, citats)
}

// Get godoc
// @Summary Get one citat
// @Tags citats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.CitatResponse
// @Failure 404 {object} model.MessageResponse
// @Router /api/citat/{id} [get]
func (h *CitatHandler) Get(c *gin.Context) {
	user := GetAuthUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	citat, err := h.svc.Get(c.Request.Context(), id, user.ID)
	if err != nil {
		writeResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, citat)
}

// Create godoc
// @Summary Save a citat, optionally linked to a book
// @Tags citats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} model.CitatResponse
// @Failure 400 {object} model.MessageResponse
// @Router /api/citat [post]
func (h *CitatHandler) Create(c *gin.Context) {
	user := GetAuthUser(c)
	var req model.CitatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.MessageResponse{Message: "Invalid request body."})
		return
	}

	citat, err := h.svc.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		writeResourceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, citat)
}

// Update godoc
// @Summary Update a citat
// @Tags citats
// @Accept json
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} model.MessageResponse
// @Router /api/citat/{id} [put]
func (h *CitatHandler) Update(c *gin.Context) {
	user := GetAuthUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.CitatRequest
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
// @Summary Remove a citat
// @Tags citats
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} model.MessageResponse
// @Router /api/citat/{id} [delete]
func (h *CitatHandler) Delete(c *gin.Context) {
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
