package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mybookshelf/backend/internal/model"
	"github.com/mybookshelf/backend/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account. Username defaults to the local part of the email.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Registration payload"
// @Success 200 {object} model.MessageResponse
// @Failure 400 {object} model.MessageResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.MessageResponse{Message: "Invalid request body."})
		return
	}

	if err := h.svc.Register(c.Request.Context(), req); err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.MessageResponse{Message: "Registered successfully"})
}

// Login godoc
// @Summary Login
// @Description Verifies credentials and returns a signed session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Email and password"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} model.MessageResponse
// @Failure 401 {object} model.MessageResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.MessageResponse{Message: "Invalid request body."})
		return
	}

	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, model.MessageResponse{Message: "Email and password are required."})
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{Token: token, Email: req.Email})
}

func writeAuthError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, model.MessageResponse{Message: validationErr.Reason})
	case errors.Is(err, service.ErrEmailExists):
		c.JSON(http.StatusBadRequest, model.MessageResponse{Message: "Email already exists."})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, model.MessageResponse{Message: "Invalid email or password"})
	default:
		// The cause is already logged inside the service; the caller
		// gets a generic message only.
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Message: "Unexpected error",
			Error:   "internal error",
		})
	}
}
