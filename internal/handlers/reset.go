package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pomoweb/internal/constants"
	apierrors "pomoweb/internal/errors"
	"pomoweb/internal/services"
	"pomoweb/internal/token"
)

// ResetHandler coordinates the forgot-password flow.
type ResetHandler struct {
	resetService *services.PasswordResetService
}

// NewResetHandler creates a new ResetHandler
func NewResetHandler(resetService *services.PasswordResetService) *ResetHandler {
	return &ResetHandler{
		resetService: resetService,
	}
}

// Forgot requests a reset link. The response is the same whether or not the
// identifier matched an account.
func (h *ResetHandler) Forgot(c *gin.Context) {
	type ForgotRequest struct {
		Identifier string `json:"identifier" binding:"required"`
	}

	var req ForgotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.resetService.RequestReset(req.Identifier); err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If that account exists, a reset link has been sent. Check your email.",
	})
}

// VerifyToken checks a reset link before the new-password form is shown,
// so expired and invalid links get their own messaging.
func (h *ResetHandler) VerifyToken(c *gin.Context) {
	if _, err := h.resetService.VerifyToken(c.Param("token")); err != nil {
		respondResetError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
	})
}

// CompleteReset sets a new password for the token's account.
func (h *ResetHandler) CompleteReset(c *gin.Context) {
	type ResetRequest struct {
		Password string `json:"password" binding:"required"`
		Confirm  string `json:"confirm" binding:"required"`
	}

	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.resetService.CompleteReset(c.Param("token"), req.Password, req.Confirm); err != nil {
		respondResetError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"redirect": constants.LoginPath,
	})
}

func respondResetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, token.ErrExpired):
		apierrors.TokenExpired(c)
	case errors.Is(err, token.ErrInvalid):
		apierrors.TokenInvalid(c)
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, "Password must be at least 6 characters.")
	case errors.Is(err, services.ErrPasswordMismatch):
		apierrors.BadRequest(c, "Passwords do not match.")
	default:
		apierrors.InternalError(c, "")
	}
}
