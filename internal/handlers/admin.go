package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pomoweb/internal/dto"
	apierrors "pomoweb/internal/errors"
	"pomoweb/internal/middleware"
	"pomoweb/internal/services"
)

// AdminHandler exposes the admin dashboard aggregate and the privileged
// task-assignment path.
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// Overview returns every user with their task breakdown.
func (h *AdminHandler) Overview(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	overview, err := h.adminService.Overview(userID)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserTasksDTOs(overview),
	})
}

// AssignTask creates a task owned by another user.
func (h *AdminHandler) AssignTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type AssignTaskRequest struct {
		UserID      uint64      `json:"user_id" binding:"required"`
		Description string      `json:"description"`
		Estimated   interface{} `json:"estimated"`
	}

	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.adminService.AssignTask(services.AssignTaskInput{
		CallerID:     userID,
		TargetUserID: req.UserID,
		Description:  req.Description,
		Estimated:    req.Estimated,
	})
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

func respondAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotAdmin):
		apierrors.Forbidden(c, "Administrator access required")
	case errors.Is(err, services.ErrTargetNotFound):
		apierrors.BadRequest(c, "Target user does not exist")
	case errors.Is(err, services.ErrEmptyDescription):
		apierrors.BadRequest(c, "Task description is required")
	default:
		apierrors.InternalError(c, "")
	}
}
