package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pomoweb/internal/dto"
	apierrors "pomoweb/internal/errors"
	"pomoweb/internal/middleware"
	"pomoweb/internal/services"
	"pomoweb/internal/utils"
)

// TaskHandler coordinates task CRUD for the authenticated user.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the current user's tasks, newest first.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.taskService.ListTasks(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
	})
}

// CreateTask adds a task for the current user. The estimate is best-effort:
// numbers, numeric strings, and garbage are all accepted, garbage becoming
// the default.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Description string      `json:"description"`
		Estimated   interface{} `json:"estimated"`
	}

	var req CreateTaskRequest
	if utils.WantsJSON(c) {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}
	} else {
		req.Description = c.PostForm("description")
		req.Estimated = c.PostForm("estimated")
	}

	task, err := h.taskService.AddTask(services.AddTaskInput{
		OwnerID:     userID,
		Description: req.Description,
		Estimated:   req.Estimated,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ToggleTask flips a task's completion state. XHR and JSON clients get a
// JSON result; plain form posts are bounced back to where they came from.
func (h *TaskHandler) ToggleTask(c *gin.Context) {
	userID, taskID, ok := h.taskRequest(c)
	if !ok {
		return
	}

	task, err := h.taskService.ToggleTask(taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	if utils.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"completed": task.Completed,
			"id":        task.ID,
		})
		return
	}
	c.Redirect(http.StatusSeeOther, utils.RefererOr(c, "/api/tasks"))
}

// DeleteTask permanently removes a task owned by the current user.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, taskID, ok := h.taskRequest(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	if utils.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"id":      taskID,
		})
		return
	}
	c.Redirect(http.StatusSeeOther, utils.RefererOr(c, "/api/tasks"))
}

func (h *TaskHandler) taskRequest(c *gin.Context) (userID, taskID uint64, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return 0, 0, false
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, 0, false
	}

	return userID, taskID, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyDescription):
		apierrors.BadRequest(c, "Task description is required")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrNotTaskOwner):
		apierrors.Forbidden(c, "Unauthorized")
	default:
		apierrors.InternalError(c, "")
	}
}
