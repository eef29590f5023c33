package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"pomoweb/internal/constants"
	"pomoweb/internal/models"
	"pomoweb/internal/repository"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrNotTaskOwner     = errors.New("task belongs to another user")
	ErrEmptyDescription = errors.New("task description is required")
)

// TaskService handles task business logic. Every operation takes the acting
// user id explicitly; there is no ambient current user.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// AddTaskInput represents input for creating a task. Estimated carries the
// raw decoded value from the request so estimates survive sloppy clients.
type AddTaskInput struct {
	OwnerID     uint64
	Description string
	Estimated   interface{}
}

// ListTasks returns the owner's tasks, newest first.
func (s *TaskService) ListTasks(ownerID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// AddTask creates a self-owned task. The estimate is coerced, never
// rejected: absent, unparseable, or non-positive values become the default.
func (s *TaskService) AddTask(input AddTaskInput) (*models.Task, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	task := &models.Task{
		UserID:      input.OwnerID,
		Description: description,
		Estimated:   CoerceEstimate(input.Estimated),
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ToggleTask flips a task's completed flag. completed_at is set exactly
// when the flag turns true and cleared when it turns false; the two fields
// change in the same save.
func (s *TaskService) ToggleTask(taskID, callerID uint64) (*models.Task, error) {
	task, err := s.findOwnedTask(taskID, callerID)
	if err != nil {
		return nil, err
	}

	task.Completed = !task.Completed
	if task.Completed {
		now := time.Now().UTC()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}

	return task, nil
}

// DeleteTask permanently deletes a task owned by the caller.
func (s *TaskService) DeleteTask(taskID, callerID uint64) error {
	if _, err := s.findOwnedTask(taskID, callerID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

func (s *TaskService) findOwnedTask(taskID, callerID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.UserID != callerID {
		return nil, ErrNotTaskOwner
	}

	return task, nil
}

// CoerceEstimate turns whatever a client sent as an estimate into a
// positive unit count. JSON numbers arrive as float64, form values as
// strings; anything that does not parse to a positive integer falls back
// to the default.
func CoerceEstimate(raw interface{}) int {
	switch v := raw.(type) {
	case nil:
		return constants.DefaultEstimatedUnits
	case float64:
		if v >= 1 {
			return int(v)
		}
	case int:
		if v >= 1 {
			return v
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 1 {
			return n
		}
	}
	return constants.DefaultEstimatedUnits
}
