package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"pomoweb/internal/models"
	"pomoweb/internal/repository"
)

var (
	ErrNotAdmin       = errors.New("caller is not an administrator")
	ErrTargetNotFound = errors.New("target user does not exist")
)

// AdminService handles the privileged task-assignment path and the admin
// dashboard aggregate.
type AdminService struct {
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(userRepo repository.UserRepository, taskRepo repository.TaskRepository) *AdminService {
	return &AdminService{
		userRepo: userRepo,
		taskRepo: taskRepo,
	}
}

// AssignTaskInput represents input for assigning a task to another user.
type AssignTaskInput struct {
	CallerID     uint64
	TargetUserID uint64
	Description  string
	Estimated    interface{}
}

// AssignTask creates a task owned by the target user. This is the only
// path by which a task's owner differs from its creator.
func (s *AdminService) AssignTask(input AssignTaskInput) (*models.Task, error) {
	if err := s.requireAdmin(input.CallerID); err != nil {
		return nil, err
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	if _, err := s.userRepo.FindByID(input.TargetUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, fmt.Errorf("failed to find target user: %w", err)
	}

	task := &models.Task{
		UserID:          input.TargetUserID,
		Description:     description,
		Estimated:       CoerceEstimate(input.Estimated),
		AssignedByAdmin: true,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UserTasks pairs a user with their tasks for the admin breakdown.
type UserTasks struct {
	User  models.User
	Tasks []models.Task
}

// Overview returns every user with their tasks, users ordered by username
// and tasks newest first. Read-only.
func (s *AdminService) Overview(callerID uint64) ([]UserTasks, error) {
	if err := s.requireAdmin(callerID); err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	tasks, err := s.taskRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	byOwner := make(map[uint64][]models.Task, len(users))
	for _, t := range tasks {
		byOwner[t.UserID] = append(byOwner[t.UserID], t)
	}

	overview := make([]UserTasks, 0, len(users))
	for _, u := range users {
		userTasks := byOwner[u.ID]
		if userTasks == nil {
			userTasks = []models.Task{}
		}
		overview = append(overview, UserTasks{User: u, Tasks: userTasks})
	}

	return overview, nil
}

func (s *AdminService) requireAdmin(callerID uint64) error {
	caller, err := s.userRepo.FindByID(callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAdmin
		}
		return fmt.Errorf("failed to find caller: %w", err)
	}
	if !caller.IsAdmin {
		return ErrNotAdmin
	}
	return nil
}
