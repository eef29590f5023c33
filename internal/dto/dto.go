package dto

import (
	"time"

	"pomoweb/internal/models"
	"pomoweb/internal/services"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID              uint64     `json:"id"`
	UserID          uint64     `json:"user_id"`
	Description     string     `json:"description"`
	Estimated       int        `json:"estimated"`
	Completed       bool       `json:"completed"`
	CompletedAt     *time.Time `json:"completed_at"`
	AssignedByAdmin bool       `json:"assigned_by_admin"`
	CreatedAt       time.Time  `json:"created_at"`
}

// UserTasksDTO is one row of the admin dashboard breakdown.
type UserTasksDTO struct {
	User  UserDTO   `json:"user"`
	Tasks []TaskDTO `json:"tasks"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:       user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}
	if user.Email != nil {
		dto.Email = *user.Email
	}
	return dto
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:              task.ID,
		UserID:          task.UserID,
		Description:     task.Description,
		Estimated:       task.Estimated,
		Completed:       task.Completed,
		CompletedAt:     task.CompletedAt,
		AssignedByAdmin: task.AssignedByAdmin,
		CreatedAt:       task.CreatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}

// ToUserTasksDTOs converts the admin overview aggregate
func ToUserTasksDTOs(overview []services.UserTasks) []UserTasksDTO {
	items := make([]UserTasksDTO, len(overview))
	for i, row := range overview {
		items[i] = UserTasksDTO{
			User:  ToUserDTO(row.User),
			Tasks: ToTaskDTOs(row.Tasks),
		}
	}
	return items
}
