package repository

import (
	"pomoweb/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by exact username match
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by case-insensitive email match
	FindByEmail(email string) (*models.User, error)

	// UpdatePassword replaces a user's password hash
	UpdatePassword(id uint64, passwordHash string) error

	// ListAll lists every user ordered by username
	ListAll() ([]models.User, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// ListByOwner lists a user's tasks, newest first
	ListByOwner(ownerID uint64) ([]models.Task, error)

	// ListAll lists every task, newest first
	ListAll() ([]models.Task, error)

	// Update saves all fields of a task, including cleared ones
	Update(task *models.Task) error

	// Delete permanently deletes a task
	Delete(id uint64) error
}
