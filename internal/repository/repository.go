package repository

import (
	"time"

	"github.com/yukikurage/bug-tracking-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List returns all users in stable id order
	List(preload ...string) ([]models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// Delete removes a user and clears the assignment on every bug that
	// referenced it, within a single transaction.
	Delete(id uint64) error
}

// BugRepository defines the interface for bug data access
type BugRepository interface {
	// Create inserts a bug after verifying its assignee exists. Both run
	// in one transaction so a concurrent user deletion fails the insert.
	Create(bug *models.Bug) error

	// FindByID finds a bug by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Bug, error)

	// List returns all bugs with their assigned user, in stable id order
	List() ([]models.Bug, error)

	// ListByAssignedUser returns the bugs assigned to a user; an empty
	// slice when the user owns nothing.
	ListByAssignedUser(userID uint64) ([]models.Bug, error)

	// Update writes the full record guarded by the version the caller
	// read. Returns ErrVersionConflict on a lost-update race.
	Update(bug *models.Bug, expectedVersion uint64) error

	// Resolve closes an open bug. Returns the number of rows affected so
	// the caller can distinguish an already-closed bug from a missing one.
	Resolve(id uint64, resolvedAt time.Time) (int64, error)

	// SetAssignedUser overwrites the bug's assignment.
	SetAssignedUser(bugID, userID uint64) error
}
