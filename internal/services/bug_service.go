package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/bug-tracking-api/internal/models"
	"github.com/yukikurage/bug-tracking-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrBugNotFound          = errors.New("bug not found")
	ErrAlreadyResolved      = errors.New("bug is already resolved")
	ErrEditConflict         = errors.New("bug was modified by another writer")
	ErrTitleRequired        = errors.New("title is required")
	ErrDescriptionRequired  = errors.New("description is required")
	ErrInvalidPriority      = errors.New("priority must be Low, Medium or High")
	ErrInvalidStatus        = errors.New("status must be Open or Closed")
	ErrAssigneeRequired     = errors.New("assignedUserId is required")
	ErrAssigneeNotFound     = errors.New("assigned user does not exist")
	ErrResolvedDateMismatch = errors.New("resolvedDate must be present exactly when status is Closed")
	ErrBugReopened          = errors.New("a closed bug cannot be reopened")
)

// BugService handles the bug lifecycle business logic
type BugService struct {
	bugRepo  repository.BugRepository
	userRepo repository.UserRepository
}

// NewBugService creates a new BugService
func NewBugService(bugRepo repository.BugRepository, userRepo repository.UserRepository) *BugService {
	return &BugService{
		bugRepo:  bugRepo,
		userRepo: userRepo,
	}
}

// CreateBugInput represents input for creating a bug. There are no status or
// date fields: every bug starts Open, created now.
type CreateBugInput struct {
	Title          string
	Description    string
	Priority       models.BugPriority
	AssignedUserID uint64
}

// UpdateBugInput represents a full-record bug edit. Version carries the
// value the client read; a stale version fails with ErrEditConflict.
type UpdateBugInput struct {
	Title          string
	Description    string
	Status         models.BugStatus
	Priority       models.BugPriority
	ResolvedDate   *time.Time
	AssignedUserID *uint64
	Version        uint64
}

// Create creates a new bug in the Open state
func (s *BugService) Create(input CreateBugInput) (*models.Bug, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if !models.ValidPriority(input.Priority) {
		return nil, ErrInvalidPriority
	}
	if input.AssignedUserID == 0 {
		return nil, ErrAssigneeRequired
	}

	bug := &models.Bug{
		Title:          input.Title,
		Description:    input.Description,
		Status:         models.BugStatusOpen,
		Priority:       input.Priority,
		CreatedDate:    time.Now(),
		AssignedUserID: &input.AssignedUserID,
		Version:        1,
	}

	if err := s.bugRepo.Create(bug); err != nil {
		if errors.Is(err, repository.ErrAssigneeNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to create bug: %w", err)
	}

	return s.bugRepo.FindByID(bug.ID, "AssignedUser")
}

// Get returns a bug with its assigned user
func (s *BugService) Get(id uint64) (*models.Bug, error) {
	bug, err := s.bugRepo.FindByID(id, "AssignedUser")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBugNotFound
		}
		return nil, fmt.Errorf("failed to find bug: %w", err)
	}
	return bug, nil
}

// List returns every bug with its assigned user. The full set is always
// returned; filtering and sorting are a presentation concern.
func (s *BugService) List() ([]models.Bug, error) {
	bugs, err := s.bugRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list bugs: %w", err)
	}
	return bugs, nil
}

// ListForUser returns the bugs assigned to a user; an empty slice when the
// user owns nothing, never an error.
func (s *BugService) ListForUser(userID uint64) ([]models.Bug, error) {
	bugs, err := s.bugRepo.ListByAssignedUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bugs for user %d: %w", userID, err)
	}
	return bugs, nil
}

// Update applies a full-record edit under the optimistic version check.
// CreatedDate is immutable and the resolvedDate/status invariant must hold.
func (s *BugService) Update(id uint64, input UpdateBugInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(input.Description) == "" {
		return ErrDescriptionRequired
	}
	if !models.ValidPriority(input.Priority) {
		return ErrInvalidPriority
	}
	if !models.ValidStatus(input.Status) {
		return ErrInvalidStatus
	}
	if (input.Status == models.BugStatusClosed) != (input.ResolvedDate != nil) {
		return ErrResolvedDateMismatch
	}

	current, err := s.bugRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBugNotFound
		}
		return fmt.Errorf("failed to find bug: %w", err)
	}

	if current.Status == models.BugStatusClosed {
		if input.Status == models.BugStatusOpen {
			return ErrBugReopened
		}
		// resolvedDate is set exactly once; edits may not move it.
		if input.ResolvedDate == nil || !input.ResolvedDate.Equal(*current.ResolvedDate) {
			return ErrResolvedDateMismatch
		}
	}

	bug := &models.Bug{
		ID:             id,
		Title:          input.Title,
		Description:    input.Description,
		Status:         input.Status,
		Priority:       input.Priority,
		ResolvedDate:   input.ResolvedDate,
		AssignedUserID: input.AssignedUserID,
	}

	if err := s.bugRepo.Update(bug, input.Version); err != nil {
		switch {
		case errors.Is(err, repository.ErrVersionConflict):
			return ErrEditConflict
		case errors.Is(err, repository.ErrAssigneeNotFound):
			return ErrAssigneeNotFound
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrBugNotFound
		}
		return fmt.Errorf("failed to update bug: %w", err)
	}

	return nil
}

// Resolve transitions a bug Open -> Closed exactly once. Resolving an
// already-closed bug is a client error, never a silent no-op.
func (s *BugService) Resolve(id uint64) error {
	bug, err := s.bugRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBugNotFound
		}
		return fmt.Errorf("failed to find bug: %w", err)
	}

	if bug.Status == models.BugStatusClosed {
		return ErrAlreadyResolved
	}

	rows, err := s.bugRepo.Resolve(id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to resolve bug: %w", err)
	}
	if rows == 0 {
		// Another writer closed it between our read and the guarded write.
		return ErrAlreadyResolved
	}

	return nil
}

// AssignUser overwrites the bug's assignment. Status and dates are
// untouched.
func (s *BugService) AssignUser(bugID, userID uint64) error {
	if _, err := s.bugRepo.FindByID(bugID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBugNotFound
		}
		return fmt.Errorf("failed to find bug: %w", err)
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.bugRepo.SetAssignedUser(bugID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrAssigneeNotFound):
			return ErrUserNotFound
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrBugNotFound
		}
		return fmt.Errorf("failed to assign user: %w", err)
	}

	return nil
}
