package dto

import (
	"time"

	"github.com/yukikurage/bug-tracking-api/internal/models"
)

// UserSnapshotDTO is the flat owner view embedded in bug responses. It
// never carries the owner's bug list, which keeps the User <-> Bug
// reference graph acyclic on the wire.
type UserSnapshotDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// BugDTO represents a bug in API responses
type BugDTO struct {
	ID             uint64             `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Status         models.BugStatus   `json:"status"`
	Priority       models.BugPriority `json:"priority"`
	CreatedDate    time.Time          `json:"createdDate"`
	ResolvedDate   *time.Time         `json:"resolvedDate"`
	AssignedUserID *uint64            `json:"assignedUserId"`
	Version        uint64             `json:"version"`
	AssignedUser   *UserSnapshotDTO   `json:"assignedUser,omitempty"`
}

// ToUserSnapshotDTO converts a User model to its flat snapshot
func ToUserSnapshotDTO(user models.User) UserSnapshotDTO {
	return UserSnapshotDTO{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Email:    user.Email,
	}
}

// ToBugDTO converts a Bug model to BugDTO
func ToBugDTO(bug models.Bug) BugDTO {
	dto := BugDTO{
		ID:             bug.ID,
		Title:          bug.Title,
		Description:    bug.Description,
		Status:         bug.Status,
		Priority:       bug.Priority,
		CreatedDate:    bug.CreatedDate,
		ResolvedDate:   bug.ResolvedDate,
		AssignedUserID: bug.AssignedUserID,
		Version:        bug.Version,
	}

	// Include the owner snapshot if preloaded
	if bug.AssignedUser != nil && bug.AssignedUser.ID != 0 {
		snapshot := ToUserSnapshotDTO(*bug.AssignedUser)
		dto.AssignedUser = &snapshot
	}

	return dto
}

// ToBugDTOs converts a slice of bugs
func ToBugDTOs(bugs []models.Bug) []BugDTO {
	items := make([]BugDTO, len(bugs))
	for i, bug := range bugs {
		items[i] = ToBugDTO(bug)
	}
	return items
}
