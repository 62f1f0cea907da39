package dto

import (
	"github.com/yukikurage/bug-tracking-api/internal/models"
)

// BugSummaryDTO is the flat bug view embedded in user responses. No owner
// re-embed: the counterpart of UserSnapshotDTO's cycle break.
type BugSummaryDTO struct {
	ID       uint64             `json:"id"`
	Title    string             `json:"title"`
	Status   models.BugStatus   `json:"status"`
	Priority models.BugPriority `json:"priority"`
}

// UserDTO represents a user in API responses. Password is part of the
// wire contract: clients receive the stored record unchanged.
type UserDTO struct {
	ID           uint64          `json:"id"`
	Username     string          `json:"username"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Password     string          `json:"password"`
	AssignedBugs []BugSummaryDTO `json:"assignedBugs,omitempty"`
}

// ToBugSummaryDTO converts a Bug model to its flat summary
func ToBugSummaryDTO(bug models.Bug) BugSummaryDTO {
	return BugSummaryDTO{
		ID:       bug.ID,
		Title:    bug.Title,
		Status:   bug.Status,
		Priority: bug.Priority,
	}
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Email:    user.Email,
		Password: user.Password,
	}

	// Include bug summaries if preloaded
	if len(user.AssignedBugs) > 0 {
		dto.AssignedBugs = make([]BugSummaryDTO, len(user.AssignedBugs))
		for i, bug := range user.AssignedBugs {
			dto.AssignedBugs[i] = ToBugSummaryDTO(bug)
		}
	}

	return dto
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}
	return items
}
