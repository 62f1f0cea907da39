package models

import (
	"time"

	"gorm.io/gorm"
)

type BugStatus string

const (
	BugStatusOpen   BugStatus = "Open"
	BugStatusClosed BugStatus = "Closed"
)

type BugPriority string

const (
	BugPriorityLow    BugPriority = "Low"
	BugPriorityMedium BugPriority = "Medium"
	BugPriorityHigh   BugPriority = "High"
)

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p BugPriority) bool {
	switch p {
	case BugPriorityLow, BugPriorityMedium, BugPriorityHigh:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s BugStatus) bool {
	return s == BugStatusOpen || s == BugStatusClosed
}

type Bug struct {
	ID          uint64      `gorm:"primarykey" json:"id"`
	Title       string      `gorm:"type:varchar(255);not null" json:"title"`
	Description string      `gorm:"type:text;not null" json:"description"`
	Status      BugStatus   `gorm:"type:varchar(20);not null;default:'Open'" json:"status"`
	Priority    BugPriority `gorm:"type:varchar(20);not null" json:"priority"`
	CreatedDate time.Time   `gorm:"not null" json:"createdDate"`
	// Set exactly once, when the bug transitions Open -> Closed.
	ResolvedDate *time.Time `json:"resolvedDate"`
	// Nullable only as a consequence of the assigned user being deleted.
	AssignedUserID *uint64 `gorm:"index" json:"assignedUserId"`
	// Version backs the optimistic concurrency check on updates. Every
	// write bumps it; stale writers observe a conflict.
	Version   uint64         `gorm:"not null;default:1" json:"version"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	AssignedUser *User `gorm:"foreignKey:AssignedUserID" json:"assignedUser,omitempty"`
}
