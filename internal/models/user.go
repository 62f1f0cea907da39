package models

import (
	"time"
)

// User rows are hard-deleted. Username and email carry unique indexes, so a
// tombstone would keep a deleted user's identity reserved forever.
type User struct {
	ID       uint64 `gorm:"primarykey" json:"id"`
	Username string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	// Stored and returned as given. Known gap: credentials are compared in
	// plaintext because the login contract returns the record unchanged.
	Password  string    `gorm:"type:varchar(255);not null" json:"password"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	AssignedBugs []Bug `gorm:"foreignKey:AssignedUserID" json:"assignedBugs,omitempty"`
}
