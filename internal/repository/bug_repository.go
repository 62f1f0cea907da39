package repository

import (
	"errors"
	"time"

	"github.com/yukikurage/bug-tracking-api/internal/models"
	"gorm.io/gorm"
)

// GormBugRepository is a GORM implementation of BugRepository
type GormBugRepository struct {
	db *gorm.DB
}

// NewBugRepository creates a new BugRepository
func NewBugRepository(db *gorm.DB) BugRepository {
	return &GormBugRepository{db: db}
}

// Create inserts a bug after verifying the assignee inside the same
// transaction, so the reference check holds at commit time.
func (r *GormBugRepository) Create(bug *models.Bug) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if bug.AssignedUserID != nil {
			if err := verifyAssignee(tx, *bug.AssignedUserID); err != nil {
				return err
			}
		}
		return tx.Create(bug).Error
	})
}

// FindByID finds a bug by ID with optional preloading
func (r *GormBugRepository) FindByID(id uint64, preload ...string) (*models.Bug, error) {
	var bug models.Bug
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&bug, id).Error; err != nil {
		return nil, err
	}
	return &bug, nil
}

// List returns all bugs with their assigned user, ordered by id
func (r *GormBugRepository) List() ([]models.Bug, error) {
	var bugs []models.Bug
	if err := r.db.Preload("AssignedUser").Order("bugs.id").Find(&bugs).Error; err != nil {
		return nil, err
	}
	return bugs, nil
}

// ListByAssignedUser returns the bugs assigned to a user
func (r *GormBugRepository) ListByAssignedUser(userID uint64) ([]models.Bug, error) {
	bugs := []models.Bug{}
	if err := r.db.Preload("AssignedUser").
		Where("assigned_user_id = ?", userID).
		Order("bugs.id").
		Find(&bugs).Error; err != nil {
		return nil, err
	}
	return bugs, nil
}

// Update writes the full record guarded by the version the caller read.
// CreatedDate is never part of the update set.
func (r *GormBugRepository) Update(bug *models.Bug, expectedVersion uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if bug.AssignedUserID != nil {
			if err := verifyAssignee(tx, *bug.AssignedUserID); err != nil {
				return err
			}
		}

		res := tx.Model(&models.Bug{}).
			Where("id = ? AND version = ?", bug.ID, expectedVersion).
			Updates(map[string]interface{}{
				"title":            bug.Title,
				"description":      bug.Description,
				"status":           bug.Status,
				"priority":         bug.Priority,
				"resolved_date":    bug.ResolvedDate,
				"assigned_user_id": bug.AssignedUserID,
				"version":          expectedVersion + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Missing row and stale version look the same here; check
			// which one it was.
			var exists models.Bug
			if err := tx.Select("id").First(&exists, bug.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return gorm.ErrRecordNotFound
				}
				return err
			}
			return ErrVersionConflict
		}
		return nil
	})
}

// Resolve closes an open bug, setting the resolved date exactly once. The
// status guard makes concurrent resolves race-safe: only one writer's
// update matches an Open row.
func (r *GormBugRepository) Resolve(id uint64, resolvedAt time.Time) (int64, error) {
	res := r.db.Model(&models.Bug{}).
		Where("id = ? AND status = ?", id, models.BugStatusOpen).
		Updates(map[string]interface{}{
			"status":        models.BugStatusClosed,
			"resolved_date": resolvedAt,
			"version":       gorm.Expr("version + 1"),
		})
	return res.RowsAffected, res.Error
}

// SetAssignedUser overwrites the bug's assignment without touching status
// or dates.
func (r *GormBugRepository) SetAssignedUser(bugID, userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := verifyAssignee(tx, userID); err != nil {
			return err
		}

		res := tx.Model(&models.Bug{}).
			Where("id = ?", bugID).
			Updates(map[string]interface{}{
				"assigned_user_id": userID,
				"version":          gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func verifyAssignee(tx *gorm.DB, userID uint64) error {
	var user models.User
	if err := tx.Select("id").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotFound
		}
		return err
	}
	return nil
}
