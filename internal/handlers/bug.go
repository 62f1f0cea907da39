package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/bug-tracking-api/internal/dto"
	apierrors "github.com/yukikurage/bug-tracking-api/internal/errors"
	"github.com/yukikurage/bug-tracking-api/internal/models"
	"github.com/yukikurage/bug-tracking-api/internal/services"
)

// BugHandler coordinates bug-related HTTP handlers.
type BugHandler struct {
	bugService *services.BugService
}

// NewBugHandler creates a new BugHandler.
func NewBugHandler(bugService *services.BugService) *BugHandler {
	return &BugHandler{
		bugService: bugService,
	}
}

// ListBugs returns all bugs with their assigned user.
func (h *BugHandler) ListBugs(c *gin.Context) {
	bugs, err := h.bugService.List()
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch bugs")
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToBugDTOs(bugs))
}

// GetBug returns a single bug by ID.
func (h *BugHandler) GetBug(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	bug, err := h.bugService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBugDTO(*bug))
}

// ListUserBugs returns the bugs assigned to a user. An unknown user owns
// nothing, so the result is an empty array rather than an error.
func (h *BugHandler) ListUserBugs(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	bugs, err := h.bugService.ListForUser(userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to fetch user bugs")
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToBugDTOs(bugs))
}

// CreateBug creates a new bug. Client-supplied status or dates are not
// accepted: the request shape has no such fields.
func (h *BugHandler) CreateBug(c *gin.Context) {
	type CreateBugRequest struct {
		Title          string             `json:"title" binding:"required"`
		Description    string             `json:"description" binding:"required"`
		Priority       models.BugPriority `json:"priority" binding:"required"`
		AssignedUserID uint64             `json:"assignedUserId" binding:"required"`
	}

	var req CreateBugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	bug, err := h.bugService.Create(services.CreateBugInput{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       req.Priority,
		AssignedUserID: req.AssignedUserID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logrus.WithField("bug_id", bug.ID).Info("Bug created")
	c.JSON(http.StatusCreated, dto.ToBugDTO(*bug))
}

// UpdateBug applies a full-record edit under the optimistic version check.
func (h *BugHandler) UpdateBug(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateBugRequest struct {
		ID             uint64             `json:"id" binding:"required"`
		Title          string             `json:"title" binding:"required"`
		Description    string             `json:"description" binding:"required"`
		Status         models.BugStatus   `json:"status" binding:"required"`
		Priority       models.BugPriority `json:"priority" binding:"required"`
		ResolvedDate   *time.Time         `json:"resolvedDate"`
		AssignedUserID *uint64            `json:"assignedUserId"`
		Version        uint64             `json:"version" binding:"required"`
	}

	var req UpdateBugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.ID != id {
		logrus.WithFields(logrus.Fields{"path_id": id, "body_id": req.ID}).
			Warn("Bug ID in the URL does not match the bug ID in the body")
		apierrors.BadRequest(c, "Bug ID in the URL does not match the bug ID in the body")
		return
	}

	err := h.bugService.Update(id, services.UpdateBugInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		ResolvedDate:   req.ResolvedDate,
		AssignedUserID: req.AssignedUserID,
		Version:        req.Version,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logrus.WithField("bug_id", id).Info("Bug updated")
	c.Status(http.StatusNoContent)
}

// ResolveBug closes an open bug. Resolving an already closed bug is a 400.
func (h *BugHandler) ResolveBug(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.bugService.Resolve(id); err != nil {
		respondServiceError(c, err)
		return
	}

	logrus.WithField("bug_id", id).Info("Bug resolved")
	c.Status(http.StatusNoContent)
}

// AssignUserToBug reassigns a bug to another user.
func (h *BugHandler) AssignUserToBug(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := h.bugService.AssignUser(id, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{"bug_id": id, "user_id": userID}).Info("Bug reassigned")
	c.Status(http.StatusNoContent)
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
