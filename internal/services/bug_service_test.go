package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/bug-tracking-api/internal/models"
	"github.com/yukikurage/bug-tracking-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type bugServiceTestEnv struct {
	db          *gorm.DB
	bugService  *BugService
	userService *UserService
	authService *AuthService
}

func setupBugServiceTestEnv(t *testing.T) bugServiceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Bug{}))

	userRepo := repository.NewUserRepository(db)
	bugRepo := repository.NewBugRepository(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return bugServiceTestEnv{
		db:          db,
		bugService:  NewBugService(bugRepo, userRepo),
		userService: NewUserService(userRepo),
		authService: NewAuthService(userRepo),
	}
}

func (env bugServiceTestEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()

	user, err := env.userService.Create(CreateUserInput{
		Username: username,
		Name:     "Some Body",
		Email:    username + "@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	return user
}

func TestBugService_Create_StartsOpen(t *testing.T) {
	env := setupBugServiceTestEnv(t)
	user := env.createUser(t, "jdoe")

	before := time.Now()
	bug, err := env.bugService.Create(CreateBugInput{
		Title:          "Crash on save",
		Description:    "Saving a record crashes the app",
		Priority:       models.BugPriorityHigh,
		AssignedUserID: user.ID,
	})
	require.NoError(t, err)

	require.Equal(t, models.BugStatusOpen, bug.Status)
	require.Nil(t, bug.ResolvedDate)
	require.False(t, bug.CreatedDate.Before(before.Add(-time.Second)))
	require.NotNil(t, bug.AssignedUserID)
	require.Equal(t, user.ID, *bug.AssignedUserID)
	require.NotNil(t, bug.AssignedUser)
	require.Equal(t, uint64(1), bug.Version)
}

func TestBugService_Create_Validation(t *testing.T) {
	env := setupBugServiceTestEnv(t)
	user := env.createUser(t, "jdoe")

	cases := []struct {
		name  string
		input CreateBugInput
		want  error
	}{
		{"missing title", CreateBugInput{Description: "d", Priority: models.BugPriorityLow, AssignedUserID: user.ID}, ErrTitleRequired},
		{"missing description", CreateBugInput{Title: "t", Priority: models.BugPriorityLow, AssignedUserID: user.ID}, ErrDescriptionRequired},
		{"bad priority", CreateBugInput{Title: "t", Description: "d", Priority: "Urgent", AssignedUserID: user.ID}, ErrInvalidPriority},
		{"missing assignee", CreateBugInput{Title: "t", Description: "d", Priority: models.BugPriorityLow}, ErrAssigneeRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.bugService.Create(tc.input)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestBugService_Create_UnknownAssignee(t *testing.T) {
	env := setupBugServiceTestEnv(t)

	_, err := env.bugService.Create(CreateBugInput{
		Title:          "Orphan",
		Description:    "assigned to nobody",
		Priority:       models.BugPriorityLow,
		AssignedUserID: 404,
	})
	require.ErrorIs(t, err, ErrAssigneeNotFound)

	var count int64
	require.NoError(t, env.db.Model(&models.Bug{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestBugService_Resolve_TransitionsExactlyOnce(t *testing.T) {
	env := setupBugServiceTestEnv(t)
	user := env.createUser(t, "jdoe")

	bug, err := env.bugService.Create(CreateBugInput{
		Title:          "Crash on save",
		Description:    "Saving a record crashes the app",
		Priority:       models.BugPriorityHigh,
		AssignedUserID: user.ID,
	})
	require.NoError(t, err)

	require.NoError(t, env.bugService.Resolve(bug.ID))

	resolved, err := env.bugService.Get(bug.ID)
	require.NoError(t, err)
	require.Equal(t, models.BugStatusClosed, resolved.Status)
	require.NotNil(t, resolved.ResolvedDate)

	// The second resolve is a client error, not a silent no-op.
	err = env.bugService.Resolve(bug.ID)
	require.ErrorIs(t, err, ErrAlreadyResolved)

	again, err := env.bugService.Get(bug.ID)
	require.NoError(t, err)
	require.True(t, again.ResolvedDate.Equal(*resolved.ResolvedDate), "resolvedDate must not move")
}

func TestBugService_Resolve_UnknownBug(t *testing.T) {
	env := setupBugServiceTestEnv(t)

	err := env.bugService.Resolve(999)
	require.ErrorIs(t, err, ErrBugNotFound)
}

func TestBugService_Update_RejectsInvariantViolations(t *testing.T) {
	env := setupBugServiceTestEnv(t)
	user := env.createUser(t, "jdoe")

	bug, err := env.bugService.Create(CreateBugInput{
		Title:          "Edit me",
		Description:    "d",
		Priority:       models.BugPriorityLow,
		AssignedUserID: user.ID,
	})
	require.NoError(t, err)

	// Closed without a resolvedDate violates the lifecycle invariant.
	err = env.bugService.Update(bug.ID, UpdateBugInput{
		Title:          "Edit me",
		Description:    "d",
		Status:         models.BugStatusClosed,
		Priority:       models.BugPriorityLow,
		AssignedUserID: bug.AssignedUserID,
		Version:        bug.Version,
	})
	require.ErrorIs(t, err, ErrResolvedDateMismatch)

	// Open with a resolvedDate is the mirror image.
	now := time.Now()
	err = env.bugService.Update(bug.ID, UpdateBugInput{
		Title:          "Edit me",
		Description:    "d",
		Status:         models.BugStatusOpen,
		Priority:       models.BugPriorityLow,
		ResolvedDate:   &now,
		AssignedUserID: bug.AssignedUserID,
		Version:        bug.Version,
	})
	require.ErrorIs(t, err, ErrResolvedDateMismatch)
}

func TestBugService_Update_RejectsReopen(t *testing.T) {
	env := setupBugServiceTestEnv(t)
	user := env.createUser(t, "jdoe")

	bug, err := env.bugService.Create(CreateBugInput{
		Title:          "One way",
		Description:    "d",
		Priority:       models.BugPriorityMedium,
		AssignedUserID: user.ID,
	})
	require.NoError(t, err)
	require.NoError(t, env.bugService.Resolve(bug.ID))

	closed, err := env.bugService.Get(bug.ID)
	require.NoError(t, err)

	err = env.bugService.Update(bug.ID, UpdateBugInput{
		Title:          "One way",
		Description:    "d",
		Status:         models.BugStatusOpen,
		Priority:       models.BugPriorityMedium,
		AssignedUserID: closed.AssignedUserID,
		Version:        closed.Version,
	})
	require.ErrorIs(t, err, ErrBugReopened)
}

func TestBugService_Update_StaleVersionConflicts(t *testing.T) {
	env := setupBugServiceTestEnv(t)
	user := env.createUser(t, "jdoe")

	bug, err := env.bugService.Create(CreateBugInput{
		Title:          "Contended",
		Description:    "d",
		Priority:       models.BugPriorityMedium,
		AssignedUserID: user.ID,
	})
	require.NoError(t, err)

	edit := UpdateBugInput{
		Title:          "First edit",
		Description:    "d",
		Status:         models.BugStatusOpen,
		Priority:       models.BugPriorityMedium,
		AssignedUserID: bug.AssignedUserID,
		Version:        bug.Version,
	}
	require.NoError(t, env.bugService.Update(bug.ID, edit))

	// Second writer still holds the old version.
	edit.Title = "Second edit"
	err = env.bugService.Update(bug.ID, edit)
	require.ErrorIs(t, err, ErrEditConflict)
}

func TestBugService_AssignUser_OverwritesWithoutTouchingLifecycle(t *testing.T) {
	env := setupBugServiceTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	bug, err := env.bugService.Create(CreateBugInput{
		Title:          "Handover",
		Description:    "d",
		Priority:       models.BugPriorityLow,
		AssignedUserID: alice.ID,
	})
	require.NoError(t, err)

	require.NoError(t, env.bugService.AssignUser(bug.ID, bob.ID))

	reassigned, err := env.bugService.Get(bug.ID)
	require.NoError(t, err)
	require.Equal(t, bob.ID, *reassigned.AssignedUserID)
	require.Equal(t, models.BugStatusOpen, reassigned.Status)
	require.Nil(t, reassigned.ResolvedDate)
	require.True(t, reassigned.CreatedDate.Equal(bug.CreatedDate))

	require.ErrorIs(t, env.bugService.AssignUser(bug.ID, 999), ErrUserNotFound)
	require.ErrorIs(t, env.bugService.AssignUser(999, bob.ID), ErrBugNotFound)
}
