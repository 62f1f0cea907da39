package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/bug-tracking-api/internal/models"
)

func TestUserService_Create_Validation(t *testing.T) {
	env := setupBugServiceTestEnv(t)

	cases := []struct {
		name  string
		input CreateUserInput
		want  error
	}{
		{"missing username", CreateUserInput{Name: "n", Email: "a@x.com", Password: "secret1"}, ErrUsernameRequired},
		{"missing name", CreateUserInput{Username: "u", Email: "a@x.com", Password: "secret1"}, ErrNameRequired},
		{"missing email", CreateUserInput{Username: "u", Name: "n", Password: "secret1"}, ErrEmailRequired},
		{"malformed email", CreateUserInput{Username: "u", Name: "n", Email: "not-an-email", Password: "secret1"}, ErrInvalidEmail},
		{"short password", CreateUserInput{Username: "u", Name: "n", Email: "a@x.com", Password: "12345"}, ErrPasswordTooShort},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.userService.Create(tc.input)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUserService_Create_RejectsDuplicates(t *testing.T) {
	env := setupBugServiceTestEnv(t)
	env.createUser(t, "jdoe")

	_, err := env.userService.Create(CreateUserInput{
		Username: "jdoe",
		Name:     "Other Jane",
		Email:    "other@example.com",
		Password: "secret1",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)

	_, err = env.userService.Create(CreateUserInput{
		Username: "jdoe2",
		Name:     "Other Jane",
		Email:    "jdoe@example.com",
		Password: "secret1",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_Update_PartialFields(t *testing.T) {
	env := setupBugServiceTestEnv(t)
	user := env.createUser(t, "jdoe")

	newName := "Jane D."
	updated, err := env.userService.Update(user.ID, UpdateUserInput{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, newName, updated.Name)
	require.Equal(t, user.Email, updated.Email)
	require.Equal(t, user.Password, updated.Password)

	// An empty password means "keep the current one".
	empty := ""
	updated, err = env.userService.Update(user.ID, UpdateUserInput{Password: &empty})
	require.NoError(t, err)
	require.Equal(t, user.Password, updated.Password)

	short := "12345"
	_, err = env.userService.Update(user.ID, UpdateUserInput{Password: &short})
	require.ErrorIs(t, err, ErrPasswordTooShort)

	newPassword := "longenough"
	updated, err = env.userService.Update(user.ID, UpdateUserInput{Password: &newPassword})
	require.NoError(t, err)
	require.Equal(t, newPassword, updated.Password)
}

func TestUserService_Update_EmailUniqueness(t *testing.T) {
	env := setupBugServiceTestEnv(t)
	env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	taken := "alice@example.com"
	_, err := env.userService.Update(bob.ID, UpdateUserInput{Email: &taken})
	require.ErrorIs(t, err, ErrEmailTaken)

	// Re-submitting your own email is not a conflict.
	own := "bob@example.com"
	_, err = env.userService.Update(bob.ID, UpdateUserInput{Email: &own})
	require.NoError(t, err)
}

func TestUserService_Delete_CascadeNullsBugs(t *testing.T) {
	env := setupBugServiceTestEnv(t)
	user := env.createUser(t, "jdoe")

	b1, err := env.bugService.Create(CreateBugInput{
		Title: "b1", Description: "d", Priority: models.BugPriorityLow, AssignedUserID: user.ID,
	})
	require.NoError(t, err)
	b2, err := env.bugService.Create(CreateBugInput{
		Title: "b2", Description: "d", Priority: models.BugPriorityHigh, AssignedUserID: user.ID,
	})
	require.NoError(t, err)

	require.NoError(t, env.userService.Delete(user.ID))

	_, err = env.userService.Get(user.ID)
	require.ErrorIs(t, err, ErrUserNotFound)

	// The bugs survive their owner, unassigned but independently fetchable.
	for _, id := range []uint64{b1.ID, b2.ID} {
		bug, err := env.bugService.Get(id)
		require.NoError(t, err)
		require.Nil(t, bug.AssignedUserID)
	}
}

// Deleting a user frees their username and email for a later signup.
func TestUserService_Delete_FreesUsernameAndEmail(t *testing.T) {
	env := setupBugServiceTestEnv(t)
	user := env.createUser(t, "jdoe")

	require.NoError(t, env.userService.Delete(user.ID))

	recreated, err := env.userService.Create(CreateUserInput{
		Username: "jdoe",
		Name:     "Jane Again",
		Email:    "jdoe@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotEqual(t, user.ID, recreated.ID)
}

func TestUserService_Delete_UnknownUser(t *testing.T) {
	env := setupBugServiceTestEnv(t)

	require.ErrorIs(t, env.userService.Delete(999), ErrUserNotFound)
}

func TestAuthService_Authenticate(t *testing.T) {
	env := setupBugServiceTestEnv(t)
	user := env.createUser(t, "jdoe")

	got, err := env.authService.Authenticate("jdoe@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	_, err = env.authService.Authenticate("jdoe@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.authService.Authenticate("nobody@example.com", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
