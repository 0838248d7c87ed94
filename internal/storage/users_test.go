package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mashagrib/knowledge-base/internal/models"
)

func testUser(email string) models.User {
	return models.User{
		Name:    "Ivan",
		Surname: "Petrov",
		Email:   email,
		Post:    "developer",
		Team:    "core",
		Role:    models.RoleUser,
		Status:  models.StatusInactive,
	}
}

func TestStorage_CreateAndGetUser(t *testing.T) {
	st, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	uid, err := st.CreateUser(ctx, testUser("ivan@example.com"))
	require.NoError(t, err)
	_, err = uuid.Parse(uid)
	require.NoError(t, err, "uid must be a valid uuid")

	got, err := st.GetUser(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "ivan@example.com", got.Email)
	assert.Equal(t, models.RoleUser, got.Role)
	assert.Equal(t, models.StatusInactive, got.Status)
	assert.False(t, got.CreatedAt.IsZero())

	byEmail, err := st.GetUserByEmail(ctx, "ivan@example.com")
	require.NoError(t, err)
	assert.Equal(t, uid, byEmail.UID)
}

func TestStorage_CreateUser_DuplicateEmail(t *testing.T) {
	st, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	_, err := st.CreateUser(ctx, testUser("dup@example.com"))
	require.NoError(t, err)

	_, err = st.CreateUser(ctx, testUser("dup@example.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestStorage_GetUser_NotFound(t *testing.T) {
	st, cleanup := setupTestDatabase(t)
	defer cleanup()

	_, err := st.GetUser(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_UpdateUser_Partial(t *testing.T) {
	st, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	uid, err := st.CreateUser(ctx, testUser("upd@example.com"))
	require.NoError(t, err)

	newTeam := "platform"
	newStatus := models.StatusActive
	got, err := st.UpdateUser(ctx, uid, models.UserUpdate{
		Team:   &newTeam,
		Status: &newStatus,
	})
	require.NoError(t, err)

	// Незаполненные поля не затронуты
	assert.Equal(t, "platform", got.Team)
	assert.Equal(t, models.StatusActive, got.Status)
	assert.Equal(t, "Ivan", got.Name)
	assert.Equal(t, "developer", got.Post)
}

func TestStorage_DeleteUser(t *testing.T) {
	st, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	uid, err := st.CreateUser(ctx, testUser("del@example.com"))
	require.NoError(t, err)

	require.NoError(t, st.DeleteUser(ctx, uid))

	_, err = st.GetUser(ctx, uid)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, st.DeleteUser(ctx, uid), ErrNotFound)
}

func TestStorage_ListUsers_Filter(t *testing.T) {
	st, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	first := testUser("anna@example.com")
	first.Name = "Anna"
	first.Team = "platform"
	first.Role = models.RoleEditor
	_, err := st.CreateUser(ctx, first)
	require.NoError(t, err)

	second := testUser("boris@example.com")
	second.Name = "Boris"
	second.Team = "core"
	_, err = st.CreateUser(ctx, second)
	require.NoError(t, err)

	// Подстрочный поиск без учёта регистра
	users, err := st.ListUsers(ctx, models.UserFilter{Name: "ann", Limit: 10})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Anna", users[0].Name)

	// Точное совпадение роли
	users, err = st.ListUsers(ctx, models.UserFilter{Role: models.RoleEditor, Limit: 10})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "anna@example.com", users[0].Email)

	// Пагинация
	users, err = st.ListUsers(ctx, models.UserFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestStorage_RefreshTokenLifecycle(t *testing.T) {
	st, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	uid, err := st.CreateUser(ctx, testUser("token@example.com"))
	require.NoError(t, err)

	require.NoError(t, st.SetRefreshToken(ctx, uid, "token-one", time.Now().Add(time.Hour)))

	got, err := st.GetUserByRefreshToken(ctx, "token-one")
	require.NoError(t, err)
	assert.Equal(t, uid, got.UID)

	// Новый токен затирает прежний
	require.NoError(t, st.SetRefreshToken(ctx, uid, "token-two", time.Now().Add(time.Hour)))
	_, err = st.GetUserByRefreshToken(ctx, "token-one")
	assert.ErrorIs(t, err, ErrNotFound)

	// Просроченный токен не находится
	require.NoError(t, st.SetRefreshToken(ctx, uid, "token-three", time.Now().Add(-time.Minute)))
	_, err = st.GetUserByRefreshToken(ctx, "token-three")
	assert.ErrorIs(t, err, ErrNotFound)

	// Отзыв токена
	require.NoError(t, st.SetRefreshToken(ctx, uid, "token-four", time.Now().Add(time.Hour)))
	require.NoError(t, st.ClearRefreshToken(ctx, uid))
	_, err = st.GetUserByRefreshToken(ctx, "token-four")
	assert.ErrorIs(t, err, ErrNotFound)
}
