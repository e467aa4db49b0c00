package repository

import (
	"context"
	"stickynotes/cmd/internal/domain/entity"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	exists, err := repo.ExistsByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	user := &entity.User{
		ID:           99,
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: "hash",
		CreatedAt:    1,
		UpdatedAt:    1,
	}
	require.NoError(t, repo.Create(ctx, user))

	exists, err = repo.ExistsByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	byEmail, err := repo.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, int64(99), byEmail.ID)
	assert.Equal(t, "Ana", byEmail.Name)

	missing, err := repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	t.Run("email is unique", func(t *testing.T) {
		dup := *user
		dup.ID = 100
		assert.Error(t, repo.Create(ctx, &dup))
	})
}
