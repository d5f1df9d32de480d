package seeders_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storehub/app/models"
	"github.com/shashiranjanraj/storehub/config"
	"github.com/shashiranjanraj/storehub/database/seeders"
	"github.com/shashiranjanraj/storehub/internal/testkit"
	"github.com/shashiranjanraj/storehub/pkg/auth"
)

func TestRootUserSeederIsIdempotent(t *testing.T) {
	db := testkit.DB(t)
	config.Set("ROOT_USERNAME", "admin")
	config.Set("ROOT_PASSWORD", "s3cret-pass")
	t.Cleanup(func() {
		config.Set("ROOT_USERNAME", "")
		config.Set("ROOT_PASSWORD", "")
	})

	var out bytes.Buffer
	require.NoError(t, seeders.RunAll(context.Background(), db, &out))
	assert.Contains(t, out.String(), `created "admin"`)

	out.Reset()
	require.NoError(t, seeders.RunAll(context.Background(), db, &out))
	assert.Contains(t, out.String(), `"admin" exists`)

	var users []models.User
	require.NoError(t, db.Where("username = ?", "admin").Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleRoot, users[0].Role)
	assert.True(t, auth.CheckPassword(users[0].Password, "s3cret-pass"))
}

func TestRootUserSeederNeedsPassword(t *testing.T) {
	db := testkit.DB(t)
	config.Set("ROOT_PASSWORD", "")

	err := seeders.RunAll(context.Background(), db, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ROOT_PASSWORD")
}
