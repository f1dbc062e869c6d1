package main

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"notely/internal/auth"
	"notely/internal/db"
	"notely/internal/repository"
	"notely/internal/service"
)

func TestSeedIsIdempotent(t *testing.T) {
	gormDB, err := db.Open("sqlite", "file:seed_test?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB, true))
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	var data SeedData
	require.NoError(t, json.Unmarshal(seedData, &data))
	require.NotEmpty(t, data.Notes)

	userRepo := repository.NewUserRepository(gormDB)
	noteRepo := repository.NewNoteRepository(gormDB)
	authService := service.NewAuthService(userRepo, auth.NewJWTService("secret", time.Hour), auth.NewTokenStore(nil))
	log := zap.NewNop().Sugar()
	ctx := context.Background()

	created, err := seed(ctx, log, authService, userRepo, noteRepo, data)
	require.NoError(t, err)
	assert.Equal(t, len(data.Notes), created)

	created, err = seed(ctx, log, authService, userRepo, noteRepo, data)
	require.NoError(t, err)
	assert.Zero(t, created)

	user, err := userRepo.FindByEmail(ctx, data.Email)
	require.NoError(t, err)
	notes, err := noteRepo.List(ctx, repository.NoteFilter{UserID: user.ID, FavoriteOnly: true})
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}
