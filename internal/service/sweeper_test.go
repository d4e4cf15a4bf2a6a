package service

import (
	"context"
	"print3d-shop/internal/model"
	"print3d-shop/internal/repository"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweeper_RemovesExpiredUploads(t *testing.T) {
	db := newTestDB(t)
	files := newTestFileStore(t)
	uploadRepo := repository.NewUploadRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	sweeper := NewSweeper(uploadRepo, sessionRepo, files, 24*time.Hour, time.Hour)
	ctx := context.Background()

	require.NoError(t, files.SaveUpload("1-expired.obj", strings.NewReader("old")))
	require.NoError(t, files.SaveUpload("2-fresh.obj", strings.NewReader("new")))

	now := time.Now()
	require.NoError(t, uploadRepo.Create(ctx, &model.Upload{
		Username: "alice", Filename: "1-expired.obj", CreatedAt: now.Add(-25 * time.Hour),
	}))
	require.NoError(t, uploadRepo.Create(ctx, &model.Upload{
		Username: "alice", Filename: "2-fresh.obj", CreatedAt: now,
	}))

	require.NoError(t, sweeper.SweepOnce(ctx))

	assert.False(t, files.UploadExists("1-expired.obj"))
	assert.True(t, files.UploadExists("2-fresh.obj"))

	remaining, err := uploadRepo.ListByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "2-fresh.obj", remaining[0].Filename)
}

func TestSweeper_SecondRunIsSafe(t *testing.T) {
	db := newTestDB(t)
	files := newTestFileStore(t)
	uploadRepo := repository.NewUploadRepository(db)
	sweeper := NewSweeper(uploadRepo, repository.NewSessionRepository(db), files, 24*time.Hour, time.Hour)
	ctx := context.Background()

	require.NoError(t, files.SaveUpload("1-expired.obj", strings.NewReader("old")))
	require.NoError(t, uploadRepo.Create(ctx, &model.Upload{
		Username: "alice", Filename: "1-expired.obj", CreatedAt: time.Now().Add(-25 * time.Hour),
	}))

	require.NoError(t, sweeper.SweepOnce(ctx))
	require.NoError(t, sweeper.SweepOnce(ctx))

	old, err := uploadRepo.FindOlderThan(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, old)
}

func TestSweeper_ToleratesMissingFile(t *testing.T) {
	db := newTestDB(t)
	files := newTestFileStore(t)
	uploadRepo := repository.NewUploadRepository(db)
	sweeper := NewSweeper(uploadRepo, repository.NewSessionRepository(db), files, 24*time.Hour, time.Hour)
	ctx := context.Background()

	// row exists but the file was never written (or already deleted)
	require.NoError(t, uploadRepo.Create(ctx, &model.Upload{
		Username: "alice", Filename: "1-ghost.obj", CreatedAt: time.Now().Add(-25 * time.Hour),
	}))

	require.NoError(t, sweeper.SweepOnce(ctx))

	old, err := uploadRepo.FindOlderThan(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, old)
}

func TestSweeper_PurgesExpiredSessions(t *testing.T) {
	db := newTestDB(t)
	files := newTestFileStore(t)
	sessionRepo := repository.NewSessionRepository(db)
	sweeper := NewSweeper(repository.NewUploadRepository(db), sessionRepo, files, 24*time.Hour, time.Hour)
	ctx := context.Background()

	require.NoError(t, sessionRepo.Create(ctx, &model.Session{
		Token: "stale", Username: "alice", ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, sessionRepo.Create(ctx, &model.Session{
		Token: "live", Username: "alice", ExpiresAt: time.Now().Add(time.Hour),
	}))

	require.NoError(t, sweeper.SweepOnce(ctx))

	_, err := sessionRepo.Find(ctx, "stale")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = sessionRepo.Find(ctx, "live")
	assert.NoError(t, err)
}
