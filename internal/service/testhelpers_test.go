package service

import (
	"context"
	"path/filepath"
	"print3d-shop/internal/model"
	"print3d-shop/internal/repository"
	"print3d-shop/internal/storage"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Account{},
		&model.Session{},
		&model.Upload{},
		&model.Purchase{},
	))

	return db
}

func newTestFileStore(t *testing.T) *storage.FileStore {
	t.Helper()

	dir := t.TempDir()
	files, err := storage.NewFileStore(filepath.Join(dir, "uploads"), filepath.Join(dir, "purchases"))
	require.NoError(t, err)
	return files
}

// failingPurchaseRepo simulates a database outage during checkout.
type failingPurchaseRepo struct {
	err error
}

func (r *failingPurchaseRepo) Create(ctx context.Context, purchase *model.Purchase) error {
	return r.err
}

func (r *failingPurchaseRepo) ListByUsername(ctx context.Context, username string) ([]*model.Purchase, error) {
	return nil, r.err
}

// failingUploadRepo simulates a database outage during upload registration.
type failingUploadRepo struct {
	repository.UploadRepository
	err error
}

func (r *failingUploadRepo) Create(ctx context.Context, upload *model.Upload) error {
	return r.err
}
