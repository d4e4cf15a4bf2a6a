package repository

import (
	"context"
	"errors"
	"print3d-shop/internal/model"
	"time"

	"gorm.io/gorm"
)

type UploadRepository interface {
	Create(ctx context.Context, upload *model.Upload) error
	ListByUsername(ctx context.Context, username string) ([]*model.Upload, error)
	FindOlderThan(ctx context.Context, cutoff time.Time) ([]*model.Upload, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type uploadRepoImpl struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepoImpl{
		db: db,
	}
}

func (r *uploadRepoImpl) Create(ctx context.Context, upload *model.Upload) error {
	err := r.db.WithContext(ctx).Create(upload).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (r *uploadRepoImpl) ListByUsername(ctx context.Context, username string) ([]*model.Upload, error) {
	var uploads []*model.Upload
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("created_at DESC").
		Find(&uploads).Error

	if err != nil {
		return nil, err
	}

	return uploads, nil
}

func (r *uploadRepoImpl) FindOlderThan(ctx context.Context, cutoff time.Time) ([]*model.Upload, error) {
	var uploads []*model.Upload
	err := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Find(&uploads).Error

	if err != nil {
		return nil, err
	}

	return uploads, nil
}

func (r *uploadRepoImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.Upload{})

	return result.RowsAffected, result.Error
}
