package service

import (
	"context"
	"fmt"
	"print3d-shop/internal/repository"
	"print3d-shop/internal/storage"
	"time"

	"github.com/sirupsen/logrus"
)

// Sweeper purges uploads past their retention age and expired sessions.
// File deletes are best effort; a missing file never aborts a run, so
// repeating a sweep is always safe.
type Sweeper struct {
	uploadRepo  repository.UploadRepository
	sessionRepo repository.SessionRepository
	files       *storage.FileStore
	maxAge      time.Duration
	interval    time.Duration
}

func NewSweeper(
	uploadRepo repository.UploadRepository,
	sessionRepo repository.SessionRepository,
	files *storage.FileStore,
	maxAge time.Duration,
	interval time.Duration,
) *Sweeper {
	return &Sweeper{
		uploadRepo:  uploadRepo,
		sessionRepo: sessionRepo,
		files:       files,
		maxAge:      maxAge,
		interval:    interval,
	}
}

// Run sweeps on the configured interval until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("retention sweeper stopped")
			return
		case <-ticker.C:
			if err := s.SweepOnce(ctx); err != nil {
				logrus.WithError(err).Error("retention sweep failed")
			}
		}
	}
}

func (s *Sweeper) SweepOnce(ctx context.Context) error {
	cutoff := time.Now().Add(-s.maxAge)

	old, err := s.uploadRepo.FindOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("select expired uploads: %w", err)
	}

	for _, upload := range old {
		if err := s.files.RemoveUpload(upload.Filename); err != nil {
			logrus.WithError(err).WithField("filename", upload.Filename).
				Error("failed to delete expired upload file")
			continue
		}
		logrus.WithField("filename", upload.Filename).Info("expired upload file deleted")
	}

	rows, err := s.uploadRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("delete expired upload rows: %w", err)
	}
	if rows > 0 {
		logrus.WithField("rows", rows).Info("expired upload rows removed")
	}

	sessions, err := s.sessionRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	if sessions > 0 {
		logrus.WithField("rows", sessions).Info("expired sessions removed")
	}

	return nil
}
