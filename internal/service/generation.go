package service

import (
	"context"
	"fmt"
	"io"
	"print3d-shop/internal/client"
	"print3d-shop/internal/dto"
	"time"

	"github.com/sirupsen/logrus"
)

type GenerationService interface {
	GenerateModel(ctx context.Context, username, prompt string) (*dto.FileInfo, error)
}

type generationServiceImpl struct {
	genClient    client.GenerationClient
	library      LibraryService
	pollInterval time.Duration
	maxAttempts  int
}

func NewGenerationService(
	genClient client.GenerationClient,
	library LibraryService,
	pollInterval time.Duration,
	maxAttempts int,
) GenerationService {
	return &generationServiceImpl{
		genClient:    genClient,
		library:      library,
		pollInterval: pollInterval,
		maxAttempts:  maxAttempts,
	}
}

// GenerateModel forwards the prompt to the generation API, waits for the
// task to finish, then pulls the resulting model into the file store and
// registers it as a regular upload of the requesting user.
func (s *generationServiceImpl) GenerateModel(ctx context.Context, username, prompt string) (*dto.FileInfo, error) {
	taskID, err := s.genClient.CreateTask(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("create generation task: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"username": username,
		"taskID":   taskID,
	}).Info("generation task created")

	modelURL, err := s.waitForTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	body, err := s.genClient.DownloadModel(ctx, modelURL)
	if err != nil {
		return nil, fmt.Errorf("download generated model: %w", err)
	}
	defer body.Close()

	return s.registerModel(ctx, username, body)
}

// waitForTask polls the task status until it reaches a terminal state or the
// attempt budget runs out. The budget keeps a stuck external task from
// pinning a request handler forever.
func (s *generationServiceImpl) waitForTask(ctx context.Context, taskID string) (string, error) {
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		status, err := s.genClient.GetTask(ctx, taskID)
		if err != nil {
			return "", fmt.Errorf("poll generation task: %w", err)
		}

		switch status.Status {
		case client.TaskSucceeded:
			if status.ModelURL == "" {
				return "", fmt.Errorf("%w: task succeeded without a model url", ErrGenerationFailed)
			}
			return status.ModelURL, nil
		case client.TaskFailed, client.TaskCanceled:
			logrus.WithFields(logrus.Fields{
				"taskID": taskID,
				"status": status.Status,
			}).Error("generation task ended unsuccessfully")
			return "", ErrGenerationFailed
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.pollInterval):
		}
	}

	return "", ErrGenerationTimeout
}

func (s *generationServiceImpl) registerModel(ctx context.Context, username string, body io.Reader) (*dto.FileInfo, error) {
	info, err := s.library.SaveUpload(ctx, username, "generated-model.obj", body)
	if err != nil {
		return nil, fmt.Errorf("register generated model: %w", err)
	}
	return info, nil
}
