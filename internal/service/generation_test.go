package service

import (
	"context"
	"errors"
	"io"
	"print3d-shop/internal/client"
	"print3d-shop/internal/model"
	"print3d-shop/internal/repository"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeGenClient scripts the external generation API: a fixed sequence of
// task statuses followed by downloadable model data.
type fakeGenClient struct {
	createErr error
	statuses  []*client.TaskStatus
	calls     int
	modelData string
}

func (f *fakeGenClient) CreateTask(ctx context.Context, prompt string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	return "task-1", nil
}

func (f *fakeGenClient) GetTask(ctx context.Context, taskID string) (*client.TaskStatus, error) {
	if f.calls >= len(f.statuses) {
		return f.statuses[len(f.statuses)-1], nil
	}
	status := f.statuses[f.calls]
	f.calls++
	return status, nil
}

func (f *fakeGenClient) DownloadModel(ctx context.Context, modelURL string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(f.modelData)), nil
}

func newGenerationService(t *testing.T, gen client.GenerationClient) (GenerationService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	files := newTestFileStore(t)
	library := NewLibraryService(repository.NewUploadRepository(db), files, "http://localhost:8080")
	return NewGenerationService(gen, library, time.Millisecond, 5), db
}

func TestGenerationService_Success(t *testing.T) {
	gen := &fakeGenClient{
		statuses: []*client.TaskStatus{
			{Status: client.TaskPending},
			{Status: client.TaskInProgress},
			{Status: client.TaskSucceeded, ModelURL: "http://cdn.example/model.obj"},
		},
		modelData: "generated obj",
	}
	svc, db := newGenerationService(t, gen)

	info, err := svc.GenerateModel(context.Background(), "alice", "a chair")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(info.Filename, "-generated-model.obj"))
	assert.NotEmpty(t, info.URL)

	var uploads []*model.Upload
	require.NoError(t, db.Find(&uploads).Error)
	require.Len(t, uploads, 1)
	assert.Equal(t, "alice", uploads[0].Username)
	assert.Equal(t, info.Filename, uploads[0].Filename)
}

func TestGenerationService_TaskFailed(t *testing.T) {
	gen := &fakeGenClient{
		statuses: []*client.TaskStatus{{Status: client.TaskFailed}},
	}
	svc, db := newGenerationService(t, gen)

	_, err := svc.GenerateModel(context.Background(), "alice", "a chair")
	assert.True(t, errors.Is(err, ErrGenerationFailed))

	// nothing registered on failure
	var count int64
	require.NoError(t, db.Model(&model.Upload{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestGenerationService_PollingIsBounded(t *testing.T) {
	gen := &fakeGenClient{
		statuses: []*client.TaskStatus{{Status: client.TaskPending}},
	}
	svc, db := newGenerationService(t, gen)

	_, err := svc.GenerateModel(context.Background(), "alice", "a chair")
	assert.True(t, errors.Is(err, ErrGenerationTimeout))

	var count int64
	require.NoError(t, db.Model(&model.Upload{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestGenerationService_CreateTaskError(t *testing.T) {
	gen := &fakeGenClient{createErr: errors.New("api unreachable")}
	svc, _ := newGenerationService(t, gen)

	_, err := svc.GenerateModel(context.Background(), "alice", "a chair")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create generation task")
}
