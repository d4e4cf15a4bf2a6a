package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore owns the two on-disk areas of the shop: the uploads directory
// holding user-submitted and generated model files, and the purchases
// directory holding immutable per-order snapshots.
type FileStore struct {
	uploadDir   string
	purchaseDir string
}

func NewFileStore(uploadDir, purchaseDir string) (*FileStore, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.MkdirAll(purchaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create purchase dir: %w", err)
	}
	return &FileStore{
		uploadDir:   uploadDir,
		purchaseDir: purchaseDir,
	}, nil
}

func (s *FileStore) UploadDir() string {
	return s.uploadDir
}

func (s *FileStore) PurchaseDir() string {
	return s.purchaseDir
}

func (s *FileStore) UploadPath(filename string) string {
	return filepath.Join(s.uploadDir, filepath.Base(filename))
}

func (s *FileStore) UploadExists(filename string) bool {
	_, err := os.Stat(s.UploadPath(filename))
	return err == nil
}

func (s *FileStore) SaveUpload(filename string, r io.Reader) error {
	f, err := os.Create(s.UploadPath(filename))
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("write upload file: %w", err)
	}
	return nil
}

// RemoveUpload deletes a stored model file. A file that is already gone is
// not an error, so sweeps and compensations can be retried safely.
func (s *FileStore) RemoveUpload(filename string) error {
	err := os.Remove(s.UploadPath(filename))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Snapshot copies a stored model file into a fresh per-order directory
// under the owner's purchase folder and returns the directory path.
func (s *FileStore) Snapshot(username, filename string, orderTS int64) (string, error) {
	userDir := filepath.Join(s.purchaseDir, username)
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", fmt.Errorf("create user purchase dir: %w", err)
	}

	orderDir := filepath.Join(userDir, fmt.Sprintf("order_%d", orderTS))
	if err := os.Mkdir(orderDir, 0o755); err != nil {
		return "", fmt.Errorf("create order dir: %w", err)
	}

	if err := copyFile(s.UploadPath(filename), filepath.Join(orderDir, filepath.Base(filename))); err != nil {
		return "", fmt.Errorf("copy model into order dir: %w", err)
	}

	return orderDir, nil
}

func (s *FileStore) WriteOrderDetails(orderDir string, orderTS int64, details string) error {
	name := fmt.Sprintf("order_%d_details.txt", orderTS)
	return os.WriteFile(filepath.Join(orderDir, name), []byte(details), 0o644)
}

func (s *FileStore) RemoveOrderDir(orderDir string) error {
	return os.RemoveAll(orderDir)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
