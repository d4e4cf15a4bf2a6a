package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"print3d-shop/internal/dto"
	"print3d-shop/internal/model"
	"print3d-shop/internal/repository"
	"print3d-shop/internal/storage"
	"time"

	"github.com/sirupsen/logrus"
)

type OrderService interface {
	Purchase(ctx context.Context, username string, req *dto.PurchaseRequest) (*dto.PurchaseResponse, error)
}

type orderServiceImpl struct {
	purchaseRepo repository.PurchaseRepository
	files        *storage.FileStore
}

func NewOrderService(
	purchaseRepo repository.PurchaseRepository,
	files *storage.FileStore,
) OrderService {
	return &orderServiceImpl{
		purchaseRepo: purchaseRepo,
		files:        files,
	}
}

// Purchase runs the checkout workflow: validate the request, resolve the
// model file, snapshot it into a per-order directory together with a
// human-readable details document, then record the purchase. The snapshot
// survives a later database failure only until the compensating removal; an
// insert error tears the order directory down again.
func (s *orderServiceImpl) Purchase(ctx context.Context, username string, req *dto.PurchaseRequest) (*dto.PurchaseResponse, error) {
	if missing := missingPurchaseFields(req); len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	filename := path.Base(req.ModelURL)
	if !s.files.UploadExists(filename) {
		// upload may have been purged by the retention sweep
		return nil, ErrModelNotFound
	}

	orderTime := time.Now()
	orderTS := orderTime.UnixMilli()

	orderDir, err := s.files.Snapshot(username, filename, orderTS)
	if err != nil {
		return nil, fmt.Errorf("snapshot model: %w", err)
	}

	details := orderDetails(orderTime, username, filename, req)
	if err := s.files.WriteOrderDetails(orderDir, orderTS, details); err != nil {
		s.removeSnapshot(orderDir)
		return nil, fmt.Errorf("write order details: %w", err)
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	dims, err := json.Marshal(req.ScaledDimensions)
	if err != nil {
		s.removeSnapshot(orderDir)
		return nil, fmt.Errorf("marshal dimensions: %w", err)
	}

	purchase := &model.Purchase{
		Username:         username,
		Filename:         filename,
		Quantity:         quantity,
		Address:          req.Address,
		PostalCode:       req.PostalCode,
		City:             req.City,
		ScaledDimensions: string(dims),
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		s.removeSnapshot(orderDir)
		return nil, fmt.Errorf("record purchase: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"username": username,
		"filename": filename,
		"orderDir": orderDir,
	}).Info("purchase completed")

	return &dto.PurchaseResponse{
		Success: true,
		Message: fmt.Sprintf("Purchase of %s completed and stored in %s.", filename, orderDir),
	}, nil
}

func (s *orderServiceImpl) removeSnapshot(orderDir string) {
	if err := s.files.RemoveOrderDir(orderDir); err != nil {
		logrus.WithError(err).WithField("orderDir", orderDir).
			Error("failed to remove order snapshot after error")
	}
}

func missingPurchaseFields(req *dto.PurchaseRequest) []string {
	var missing []string
	if req.ScaledDimensions == nil {
		missing = append(missing, "scaledDimensions")
	}
	if req.Address == "" {
		missing = append(missing, "address")
	}
	if req.PostalCode == "" {
		missing = append(missing, "postalCode")
	}
	if req.City == "" {
		missing = append(missing, "city")
	}
	if req.ModelURL == "" {
		missing = append(missing, "modelUrl")
	}
	return missing
}

func orderDetails(orderTime time.Time, username, filename string, req *dto.PurchaseRequest) string {
	return fmt.Sprintf(`Order date: %s
Username: %s
Model file: %s
Scaled dimensions (cm):
  Width: %.2f
  Height: %.2f
  Depth: %.2f
Delivery address:
  Address: %s
  Postal code: %s
  City: %s
`,
		orderTime.Format(time.RFC1123),
		username,
		filename,
		req.ScaledDimensions.X,
		req.ScaledDimensions.Y,
		req.ScaledDimensions.Z,
		req.Address,
		req.PostalCode,
		req.City,
	)
}
