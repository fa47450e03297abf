package services

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"pos-backend/models"
	"pos-backend/repository"
	"pos-backend/storage"
)

const maxImageSizeBytes = 8 << 20 // 8 MB

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// InventoryService defines the business logic for item CRUD and the stock
// report.
type InventoryService interface {
	ListItems(ctx context.Context, page, pageSize int) (*models.ItemPage, *ServiceError)
	GetItem(ctx context.Context, id uint) (*models.Item, *ServiceError)
	CreateItem(ctx context.Context, req *models.ItemRequest, image *multipart.FileHeader) (*models.Item, *ServiceError)
	UpdateItem(ctx context.Context, id uint, req *models.ItemRequest, image *multipart.FileHeader) (*models.Item, *ServiceError)
	DeleteItem(ctx context.Context, id uint) *ServiceError
	StockReport(ctx context.Context, page, pageSize int) (*models.StockReportPage, *ServiceError)
}

type inventoryServiceImpl struct {
	items  repository.ItemRepository
	store  storage.ImageStore
	logger *zap.Logger
}

func NewInventoryService(items repository.ItemRepository, store storage.ImageStore, logger *zap.Logger) InventoryService {
	return &inventoryServiceImpl{items: items, store: store, logger: logger}
}

func (s *inventoryServiceImpl) ListItems(ctx context.Context, page, pageSize int) (*models.ItemPage, *ServiceError) {
	items, total, err := s.items.FindAll(ctx, page, pageSize)
	if err != nil {
		s.logger.Error("Failed to list items", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch items"}
	}
	return &models.ItemPage{
		TotalItems: total,
		PageNumber: page,
		PageSize:   pageSize,
		Items:      items,
	}, nil
}

func (s *inventoryServiceImpl) GetItem(ctx context.Context, id uint) (*models.Item, *ServiceError) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Item not found"}
		}
		s.logger.Error("Failed to fetch item", zap.Uint("item_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch item"}
	}
	return item, nil
}

func (s *inventoryServiceImpl) CreateItem(ctx context.Context, req *models.ItemRequest, image *multipart.FileHeader) (*models.Item, *ServiceError) {
	imageURL := ""
	if image != nil {
		if svcErr := validateImage(image); svcErr != nil {
			return nil, svcErr
		}
		url, err := s.store.Save(image)
		if err != nil {
			s.logger.Error("Failed to store image", zap.String("filename", image.Filename), zap.Error(err))
			return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to upload image"}
		}
		imageURL = url
	}

	item := &models.Item{
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		Category: req.Category,
		ImageURL: imageURL,
	}
	if err := s.items.Create(ctx, item); err != nil {
		s.logger.Error("Failed to create item", zap.String("name", req.Name), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to create new item"}
	}

	s.logger.Info("Item created", zap.Uint("item_id", item.ID), zap.String("name", item.Name))
	return item, nil
}

func (s *inventoryServiceImpl) UpdateItem(ctx context.Context, id uint, req *models.ItemRequest, image *multipart.FileHeader) (*models.Item, *ServiceError) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Item not found"}
		}
		s.logger.Error("Failed to fetch item", zap.Uint("item_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update item"}
	}

	if image != nil {
		if svcErr := validateImage(image); svcErr != nil {
			return nil, svcErr
		}
		url, err := s.store.Save(image)
		if err != nil {
			s.logger.Error("Failed to store image", zap.String("filename", image.Filename), zap.Error(err))
			return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to upload image"}
		}
		s.removeImage(item.ImageURL)
		item.ImageURL = url
	}

	item.Name = req.Name
	item.Price = req.Price
	item.Stock = req.Stock
	item.Category = req.Category

	if err := s.items.Update(ctx, item); err != nil {
		s.logger.Error("Failed to update item", zap.Uint("item_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update item"}
	}

	s.logger.Info("Item updated", zap.Uint("item_id", item.ID))
	return item, nil
}

func (s *inventoryServiceImpl) DeleteItem(ctx context.Context, id uint) *ServiceError {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ServiceError{StatusCode: http.StatusNotFound, Message: "Item not found"}
		}
		s.logger.Error("Failed to fetch item", zap.Uint("item_id", id), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to delete item"}
	}

	if err := s.items.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ServiceError{StatusCode: http.StatusNotFound, Message: "Item not found"}
		}
		s.logger.Error("Failed to delete item", zap.Uint("item_id", id), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to delete item"}
	}

	s.removeImage(item.ImageURL)

	s.logger.Info("Item deleted", zap.Uint("item_id", id))
	return nil
}

func (s *inventoryServiceImpl) StockReport(ctx context.Context, page, pageSize int) (*models.StockReportPage, *ServiceError) {
	items, total, err := s.items.FindAll(ctx, page, pageSize)
	if err != nil {
		s.logger.Error("Failed to build stock report", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch stock report"}
	}
	return &models.StockReportPage{
		TotalItems:  total,
		PageNumber:  page,
		PageSize:    pageSize,
		StockReport: items,
	}, nil
}

// removeImage deletes a stored image best-effort: failures are logged and
// never fail the owning request.
func (s *inventoryServiceImpl) removeImage(imageURL string) {
	if imageURL == "" {
		return
	}
	if err := s.store.Remove(imageURL); err != nil {
		s.logger.Warn("Failed to delete stored image", zap.String("image_url", imageURL), zap.Error(err))
	}
}

func validateImage(file *multipart.FileHeader) *ServiceError {
	if file.Size > maxImageSizeBytes {
		return &ServiceError{StatusCode: http.StatusBadRequest, Message: "File size exceeds the limit of 8 MB"}
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return &ServiceError{StatusCode: http.StatusBadRequest, Message: "Only .jpg, .jpeg and .png files are allowed"}
	}
	return nil
}
