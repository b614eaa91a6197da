package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog-manager/core/apperr"
	"catalog-manager/feature/category/models"
	productmodels "catalog-manager/feature/product/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Request is the create and update payload.
type Request struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// Response is the public view of a category.
type Response struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// Service manages product categories.
type Service struct {
	db       *gorm.DB
	logger   *zap.Logger
	validate *validator.Validate
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger, validate: validator.New()}
}

// List returns all categories ordered by name.
func (s *Service) List(ctx context.Context) ([]Response, error) {
	var rows []models.Category
	if err := s.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	out := make([]Response, 0, len(rows))
	for _, c := range rows {
		out = append(out, toResponse(c))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Response, error) {
	c, err := s.find(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	r := toResponse(*c)
	return &r, nil
}

func (s *Service) Create(ctx context.Context, req Request) (*Response, error) {
	req = normalize(req)
	if err := apperr.Validate(s.validate, "Category", req); err != nil {
		return nil, err
	}

	c := models.Category{Name: req.Name, Description: req.Description}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ensureNameFree(tx, req.Name, uuid.Nil); err != nil {
			return err
		}
		if err := tx.Create(&c).Error; err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Category created", zap.String("id", c.ID.String()), zap.String("name", c.Name))
	r := toResponse(c)
	return &r, nil
}

// Update renames or re-describes a category. A category may keep its own name.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req Request) (*Response, error) {
	req = normalize(req)
	if err := apperr.Validate(s.validate, "Category", req); err != nil {
		return nil, err
	}

	var updated models.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := s.find(tx, id)
		if err != nil {
			return err
		}
		if err := s.ensureNameFree(tx, req.Name, id); err != nil {
			return err
		}
		c.Name = req.Name
		c.Description = req.Description
		if err := tx.Save(c).Error; err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}
		updated = *c
		return nil
	})
	if err != nil {
		return nil, err
	}

	r := toResponse(updated)
	return &r, nil
}

// Delete removes a category that no product references.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := s.find(tx, id)
		if err != nil {
			return err
		}

		var products int64
		if err := tx.Model(&productmodels.Product{}).Where("category_id = ?", id).Count(&products).Error; err != nil {
			return fmt.Errorf("failed to count category products: %w", err)
		}
		if products > 0 {
			return ErrInUse.Withf(products)
		}

		if err := tx.Delete(c).Error; err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
}

func (s *Service) find(db *gorm.DB, id uuid.UUID) (*models.Category, error) {
	var c models.Category
	err := db.Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	return &c, nil
}

func (s *Service) ensureNameFree(tx *gorm.DB, name string, self uuid.UUID) error {
	q := tx.Model(&models.Category{}).Where("name = ?", name)
	if self != uuid.Nil {
		q = q.Where("id <> ?", self)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return fmt.Errorf("failed to check category name: %w", err)
	}
	if n > 0 {
		return ErrNameExists.Withf(name)
	}
	return nil
}

func normalize(req Request) Request {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	return req
}

func toResponse(c models.Category) Response {
	return Response{ID: c.ID, Name: c.Name, Description: c.Description}
}
