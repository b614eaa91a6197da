package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog-manager/core/filestore"
	"catalog-manager/core/metrics"
	"catalog-manager/core/reconcile"
	categorymodels "catalog-manager/feature/category/models"
	"catalog-manager/feature/product/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ImageFolder is the storage folder holding product images.
const ImageFolder = "products"

const (
	defaultPageSize = 20
	maxPageSize     = 100
	cleanupWorkers  = 4
)

// Service manages products and their colors, variants and images.
type Service struct {
	db            *gorm.DB
	files         filestore.Store
	logger        *zap.Logger
	maxImageBytes int64
}

func NewService(db *gorm.DB, files filestore.Store, logger *zap.Logger, maxImageBytes int64) *Service {
	return &Service{db: db, files: files, logger: logger, maxImageBytes: maxImageBytes}
}

// CreateProduct persists a new product built from req.
func (s *Service) CreateProduct(ctx context.Context, req ProductRequest) (*Detail, error) {
	req = req.normalized()

	var id uuid.UUID
	var rec *reconciler
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCategory(tx, req.CategoryID); err != nil {
			return err
		}
		if err := validate(req); err != nil {
			return err
		}

		p := models.Product{
			CategoryID:  req.CategoryID,
			Name:        req.Name,
			Description: req.Description,
			MinPrice:    decimal.Zero,
		}
		if err := tx.Omit(clause.Associations).Create(&p).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		rec = newReconciler(tx, p.ID, req.Colors)
		if err := rec.apply(ctx, nil, req.Colors); err != nil {
			return err
		}
		id = p.ID
		return setMinPrice(tx, p.ID, minPrice(rec.Colors()))
	})
	if err != nil {
		return nil, err
	}

	recordReconcile(rec)
	s.logger.Info("Product created", zap.String("id", id.String()), zap.String("name", req.Name))
	return s.GetProduct(ctx, id)
}

// UpdateProduct reconciles the product with req: colors and variants are
// matched by id, unmatched existing ones are deleted and the rest created.
// Image files of deleted colors are removed after the commit.
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, req ProductRequest) (*Detail, error) {
	req = req.normalized()

	var rec *reconciler
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCategory(tx, req.CategoryID); err != nil {
			return err
		}
		p, err := loadProduct(tx, id)
		if err != nil {
			return err
		}
		if err := validate(req); err != nil {
			return err
		}

		existing := make([]*models.Color, len(p.Colors))
		for i := range p.Colors {
			existing[i] = &p.Colors[i]
		}
		rec = newReconciler(tx, p.ID, req.Colors)
		if err := rec.apply(ctx, existing, req.Colors); err != nil {
			return err
		}

		err = tx.Model(&models.Product{}).
			Where("id = ?", p.ID).
			Updates(map[string]any{
				"category_id": req.CategoryID,
				"name":        req.Name,
				"description": req.Description,
				"min_price":   minPrice(rec.Colors()),
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	recordReconcile(rec)
	s.cleanup(ctx, rec.orphans)
	s.logger.Info("Product updated",
		zap.String("id", id.String()),
		zap.Int("colors_created", rec.colors.Creates),
		zap.Int("colors_updated", rec.colors.Updates),
		zap.Int("colors_deleted", rec.colors.Deletes),
	)
	return s.GetProduct(ctx, id)
}

// DeleteProduct removes the product aggregate, then its image files.
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	var urls []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := loadProduct(tx, id)
		if err != nil {
			return err
		}

		colorIDs := make([]uuid.UUID, 0, len(p.Colors))
		for _, c := range p.Colors {
			colorIDs = append(colorIDs, c.ID)
			for _, img := range c.Images {
				urls = append(urls, img.URL)
			}
		}
		if len(colorIDs) > 0 {
			if err := tx.Where("color_id IN ?", colorIDs).Delete(&models.Image{}).Error; err != nil {
				return fmt.Errorf("failed to delete product images: %w", err)
			}
			if err := tx.Where("color_id IN ?", colorIDs).Delete(&models.Variant{}).Error; err != nil {
				return fmt.Errorf("failed to delete product variants: %w", err)
			}
			if err := tx.Where("product_id = ?", p.ID).Delete(&models.Color{}).Error; err != nil {
				return fmt.Errorf("failed to delete product colors: %w", err)
			}
		}
		if err := tx.Where("id = ?", p.ID).Delete(&models.Product{}).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cleanup(ctx, urls)
	s.logger.Info("Product deleted", zap.String("id", id.String()), zap.Int("images", len(urls)))
	return nil
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*Detail, error) {
	db := s.db.WithContext(ctx)
	p, err := loadProduct(db, id)
	if err != nil {
		return nil, err
	}

	var c categorymodels.Category
	if err := db.Select("name").Where("id = ?", p.CategoryID).Take(&c).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load product category: %w", err)
	}
	return toDetail(*p, c.Name), nil
}

// ListQuery selects and orders a page of products.
type ListQuery struct {
	Search     string
	CategoryID uuid.UUID
	Page       int
	PageSize   int
	SortBy     string
	Desc       bool
}

func (q ListQuery) normalized() ListQuery {
	q.Search = strings.TrimSpace(q.Search)
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
	if strings.EqualFold(q.SortBy, "name") {
		q.SortBy = "name"
	} else {
		q.SortBy = "min_price"
	}
	return q
}

// ListProducts returns a page of product summaries.
func (s *Service) ListProducts(ctx context.Context, q ListQuery) (*PagedResult, error) {
	q = q.normalized()
	db := s.db.WithContext(ctx)

	base := db.Model(&models.Product{})
	if q.Search != "" {
		base = base.Where("name LIKE ? ESCAPE '!'", "%"+escapeLike(q.Search)+"%")
	}
	if q.CategoryID != uuid.Nil {
		base = base.Where("category_id = ?", q.CategoryID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var rows []models.Product
	err := base.Session(&gorm.Session{}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: q.SortBy}, Desc: q.Desc}).
		Order("id").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	images, err := s.topImages(db, rows)
	if err != nil {
		return nil, err
	}

	items := make([]Summary, 0, len(rows))
	for _, p := range rows {
		items = append(items, Summary{ID: p.ID, Name: p.Name, MinPrice: p.MinPrice, TopImageURL: images[p.ID]})
	}
	return &PagedResult{Items: items, Page: q.Page, PageSize: q.PageSize, Total: total}, nil
}

// topImages maps product ids to the top image of their main color.
func (s *Service) topImages(db *gorm.DB, products []models.Product) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(products))
	if len(products) == 0 {
		return out, nil
	}
	ids := make([]uuid.UUID, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	var colors []models.Color
	err := db.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("created_at").Order("id") }).
		Where("product_id IN ? AND is_main = ?", ids, true).
		Find(&colors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load listing images: %w", err)
	}
	for _, c := range colors {
		out[c.ProductID] = topImage(c.Images)
	}
	return out, nil
}

// cleanup removes files that no longer have a row. Failures are logged and
// counted, never returned: the database change is already committed.
func (s *Service) cleanup(ctx context.Context, urls []string) {
	if len(urls) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)

	var g errgroup.Group
	g.SetLimit(cleanupWorkers)
	for _, url := range urls {
		g.Go(func() error {
			if err := s.files.Delete(ctx, url); err != nil {
				metrics.ImageCleanupFailures.Inc()
				s.logger.Warn("Failed to delete image file", zap.String("url", url), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}

func ensureCategory(tx *gorm.DB, id uuid.UUID) error {
	var n int64
	if err := tx.Model(&categorymodels.Category{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}
	if n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func loadProduct(db *gorm.DB, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := db.
		Preload("Colors", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Colors.Variants").
		Preload("Colors.Images", func(db *gorm.DB) *gorm.DB { return db.Order("created_at").Order("id") }).
		Where("id = ?", id).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return &p, nil
}

func setMinPrice(tx *gorm.DB, id uuid.UUID, price decimal.Decimal) error {
	if err := tx.Model(&models.Product{}).Where("id = ?", id).Update("min_price", price).Error; err != nil {
		return fmt.Errorf("failed to update product price: %w", err)
	}
	return nil
}

func recordReconcile(r *reconciler) {
	if r == nil {
		return
	}
	for action, n := range map[reconcile.ActionType]int{
		reconcile.ActionCreate: r.colors.Creates,
		reconcile.ActionUpdate: r.colors.Updates,
		reconcile.ActionDelete: r.colors.Deletes,
	} {
		metrics.ReconciledColors.WithLabelValues(string(action)).Add(float64(n))
	}
	for action, n := range map[reconcile.ActionType]int{
		reconcile.ActionCreate: r.variants.Creates,
		reconcile.ActionUpdate: r.variants.Updates,
		reconcile.ActionDelete: r.variants.Deletes,
	} {
		metrics.ReconciledVariants.WithLabelValues(string(action)).Add(float64(n))
	}
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
