package integrity

import (
	"context"
	"fmt"
	"sort"

	"catalog-manager/core/database"
	"catalog-manager/feature/product"
	"catalog-manager/feature/product/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Files lists and deletes stored objects by public URL.
type Files interface {
	List(ctx context.Context, folder string) ([]string, error)
	Delete(ctx context.Context, url string) error
}

// SchemaReport describes how the live schema differs from the models.
type SchemaReport struct {
	Matched bool                  `json:"matched"`
	Tables  []database.TableDrift `json:"tables"`
}

// ImageReport compares image rows with the objects in the bucket.
type ImageReport struct {
	Rows    int      `json:"rows"`
	Objects int      `json:"objects"`
	Missing []string `json:"missing"`
	Orphans []string `json:"orphans"`
	Removed []string `json:"removed,omitempty"`
}

// Service runs consistency checks over the catalog.
type Service struct {
	db     *gorm.DB
	files  Files
	logger *zap.Logger
	models []any
}

// NewService creates a checker for the given models.
func NewService(db *gorm.DB, files Files, logger *zap.Logger, models []any) *Service {
	return &Service{db: db, files: files, logger: logger, models: models}
}

// CheckSchema reports tables or columns the database lacks.
func (s *Service) CheckSchema(ctx context.Context) (*SchemaReport, error) {
	drift, err := database.Drift(s.db.WithContext(ctx), s.models...)
	if err != nil {
		return nil, err
	}
	if drift == nil {
		drift = []database.TableDrift{}
	}
	return &SchemaReport{Matched: len(drift) == 0, Tables: drift}, nil
}

// CheckImages reports image rows whose object is gone (Missing) and
// objects no image row points at (Orphans).
func (s *Service) CheckImages(ctx context.Context) (*ImageReport, error) {
	var urls []string
	if err := s.db.WithContext(ctx).Model(&models.Image{}).Pluck("url", &urls).Error; err != nil {
		return nil, fmt.Errorf("failed to read image rows: %w", err)
	}
	objects, err := s.files.List(ctx, product.ImageFolder)
	if err != nil {
		return nil, err
	}

	stored := make(map[string]struct{}, len(objects))
	for _, u := range objects {
		stored[u] = struct{}{}
	}
	referenced := make(map[string]struct{}, len(urls))
	report := &ImageReport{Rows: len(urls), Objects: len(objects), Missing: []string{}, Orphans: []string{}}
	for _, u := range urls {
		referenced[u] = struct{}{}
		if _, ok := stored[u]; !ok {
			report.Missing = append(report.Missing, u)
		}
	}
	for _, u := range objects {
		if _, ok := referenced[u]; !ok {
			report.Orphans = append(report.Orphans, u)
		}
	}
	sort.Strings(report.Missing)
	sort.Strings(report.Orphans)
	return report, nil
}

// FixImages deletes orphaned objects and records them in report.Removed.
// Missing objects cannot be restored and are left for an operator.
func (s *Service) FixImages(ctx context.Context, report *ImageReport) {
	for _, u := range report.Orphans {
		if err := s.files.Delete(ctx, u); err != nil {
			s.logger.Warn("Failed to remove orphaned object", zap.String("url", u), zap.Error(err))
			continue
		}
		report.Removed = append(report.Removed, u)
	}
	s.logger.Info("Removed orphaned objects",
		zap.Int("removed", len(report.Removed)),
		zap.Int("orphans", len(report.Orphans)),
	)
}
