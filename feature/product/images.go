package product

import (
	"context"
	"errors"
	"fmt"

	"catalog-manager/core/filestore"
	"catalog-manager/feature/product/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ImageUpload is an image file attached to a color.
type ImageUpload struct {
	Filename string
	Content  []byte
	IsMain   bool
}

// AddImage stores the file and attaches it to the color. A main image
// replaces the color's previous main image.
func (s *Service) AddImage(ctx context.Context, productID, colorID uuid.UUID, upload ImageUpload) (*ImageDetail, error) {
	db := s.db.WithContext(ctx)
	if _, err := findColor(db, productID, colorID); err != nil {
		return nil, err
	}

	url, err := s.files.Save(ctx, upload.Content, upload.Filename, ImageFolder, filestore.KindImage, s.maxImageBytes)
	if err != nil {
		return nil, err
	}

	img := models.Image{ColorID: colorID, URL: url, IsMain: upload.IsMain}
	err = db.Transaction(func(tx *gorm.DB) error {
		if _, err := findColor(tx, productID, colorID); err != nil {
			return err
		}
		if upload.IsMain {
			if err := clearMainImage(tx, colorID); err != nil {
				return err
			}
		}
		if err := tx.Create(&img).Error; err != nil {
			return fmt.Errorf("failed to create image: %w", err)
		}
		return nil
	})
	if err != nil {
		s.cleanup(ctx, []string{url})
		return nil, err
	}

	s.logger.Info("Image added", zap.String("product_id", productID.String()), zap.String("color_id", colorID.String()), zap.String("url", url))
	out := toImageDetail(img)
	return &out, nil
}

// RemoveImage deletes the image row, then its file.
func (s *Service) RemoveImage(ctx context.Context, productID, colorID, imageID uuid.UUID) error {
	var url string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		img, err := findImage(tx, productID, colorID, imageID)
		if err != nil {
			return err
		}
		if err := tx.Where("id = ?", img.ID).Delete(&models.Image{}).Error; err != nil {
			return fmt.Errorf("failed to delete image: %w", err)
		}
		url = img.URL
		return nil
	})
	if err != nil {
		return err
	}

	s.cleanup(ctx, []string{url})
	return nil
}

// SetMainImage makes imageID the only main image of its color.
func (s *Service) SetMainImage(ctx context.Context, productID, colorID, imageID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		img, err := findImage(tx, productID, colorID, imageID)
		if err != nil {
			return err
		}
		if err := clearMainImage(tx, colorID); err != nil {
			return err
		}
		if err := tx.Model(&models.Image{}).Where("id = ?", img.ID).Update("is_main", true).Error; err != nil {
			return fmt.Errorf("failed to set main image: %w", err)
		}
		return nil
	})
}

// findColor looks the color up by both ids, so a color of another product
// is never matched.
func findColor(db *gorm.DB, productID, colorID uuid.UUID) (*models.Color, error) {
	var c models.Color
	err := db.Where("id = ? AND product_id = ?", colorID, productID).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrColorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load color: %w", err)
	}
	return &c, nil
}

func findImage(db *gorm.DB, productID, colorID, imageID uuid.UUID) (*models.Image, error) {
	if _, err := findColor(db, productID, colorID); err != nil {
		return nil, err
	}
	var img models.Image
	err := db.Where("id = ? AND color_id = ?", imageID, colorID).Take(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	return &img, nil
}

func clearMainImage(tx *gorm.DB, colorID uuid.UUID) error {
	err := tx.Model(&models.Image{}).
		Where("color_id = ? AND is_main = ?", colorID, true).
		Update("is_main", false).Error
	if err != nil {
		return fmt.Errorf("failed to reset main image: %w", err)
	}
	return nil
}
