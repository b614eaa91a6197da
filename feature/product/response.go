package product

import (
	"slices"

	"catalog-manager/feature/product/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Detail is the full view of a product.
type Detail struct {
	ID           uuid.UUID       `json:"id"`
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	MinPrice     decimal.Decimal `json:"min_price"`
	Colors       []ColorDetail   `json:"colors"`
}

type ColorDetail struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	IsMain   bool            `json:"is_main"`
	Variants []VariantDetail `json:"variants"`
	Images   []ImageDetail   `json:"images"`
}

type VariantDetail struct {
	ID    uuid.UUID       `json:"id"`
	Size  models.Size     `json:"size"`
	Stock int             `json:"stock"`
	Price decimal.Decimal `json:"price"`
}

type ImageDetail struct {
	ID     uuid.UUID `json:"id"`
	URL    string    `json:"url"`
	IsMain bool      `json:"is_main"`
}

// Summary is the listing view of a product.
type Summary struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	MinPrice    decimal.Decimal `json:"min_price"`
	TopImageURL string          `json:"top_image_url"`
}

// PagedResult is one page of a product listing.
type PagedResult struct {
	Items    []Summary `json:"items"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Total    int64     `json:"total"`
}

func toDetail(p models.Product, categoryName string) *Detail {
	d := &Detail{
		ID:           p.ID,
		CategoryID:   p.CategoryID,
		CategoryName: categoryName,
		Name:         p.Name,
		Description:  p.Description,
		MinPrice:     p.MinPrice,
		Colors:       make([]ColorDetail, 0, len(p.Colors)),
	}
	for _, c := range p.Colors {
		cd := ColorDetail{
			ID:       c.ID,
			Name:     c.Name,
			IsMain:   c.IsMain,
			Variants: make([]VariantDetail, 0, len(c.Variants)),
			Images:   make([]ImageDetail, 0, len(c.Images)),
		}
		variants := slices.Clone(c.Variants)
		slices.SortStableFunc(variants, func(a, b models.Variant) int {
			return sizeRank(a.Size) - sizeRank(b.Size)
		})
		for _, v := range variants {
			cd.Variants = append(cd.Variants, VariantDetail{ID: v.ID, Size: v.Size, Stock: v.Stock, Price: v.Price})
		}
		for _, img := range c.Images {
			cd.Images = append(cd.Images, toImageDetail(img))
		}
		d.Colors = append(d.Colors, cd)
	}
	return d
}

func toImageDetail(img models.Image) ImageDetail {
	return ImageDetail{ID: img.ID, URL: img.URL, IsMain: img.IsMain}
}

func sizeRank(s models.Size) int {
	return slices.Index(models.Sizes, s)
}

// topImage picks the listing image of a color: its main image, else its
// oldest one.
func topImage(images []models.Image) string {
	for _, img := range images {
		if img.IsMain {
			return img.URL
		}
	}
	if len(images) > 0 {
		return images[0].URL
	}
	return ""
}
