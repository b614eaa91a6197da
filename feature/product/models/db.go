package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Size is a variant size.
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// Sizes lists the accepted sizes in display order.
var Sizes = []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}

// Product is the catalog aggregate root. MinPrice caches the cheapest
// variant price for listing queries.
type Product struct {
	ID          uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	CategoryID  uuid.UUID       `gorm:"type:char(36);not null;index" json:"category_id"`
	Name        string          `gorm:"size:200;not null;index" json:"name"`
	Description string          `gorm:"size:4000" json:"description"`
	MinPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null;index" json:"min_price"`
	Colors      []Color         `gorm:"foreignKey:ProductID" json:"colors,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// Color belongs to exactly one product. Position keeps the submitted order.
type Color struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:char(36);not null;index" json:"product_id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	IsMain    bool      `gorm:"not null;default:false" json:"is_main"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	Variants  []Variant `gorm:"foreignKey:ColorID" json:"variants,omitempty"`
	Images    []Image   `gorm:"foreignKey:ColorID" json:"images,omitempty"`
}

func (Color) TableName() string { return "product_colors" }

type Variant struct {
	ID      uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	ColorID uuid.UUID       `gorm:"type:char(36);not null;index" json:"color_id"`
	Size    Size            `gorm:"size:8;not null" json:"size"`
	Stock   int             `gorm:"not null" json:"stock"`
	Price   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
}

func (Variant) TableName() string { return "product_variants" }

type Image struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	ColorID   uuid.UUID `gorm:"type:char(36);not null;index" json:"color_id"`
	URL       string    `gorm:"size:500;not null" json:"url"`
	IsMain    bool      `gorm:"not null;default:false" json:"is_main"`
	CreatedAt time.Time `json:"created_at"`
}

func (Image) TableName() string { return "product_images" }

func (p *Product) BeforeCreate(*gorm.DB) error { p.ID = ensureID(p.ID); return nil }
func (c *Color) BeforeCreate(*gorm.DB) error   { c.ID = ensureID(c.ID); return nil }
func (v *Variant) BeforeCreate(*gorm.DB) error { v.ID = ensureID(v.ID); return nil }
func (i *Image) BeforeCreate(*gorm.DB) error   { i.ID = ensureID(i.ID); return nil }

func ensureID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}

// All returns every product model, parents first.
func All() []any {
	return []any{&Product{}, &Color{}, &Variant{}, &Image{}}
}
