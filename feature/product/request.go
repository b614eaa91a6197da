package product

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRequest is the full desired state of a product.
type ProductRequest struct {
	CategoryID  uuid.UUID
	Name        string
	Description string
	Colors      []ColorEntry
}

// ColorInput is the submitted data of one color.
type ColorInput struct {
	Name     string
	IsMain   bool
	Variants []VariantEntry
}

// VariantInput is the submitted data of one variant. Size is kept raw so
// that an invalid value can be reported back verbatim.
type VariantInput struct {
	Size  string
	Stock int
	Price decimal.Decimal
}

// ColorEntry is either a NewColor or an ExistingColor.
type ColorEntry interface {
	Input() ColorInput
	// Identity returns the id the entry claims, if any.
	Identity() (uuid.UUID, bool)
	colorEntry()
}

// NewColor asks for a color to be created.
type NewColor struct {
	ColorInput
}

// ExistingColor asks for the color with ID to be updated. An ID the product
// does not own is treated as a new color.
type ExistingColor struct {
	ID uuid.UUID
	ColorInput
}

func (c NewColor) Input() ColorInput                { return c.ColorInput }
func (c NewColor) Identity() (uuid.UUID, bool)      { return uuid.Nil, false }
func (NewColor) colorEntry()                        {}
func (c ExistingColor) Input() ColorInput           { return c.ColorInput }
func (c ExistingColor) Identity() (uuid.UUID, bool) { return c.ID, true }
func (ExistingColor) colorEntry()                   {}

// VariantEntry is either a NewVariant or an ExistingVariant.
type VariantEntry interface {
	Input() VariantInput
	Identity() (uuid.UUID, bool)
	variantEntry()
}

type NewVariant struct {
	VariantInput
}

type ExistingVariant struct {
	ID uuid.UUID
	VariantInput
}

func (v NewVariant) Input() VariantInput              { return v.VariantInput }
func (v NewVariant) Identity() (uuid.UUID, bool)      { return uuid.Nil, false }
func (NewVariant) variantEntry()                      {}
func (v ExistingVariant) Input() VariantInput         { return v.VariantInput }
func (v ExistingVariant) Identity() (uuid.UUID, bool) { return v.ID, true }
func (ExistingVariant) variantEntry()                 {}

// Wire format. A missing or null id marks a new entry.
type productPayload struct {
	CategoryID  uuid.UUID      `json:"category_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Colors      []colorPayload `json:"colors"`
}

type colorPayload struct {
	ID       *uuid.UUID       `json:"id,omitempty"`
	Name     string           `json:"name"`
	IsMain   bool             `json:"is_main"`
	Variants []variantPayload `json:"variants"`
}

type variantPayload struct {
	ID    *uuid.UUID      `json:"id,omitempty"`
	Size  string          `json:"size"`
	Stock int             `json:"stock"`
	Price decimal.Decimal `json:"price"`
}

func (r *ProductRequest) UnmarshalJSON(b []byte) error {
	var p productPayload
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}

	r.CategoryID = p.CategoryID
	r.Name = p.Name
	r.Description = p.Description
	r.Colors = make([]ColorEntry, 0, len(p.Colors))
	for _, c := range p.Colors {
		in := ColorInput{Name: c.Name, IsMain: c.IsMain, Variants: make([]VariantEntry, 0, len(c.Variants))}
		for _, v := range c.Variants {
			vin := VariantInput{Size: v.Size, Stock: v.Stock, Price: v.Price}
			if v.ID != nil {
				in.Variants = append(in.Variants, ExistingVariant{ID: *v.ID, VariantInput: vin})
			} else {
				in.Variants = append(in.Variants, NewVariant{VariantInput: vin})
			}
		}
		if c.ID != nil {
			r.Colors = append(r.Colors, ExistingColor{ID: *c.ID, ColorInput: in})
		} else {
			r.Colors = append(r.Colors, NewColor{ColorInput: in})
		}
	}
	return nil
}

// normalized trims names and rounds prices to cents.
func (r ProductRequest) normalized() ProductRequest {
	out := r
	out.Name = strings.TrimSpace(r.Name)
	out.Description = strings.TrimSpace(r.Description)
	out.Colors = make([]ColorEntry, len(r.Colors))
	for i, entry := range r.Colors {
		in := entry.Input()
		in.Name = strings.TrimSpace(in.Name)
		variants := make([]VariantEntry, len(in.Variants))
		for j, v := range in.Variants {
			vin := v.Input()
			vin.Price = vin.Price.Round(2)
			switch ev := v.(type) {
			case ExistingVariant:
				variants[j] = ExistingVariant{ID: ev.ID, VariantInput: vin}
			default:
				variants[j] = NewVariant{VariantInput: vin}
			}
		}
		in.Variants = variants

		switch ec := entry.(type) {
		case ExistingColor:
			out.Colors[i] = ExistingColor{ID: ec.ID, ColorInput: in}
		default:
			out.Colors[i] = NewColor{ColorInput: in}
		}
	}
	return out
}
