package product

import (
	"encoding/json"
	"strings"
	"testing"

	"catalog-manager/feature/product/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func variant(size string, stock int, price string) VariantEntry {
	return NewVariant{VariantInput{Size: size, Stock: stock, Price: decimal.RequireFromString(price)}}
}

func color(name string, main bool, variants ...VariantEntry) ColorEntry {
	return NewColor{ColorInput{Name: name, IsMain: main, Variants: variants}}
}

func validRequest() ProductRequest {
	return ProductRequest{
		CategoryID: uuid.New(),
		Name:       "Tee",
		Colors: []ColorEntry{
			color("Red", true, variant("M", 1, "10")),
			color("Blue", false, variant("L", 2, "12.50")),
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *ProductRequest)
		want   error
	}{
		{"valid", func(r *ProductRequest) {}, nil},
		{"blank name", func(r *ProductRequest) { r.Name = "" }, ErrNameRequired},
		{"long name", func(r *ProductRequest) { r.Name = strings.Repeat("ñ", 201) }, ErrNameTooLong},
		{"name at limit", func(r *ProductRequest) { r.Name = strings.Repeat("ñ", 200) }, nil},
		{"no colors", func(r *ProductRequest) { r.Colors = nil }, ErrColorCountInvalid},
		{"six colors", func(r *ProductRequest) {
			r.Colors = nil
			for _, n := range []string{"a", "b", "c", "d", "e", "f"} {
				r.Colors = append(r.Colors, color(n, n == "a", variant("M", 1, "1")))
			}
		}, ErrColorCountInvalid},
		{"blank color", func(r *ProductRequest) { r.Colors[1] = color("", false, variant("M", 1, "1")) }, ErrColorRequired},
		{"long color", func(r *ProductRequest) {
			r.Colors[1] = color(strings.Repeat("x", 201), false, variant("M", 1, "1"))
		}, ErrColorTooLong},
		{"duplicate color", func(r *ProductRequest) { r.Colors[1] = color("Red", false, variant("M", 1, "1")) }, ErrColorConflict},
		{"two main colors", func(r *ProductRequest) { r.Colors[1] = color("Blue", true, variant("M", 1, "1")) }, ErrMultipleMainColor},
		{"no main color", func(r *ProductRequest) { r.Colors[0] = color("Red", false, variant("M", 1, "1")) }, ErrNoMainColor},
		{"no variants", func(r *ProductRequest) { r.Colors[1] = color("Blue", false) }, ErrVariantCountInvalid},
		{"seven variants", func(r *ProductRequest) {
			r.Colors[1] = color("Blue", false,
				variant("XS", 1, "1"), variant("S", 1, "1"), variant("M", 1, "1"), variant("L", 1, "1"),
				variant("XL", 1, "1"), variant("XXL", 1, "1"), variant("XXXL", 1, "1"))
		}, ErrVariantCountInvalid},
		{"unknown size", func(r *ProductRequest) { r.Colors[1] = color("Blue", false, variant("XXXL", 1, "1")) }, ErrVariantSizeInvalid},
		{"zero stock", func(r *ProductRequest) { r.Colors[1] = color("Blue", false, variant("M", 0, "1")) }, ErrVariantStockInvalid},
		{"zero price", func(r *ProductRequest) { r.Colors[1] = color("Blue", false, variant("M", 1, "0")) }, ErrVariantPriceInvalid},
		{"negative price", func(r *ProductRequest) { r.Colors[1] = color("Blue", false, variant("M", 1, "-3")) }, ErrVariantPriceInvalid},
		{"size case folded", func(r *ProductRequest) { r.Colors[1] = color("Blue", false, variant(" xl ", 1, "1")) }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := validate(req.normalized())
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidate_ColorChecksPrecedeVariantChecks(t *testing.T) {
	req := validRequest()
	req.Colors[1] = color("  ", false, variant("HUGE", 1, "1"))

	assert.ErrorIs(t, validate(req.normalized()), ErrColorRequired)
}

func TestValidate_DuplicateSize(t *testing.T) {
	req := validRequest()
	req.Colors[0] = color("Red", true, variant("M", 1, "10"), variant("m", 9, "99"))

	err := validate(req.normalized())
	require.ErrorIs(t, err, ErrVariantConflict)
	assert.Contains(t, err.Error(), "'M'")
}

func TestValidate_ReportsRawSize(t *testing.T) {
	req := validRequest()
	req.Colors[0] = color("Red", true, variant("Huge", 1, "10"))

	err := validate(req.normalized())
	require.ErrorIs(t, err, ErrVariantSizeInvalid)
	assert.Contains(t, err.Error(), "'Huge'")
	assert.Contains(t, err.Error(), "XS, S, M, L, XL, XXL")
}

func TestNormalized_RoundsPriceBeforeValidation(t *testing.T) {
	req := validRequest()
	req.Colors[0] = color("Red", true, variant("M", 1, "0.004"))

	assert.ErrorIs(t, validate(req.normalized()), ErrVariantPriceInvalid)
}

func TestParseSize(t *testing.T) {
	size, ok := ParseSize(" xxl")
	assert.True(t, ok)
	assert.Equal(t, models.SizeXXL, size)

	_, ok = ParseSize("XXXL")
	assert.False(t, ok)
	_, ok = ParseSize("")
	assert.False(t, ok)
}

func TestProductRequest_UnmarshalJSON(t *testing.T) {
	colorID := uuid.New()
	variantID := uuid.New()
	body := `{
		"category_id": "` + uuid.NewString() + `",
		"name": "Tee",
		"colors": [
			{"id": "` + colorID.String() + `", "name": "Red", "is_main": true, "variants": [
				{"id": "` + variantID.String() + `", "size": "M", "stock": 3, "price": 10.5},
				{"size": "L", "stock": 1, "price": "12"}
			]},
			{"id": null, "name": "Blue", "variants": [{"size": "S", "stock": 1, "price": 9}]}
		]
	}`

	var req ProductRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.Len(t, req.Colors, 2)

	red, ok := req.Colors[0].(ExistingColor)
	require.True(t, ok)
	assert.Equal(t, colorID, red.ID)
	assert.True(t, red.IsMain)

	require.Len(t, red.Variants, 2)
	m, ok := red.Variants[0].(ExistingVariant)
	require.True(t, ok)
	assert.Equal(t, variantID, m.ID)
	assert.True(t, decimal.RequireFromString("10.5").Equal(m.Price))
	assert.IsType(t, NewVariant{}, red.Variants[1])

	assert.IsType(t, NewColor{}, req.Colors[1])
	_, claimed := req.Colors[1].Identity()
	assert.False(t, claimed)
}

func TestMinPrice(t *testing.T) {
	colors := []*models.Color{
		{Variants: []models.Variant{{Price: decimal.RequireFromString("10.00")}, {Price: decimal.RequireFromString("25.50")}}},
		{Variants: []models.Variant{{Price: decimal.RequireFromString("7.00")}}},
	}
	assert.True(t, decimal.RequireFromString("7").Equal(minPrice(colors)))

	assert.True(t, decimal.Zero.Equal(minPrice(nil)))
	assert.True(t, decimal.Zero.Equal(minPrice([]*models.Color{{}})))
}

func TestMainSlot(t *testing.T) {
	assert.Equal(t, 1, mainSlot([]ColorEntry{color("a", false), color("b", true)}))
	assert.Equal(t, 0, mainSlot([]ColorEntry{color("a", false), color("b", false)}))
}
