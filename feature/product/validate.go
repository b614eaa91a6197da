package product

import (
	"strings"
	"unicode/utf8"

	"catalog-manager/feature/product/models"
)

const (
	maxNameLength   = 200
	maxColorLength  = 200
	minColors       = 1
	maxColors       = 5
	minVariants     = 1
	maxVariants     = 6
	minVariantStock = 1
)

// ParseSize matches raw against the accepted sizes ignoring case and
// surrounding whitespace.
func ParseSize(raw string) (models.Size, bool) {
	s := models.Size(strings.ToUpper(strings.TrimSpace(raw)))
	for _, size := range models.Sizes {
		if s == size {
			return size, true
		}
	}
	return "", false
}

func allowedSizes() string {
	names := make([]string, len(models.Sizes))
	for i, s := range models.Sizes {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// validate checks a normalized request and returns the first violation.
// Checks run in a fixed order so the same input always reports the same error.
func validate(req ProductRequest) error {
	if req.Name == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(req.Name) > maxNameLength {
		return ErrNameTooLong
	}
	if n := len(req.Colors); n < minColors || n > maxColors {
		return ErrColorCountInvalid
	}

	names := make(map[string]struct{}, len(req.Colors))
	hasMain := false
	for _, entry := range req.Colors {
		color := entry.Input()
		if color.Name == "" {
			return ErrColorRequired
		}
		if utf8.RuneCountInString(color.Name) > maxColorLength {
			return ErrColorTooLong
		}
		if _, dup := names[color.Name]; dup {
			return ErrColorConflict.Withf(color.Name)
		}
		names[color.Name] = struct{}{}

		if color.IsMain {
			if hasMain {
				return ErrMultipleMainColor
			}
			hasMain = true
		}

		if n := len(color.Variants); n < minVariants || n > maxVariants {
			return ErrVariantCountInvalid
		}
		if err := validateVariants(color.Variants); err != nil {
			return err
		}
	}

	if !hasMain {
		return ErrNoMainColor
	}
	return nil
}

func validateVariants(entries []VariantEntry) error {
	sizes := make(map[models.Size]struct{}, len(entries))
	for _, entry := range entries {
		v := entry.Input()
		size, ok := ParseSize(v.Size)
		if !ok {
			return ErrVariantSizeInvalid.Withf(v.Size, allowedSizes())
		}
		if _, dup := sizes[size]; dup {
			return ErrVariantConflict.Withf(size)
		}
		sizes[size] = struct{}{}

		if v.Stock < minVariantStock {
			return ErrVariantStockInvalid
		}
		if !v.Price.IsPositive() {
			return ErrVariantPriceInvalid
		}
	}
	return nil
}
