package product

import "catalog-manager/core/apperr"

var (
	ErrCategoryNotFound = apperr.NewNotFound("Product.CategoryId.NotFound", "Category was not found.")
	ErrProductNotFound  = apperr.NewNotFound("Product.Product.NotFound", "Product was not found.")
	ErrColorNotFound    = apperr.NewNotFound("Product.Color.NotFound", "Color was not found on this product.")
	ErrImageNotFound    = apperr.NewNotFound("Product.Image.NotFound", "Image was not found on this color.")

	ErrNameRequired      = apperr.NewValidation("Product.Name.Empty", "Product name is required.")
	ErrNameTooLong       = apperr.NewValidation("Product.Name.Length", "Product name must be at most 200 characters.")
	ErrColorCountInvalid = apperr.NewValidation("Product.Colors.Count", "A product must have between 1 and 5 colors.")
	ErrColorRequired     = apperr.NewValidation("Product.Colors.Color.Required", "Color name is required.")
	ErrColorTooLong      = apperr.NewValidation("Product.Colors.Color.Length", "Color name must be at most 200 characters.")
	ErrColorConflict     = apperr.NewConflict("Product.Colors.Color.Unique", "Color '%s' is submitted more than once.")
	ErrMultipleMainColor = apperr.NewValidation("Product.Colors.IsMainColor.Multiple", "Only one color can be the main color.")
	ErrNoMainColor       = apperr.NewValidation("Product.Colors.IsMainColor.NoMainColor", "One color must be the main color.")

	ErrVariantCountInvalid = apperr.NewValidation("Product.Colors.Variant.Count", "A color must have between 1 and 6 variants.")
	ErrVariantSizeInvalid  = apperr.NewValidation("Product.Colors.Color.Variants.Size.Invalid", "Size '%s' is not valid. Allowed sizes: %s.")
	ErrVariantConflict     = apperr.NewConflict("Product.Colors.Color.Variant.Size.Unique", "Size '%s' is submitted more than once for a color.")
	ErrVariantStockInvalid = apperr.NewValidation("Product.Colors.Color.Variants.Stock", "Stock must be at least 1.")
	ErrVariantPriceInvalid = apperr.NewValidation("Product.Colors.Color.Variants.Price", "Price must be greater than 0.")

	errBadID = apperr.NewValidation("Product.Id.Invalid", "Id must be a UUID.")
)
