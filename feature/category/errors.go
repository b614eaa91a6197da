package category

import "catalog-manager/core/apperr"

var (
	ErrNotFound   = apperr.NewNotFound("Category.Id.NotFound", "Category was not found.")
	ErrNameExists = apperr.NewConflict("Category.Name.Exists", "A category named '%s' already exists.")
	ErrInUse      = apperr.NewConflict("Category.InUse", "Category still has %d product(s).")
)
