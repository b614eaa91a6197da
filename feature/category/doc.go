// Package category implements product category management.
//
// Category names are unique (at most 100 characters) and descriptions are
// capped at 1000 characters. Renaming a category to its current name is
// allowed; taking another category's name is a conflict. A category that
// still has products cannot be deleted.
//
// # HTTP Endpoints
//
//   - GET    /api/v1/categories       : list, ordered by name
//   - GET    /api/v1/categories/:id   : fetch one
//   - POST   /api/v1/categories       : create (Admin)
//   - PUT    /api/v1/categories/:id   : update (Admin)
//   - DELETE /api/v1/categories/:id   : delete (Admin)
package category
