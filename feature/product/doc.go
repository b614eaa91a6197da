// Package product implements the product catalog: products with colors,
// sized variants and color images.
//
// Writes submit the full desired state of a product. Colors and variants
// carrying the id of an existing row are updated in place; rows the request
// no longer names are deleted and the rest created, all in one transaction.
// Image files of deleted colors are removed from the file store after the
// commit. A failed file removal is logged and counted but never undoes the
// committed change.
//
// A product has 1 to 5 uniquely named colors, exactly one of them main, and
// each color has 1 to 6 variants of distinct sizes (XS, S, M, L, XL, XXL).
// The product's MinPrice is recomputed from its variants on every write.
//
// # HTTP Endpoints
//
//   - GET    /api/v1/products                                          : list (search, categoryId, page, pageSize, sortBy, desc)
//   - GET    /api/v1/products/:id                                      : detail
//   - POST   /api/v1/products                                          : create (Admin)
//   - PUT    /api/v1/products/:id                                      : reconcile (Admin)
//   - DELETE /api/v1/products/:id                                      : delete with images (Admin)
//   - POST   /api/v1/products/:id/colors/:colorId/images               : upload image (Admin)
//   - DELETE /api/v1/products/:id/colors/:colorId/images/:imageId      : remove image (Admin)
//   - PUT    /api/v1/products/:id/colors/:colorId/images/:imageId/main : set main image (Admin)
package product
