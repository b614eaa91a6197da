// Package apperr defines the error taxonomy shared by every feature.
//
// Business conditions are returned as *Error values with a Kind and a stable
// Code (e.g. "Product.Colors.Color.Unique"). Kinds map onto HTTP statuses in
// Respond, so handlers never choose a status code themselves:
//
//	Validation   -> 400
//	Unauthorized -> 401
//	Forbidden    -> 403
//	NotFound     -> 404
//	Conflict     -> 409
//	anything else -> 500
//
// Infrastructure errors are wrapped with fmt.Errorf and surface as
// Unexpected; their message never reaches the client.
//
// # Usage
//
//	var ErrNameRequired = apperr.NewValidation("Product.Name.Empty", "Product name is required.")
//
//	if errors.Is(err, ErrNameRequired) { ... }
//	return apperr.Respond(c, err)
package apperr
