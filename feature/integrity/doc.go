// Package integrity provides consistency checks over the catalog.
//
// # Checks Provided
//
//   - Schema: every table and column the registered models expect exists.
//   - Images: every product image row has an object in the bucket, and every
//     object under the products folder is referenced by a row. Orphaned
//     objects can be deleted with fix=true.
//
// # HTTP Endpoints
//
//   - GET /api/v1/integrity        : runs all checks.
//   - GET /api/v1/integrity/schema : runs the schema check.
//   - GET /api/v1/integrity/images : runs the image check (supports ?fix=true).
package integrity
