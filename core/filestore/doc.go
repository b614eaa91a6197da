// Package filestore stores uploaded files in object storage.
//
// Uploads are checked against immutable Rules built from configuration
// (accepted extensions per Kind) and a caller supplied size cap, then written
// as "<folder>/<uuid><ext>" in the configured bucket. The returned URL is the
// public prefix followed by the object name, and HandleServe streams it back.
//
// # Errors
//
//   - File.Size.Empty, File.TooLarge, File.FileKindNotSupported: Validation
//   - File.SaveFailed: Unexpected
//   - File.DeleteFailed: Failure
//
// # Usage
//
//	files := filestore.New(client, cfg.Storage.Bucket, cfg.Files)
//	url, err := files.Save(ctx, data, "shirt.png", "products", filestore.KindImage, cfg.Files.MaxImageBytes)
package filestore
