package filestore

import (
	"errors"
	"io"
	"path"

	"catalog-manager/core/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
)

// RegisterRoutes mounts the public download route under the store prefix.
func (s *ObjectStore) RegisterRoutes(app fiber.Router) {
	app.Get(s.prefix+"/*", s.HandleServe)
}

// HandleServe streams a stored object back to the client.
// @Summary Download a stored file
// @Tags media
// @Produce octet-stream
// @Param path path string true "Object path"
// @Success 200 {file} binary
// @Failure 404 {object} apperr.Error
// @Router /media/{path} [get]
func (s *ObjectStore) HandleServe(c *fiber.Ctx) error {
	name := c.Params("*")
	if !validObjectName(name) {
		return apperr.Respond(c, ErrNotFound)
	}

	obj, err := s.client.GetObject(c.Context(), s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return apperr.Respond(c, notFoundOr(err))
	}
	defer obj.Close()

	// minio reports a missing key on first read, so read before writing headers.
	data, err := io.ReadAll(obj)
	if err != nil {
		return apperr.Respond(c, notFoundOr(err))
	}

	c.Type(path.Ext(name))
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(data)
}

func notFoundOr(err error) error {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
		return ErrNotFound
	}
	return err
}
