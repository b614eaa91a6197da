package category_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog-manager/feature/category"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandler_Routes(t *testing.T) {
	db := setupDB(t)
	locked := func(c *fiber.Ctx) error {
		if c.Get("X-Test-Admin") != "yes" {
			return c.SendStatus(fiber.StatusForbidden)
		}
		return c.Next()
	}

	app := fiber.New()
	require.NoError(t, category.NewFeature(db, zap.NewNop(), locked).Load(app))

	t.Run("Create requires guard", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/categories", strings.NewReader(`{"name":"Hats"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 403, resp.StatusCode)
	})

	var created category.Response
	t.Run("Create", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/categories", strings.NewReader(`{"name":"Hats","description":"Caps"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Test-Admin", "yes")
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, 201, resp.StatusCode)
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
		assert.Equal(t, "Hats", created.Name)
	})

	t.Run("Duplicate is a conflict", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/categories", strings.NewReader(`{"name":"Hats"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Test-Admin", "yes")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 409, resp.StatusCode)
	})

	t.Run("List is public", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/categories", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		var list []category.Response
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
		assert.Len(t, list, 1)
	})

	t.Run("Get with bad id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/categories/not-a-uuid", nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Delete", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/categories/"+created.ID.String(), nil)
		req.Header.Set("X-Test-Admin", "yes")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 204, resp.StatusCode)

		resp, err = app.Test(httptest.NewRequest("GET", "/categories/"+created.ID.String(), nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})
}
