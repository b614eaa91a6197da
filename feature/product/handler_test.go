package product_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog-manager/core/filestore"
	"catalog-manager/core/filestore/mocks"
	"catalog-manager/feature/product"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandler_Routes(t *testing.T) {
	db := setupDB(t)
	category := seedCategory(t, db, "Shirts")
	files := &mocks.Store{}
	admin := func(c *fiber.Ctx) error {
		if c.Get("X-Test-Admin") != "yes" {
			return c.SendStatus(fiber.StatusForbidden)
		}
		return c.Next()
	}

	app := fiber.New()
	require.NoError(t, product.NewFeature(db, files, zap.NewNop(), maxImageBytes, admin).Load(app))

	send := func(method, target, body string, asAdmin bool) *result {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if asAdmin {
			req.Header.Set("X-Test-Admin", "yes")
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return &result{status: resp.StatusCode, body: buf.Bytes()}
	}

	body := `{"category_id":"` + category.String() + `","name":"Tee","colors":[
		{"name":"Red","is_main":true,"variants":[{"size":"M","stock":2,"price":"19.99"}]}
	]}`

	t.Run("Create requires guard", func(t *testing.T) {
		assert.Equal(t, 403, send("POST", "/products", body, false).status)
	})

	var created product.Detail
	t.Run("Create", func(t *testing.T) {
		resp := send("POST", "/products", body, true)
		require.Equal(t, 201, resp.status, string(resp.body))
		require.NoError(t, json.Unmarshal(resp.body, &created))
		require.Len(t, created.Colors, 1)
	})

	t.Run("Validation maps to 400", func(t *testing.T) {
		bad := `{"category_id":"` + category.String() + `","name":"Tee","colors":[]}`
		resp := send("POST", "/products", bad, true)
		assert.Equal(t, 400, resp.status)
		assert.Contains(t, string(resp.body), "Product.Colors.Count")
	})

	t.Run("Duplicate size maps to 409", func(t *testing.T) {
		dup := `{"category_id":"` + category.String() + `","name":"Tee","colors":[
			{"name":"Red","is_main":true,"variants":[{"size":"M","stock":1,"price":1},{"size":"m","stock":1,"price":2}]}
		]}`
		assert.Equal(t, 409, send("POST", "/products", dup, true).status)
	})

	t.Run("Malformed body", func(t *testing.T) {
		assert.Equal(t, 400, send("POST", "/products", `{"colors":`, true).status)
	})

	t.Run("Update keeps color id", func(t *testing.T) {
		upd := `{"category_id":"` + category.String() + `","name":"Tee","colors":[
			{"id":"` + created.Colors[0].ID.String() + `","name":"Red","is_main":true,"variants":[{"size":"L","stock":1,"price":5}]}
		]}`
		resp := send("PUT", "/products/"+created.ID.String(), upd, true)
		require.Equal(t, 200, resp.status, string(resp.body))
		var out product.Detail
		require.NoError(t, json.Unmarshal(resp.body, &out))
		assert.Equal(t, created.Colors[0].ID, out.Colors[0].ID)
		assert.Equal(t, "5", out.MinPrice.String())
	})

	t.Run("List and get are public", func(t *testing.T) {
		resp := send("GET", "/products?search=tee&pageSize=5", "", false)
		require.Equal(t, 200, resp.status)
		var page product.PagedResult
		require.NoError(t, json.Unmarshal(resp.body, &page))
		assert.EqualValues(t, 1, page.Total)
		assert.Equal(t, 5, page.PageSize)

		assert.Equal(t, 200, send("GET", "/products/"+created.ID.String(), "", false).status)
		assert.Equal(t, 400, send("GET", "/products/nope", "", false).status)
		assert.Equal(t, 400, send("GET", "/products?categoryId=nope", "", false).status)
	})

	t.Run("Upload image", func(t *testing.T) {
		files.On("Save", mock.Anything, []byte("png"), "front.png", "products", filestore.KindImage, int64(maxImageBytes)).
			Return("/media/products/front.png", nil).Once()

		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("file", "front.png")
		require.NoError(t, err)
		_, _ = part.Write([]byte("png"))
		require.NoError(t, w.WriteField("isMain", "true"))
		require.NoError(t, w.Close())

		target := "/products/" + created.ID.String() + "/colors/" + created.Colors[0].ID.String() + "/images"
		req := httptest.NewRequest("POST", target, &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		req.Header.Set("X-Test-Admin", "yes")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)

		var img product.ImageDetail
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&img))
		assert.Equal(t, "/media/products/front.png", img.URL)
		assert.True(t, img.IsMain)
	})

	t.Run("Delete", func(t *testing.T) {
		files.On("Delete", mock.Anything, "/media/products/front.png").Return(nil).Once()
		assert.Equal(t, 204, send("DELETE", "/products/"+created.ID.String(), "", true).status)
		assert.Equal(t, 404, send("GET", "/products/"+created.ID.String(), "", false).status)
	})

	files.AssertExpectations(t)
}

type result struct {
	status int
	body   []byte
}
