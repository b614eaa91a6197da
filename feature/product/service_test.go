package product_test

import (
	"context"
	"errors"
	"testing"

	"catalog-manager/core/database"
	"catalog-manager/core/filestore"
	"catalog-manager/core/filestore/mocks"
	"catalog-manager/core/metrics"
	categorymodels "catalog-manager/feature/category/models"
	"catalog-manager/feature/product"
	"catalog-manager/feature/product/models"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxImageBytes = 1024

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, append([]any{&categorymodels.Category{}}, models.All()...)...))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	c := categorymodels.Category{Name: name}
	require.NoError(t, db.Create(&c).Error)
	return c.ID
}

func newService(t *testing.T) (*product.Service, *gorm.DB, *mocks.Store) {
	t.Helper()
	db := setupDB(t)
	files := &mocks.Store{}
	return product.NewService(db, files, zap.NewNop(), maxImageBytes), db, files
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newVariant(size string, stock int, p string) product.VariantEntry {
	return product.NewVariant{VariantInput: product.VariantInput{Size: size, Stock: stock, Price: price(p)}}
}

func keepVariant(id uuid.UUID, size string, stock int, p string) product.VariantEntry {
	return product.ExistingVariant{ID: id, VariantInput: product.VariantInput{Size: size, Stock: stock, Price: price(p)}}
}

func newColor(name string, main bool, variants ...product.VariantEntry) product.ColorEntry {
	return product.NewColor{ColorInput: product.ColorInput{Name: name, IsMain: main, Variants: variants}}
}

func keepColor(id uuid.UUID, name string, main bool, variants ...product.VariantEntry) product.ColorEntry {
	return product.ExistingColor{ID: id, ColorInput: product.ColorInput{Name: name, IsMain: main, Variants: variants}}
}

func addImage(t *testing.T, db *gorm.DB, colorID uuid.UUID, url string, main bool) {
	t.Helper()
	require.NoError(t, db.Create(&models.Image{ColorID: colorID, URL: url, IsMain: main}).Error)
}

func mainColors(d *product.Detail) []string {
	var out []string
	for _, c := range d.Colors {
		if c.IsMain {
			out = append(out, c.Name)
		}
	}
	return out
}

func TestService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newService(t)
	category := seedCategory(t, db, "Shirts")

	out, err := svc.CreateProduct(ctx, product.ProductRequest{
		CategoryID:  category,
		Name:        " Tee ",
		Description: "Cotton",
		Colors: []product.ColorEntry{
			newColor("Red", false, newVariant("m", 3, "10.00"), newVariant("L", 1, "25.50")),
			newColor("Blue", true, newVariant("S", 2, "7.00")),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Tee", out.Name)
	assert.Equal(t, "Shirts", out.CategoryName)
	assert.True(t, price("7").Equal(out.MinPrice), "min price was %s", out.MinPrice)
	require.Len(t, out.Colors, 2)
	assert.Equal(t, "Red", out.Colors[0].Name)
	assert.Equal(t, []string{"Blue"}, mainColors(out))

	require.Len(t, out.Colors[0].Variants, 2)
	assert.Equal(t, models.SizeM, out.Colors[0].Variants[0].Size)
	assert.Equal(t, models.SizeL, out.Colors[0].Variants[1].Size)

	var stored models.Product
	require.NoError(t, db.First(&stored, "id = ?", out.ID).Error)
	assert.True(t, price("7").Equal(stored.MinPrice))
}

func TestService_CreateProduct_ExistingIDsAreCreated(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newService(t)
	category := seedCategory(t, db, "Shirts")

	claimed := uuid.New()
	out, err := svc.CreateProduct(ctx, product.ProductRequest{
		CategoryID: category,
		Name:       "Tee",
		Colors:     []product.ColorEntry{keepColor(claimed, "Red", true, newVariant("M", 1, "5"))},
	})
	require.NoError(t, err)
	require.Len(t, out.Colors, 1)
	assert.NotEqual(t, claimed, out.Colors[0].ID)
}

func TestService_CreateProduct_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newService(t)
	category := seedCategory(t, db, "Shirts")

	t.Run("Unknown category", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, product.ProductRequest{
			CategoryID: uuid.New(),
			Name:       "",
		})
		assert.ErrorIs(t, err, product.ErrCategoryNotFound)
	})

	t.Run("Blank color name wins over bad size", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, product.ProductRequest{
			CategoryID: category,
			Name:       "Tee",
			Colors: []product.ColorEntry{
				newColor("Red", true, newVariant("M", 1, "1")),
				newColor(" ", false, newVariant("HUGE", 1, "1")),
			},
		})
		assert.ErrorIs(t, err, product.ErrColorRequired)
	})

	t.Run("Duplicate size", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, product.ProductRequest{
			CategoryID: category,
			Name:       "Tee",
			Colors: []product.ColorEntry{
				newColor("Red", true, newVariant("M", 1, "1"), newVariant("M", 4, "9")),
			},
		})
		require.ErrorIs(t, err, product.ErrVariantConflict)
		assert.Contains(t, err.Error(), "'M'")
	})

	var n int64
	require.NoError(t, db.Model(&models.Product{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&models.Color{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestService_UpdateProduct_PreservesIdentity(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newService(t)
	category := seedCategory(t, db, "Shirts")

	created, err := svc.CreateProduct(ctx, product.ProductRequest{
		CategoryID: category,
		Name:       "Tee",
		Colors: []product.ColorEntry{
			newColor("Red", true, newVariant("M", 3, "10.00"), newVariant("L", 1, "25.50")),
		},
	})
	require.NoError(t, err)
	red := created.Colors[0]
	m, l := red.Variants[0], red.Variants[1]

	updated, err := svc.UpdateProduct(ctx, created.ID, product.ProductRequest{
		CategoryID: category,
		Name:       "Tee v2",
		Colors: []product.ColorEntry{
			keepColor(red.ID, "Crimson", true,
				keepVariant(m.ID, "M", 8, "12.00"),
				newVariant("XL", 1, "30"),
			),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Tee v2", updated.Name)
	require.Len(t, updated.Colors, 1)
	got := updated.Colors[0]
	assert.Equal(t, red.ID, got.ID)
	assert.Equal(t, "Crimson", got.Name)

	require.Len(t, got.Variants, 2)
	assert.Equal(t, m.ID, got.Variants[0].ID)
	assert.Equal(t, 8, got.Variants[0].Stock)
	assert.Equal(t, models.SizeXL, got.Variants[1].Size)
	assert.NotEqual(t, l.ID, got.Variants[1].ID)
	assert.True(t, price("12").Equal(updated.MinPrice))

	var n int64
	require.NoError(t, db.Model(&models.Variant{}).Where("id = ?", l.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestService_UpdateProduct_RemovesOrphanedColor(t *testing.T) {
	ctx := context.Background()
	svc, db, files := newService(t)
	category := seedCategory(t, db, "Shirts")

	created, err := svc.CreateProduct(ctx, product.ProductRequest{
		CategoryID: category,
		Name:       "Tee",
		Colors: []product.ColorEntry{
			newColor("A", true, newVariant("M", 1, "10")),
			newColor("B", false, newVariant("S", 1, "7"), newVariant("L", 1, "8")),
		},
	})
	require.NoError(t, err)
	a, b := created.Colors[0], created.Colors[1]
	addImage(t, db, a.ID, "/media/products/a.jpg", true)
	addImage(t, db, b.ID, "/media/products/b1.jpg", true)
	addImage(t, db, b.ID, "/media/products/b2.jpg", false)

	files.On("Delete", mock.Anything, "/media/products/b1.jpg").Return(nil).Once()
	files.On("Delete", mock.Anything, "/media/products/b2.jpg").Return(nil).Once()

	updated, err := svc.UpdateProduct(ctx, created.ID, product.ProductRequest{
		CategoryID: category,
		Name:       "Tee",
		Colors:     []product.ColorEntry{keepColor(a.ID, "A", true, keepVariant(a.Variants[0].ID, "M", 1, "10"))},
	})
	require.NoError(t, err)

	files.AssertExpectations(t)
	files.AssertNumberOfCalls(t, "Delete", 2)

	require.Len(t, updated.Colors, 1)
	assert.Equal(t, a.ID, updated.Colors[0].ID)
	require.Len(t, updated.Colors[0].Images, 1)
	assert.True(t, price("10").Equal(updated.MinPrice))

	var n int64
	require.NoError(t, db.Model(&models.Color{}).Where("id = ?", b.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&models.Variant{}).Where("color_id = ?", b.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&models.Image{}).Where("color_id = ?", b.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestService_UpdateProduct_MovesMainColor(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newService(t)
	category := seedCategory(t, db, "Shirts")

	created, err := svc.CreateProduct(ctx, product.ProductRequest{
		CategoryID: category,
		Name:       "Tee",
		Colors: []product.ColorEntry{
			newColor("Red", true, newVariant("M", 1, "10")),
			newColor("Blue", false, newVariant("M", 1, "10")),
		},
	})
	require.NoError(t, err)
	red, blue := created.Colors[0], created.Colors[1]

	updated, err := svc.UpdateProduct(ctx, created.ID, product.ProductRequest{
		CategoryID: category,
		Name:       "Tee",
		Colors: []product.ColorEntry{
			keepColor(blue.ID, "Blue", true, newVariant("M", 1, "10")),
			keepColor(red.ID, "Red", false, newVariant("M", 1, "10")),
			newColor("Green", false, newVariant("L", 1, "11")),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Blue"}, mainColors(updated))
	require.Len(t, updated.Colors, 3)
	assert.Equal(t, []string{"Blue", "Red", "Green"}, []string{updated.Colors[0].Name, updated.Colors[1].Name, updated.Colors[2].Name})

	var mains int64
	require.NoError(t, db.Model(&models.Color{}).Where("product_id = ? AND is_main = ?", created.ID, true).Count(&mains).Error)
	assert.EqualValues(t, 1, mains)
}

func TestService_UpdateProduct_NotFoundOrder(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newService(t)
	category := seedCategory(t, db, "Shirts")

	_, err := svc.UpdateProduct(ctx, uuid.New(), product.ProductRequest{CategoryID: uuid.New()})
	assert.ErrorIs(t, err, product.ErrCategoryNotFound)

	_, err = svc.UpdateProduct(ctx, uuid.New(), product.ProductRequest{CategoryID: category})
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestService_UpdateProduct_CleanupFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	svc, db, files := newService(t)
	category := seedCategory(t, db, "Shirts")

	created, err := svc.CreateProduct(ctx, product.ProductRequest{
		CategoryID: category,
		Name:       "Tee",
		Colors: []product.ColorEntry{
			newColor("A", true, newVariant("M", 1, "10")),
			newColor("B", false, newVariant("M", 1, "10")),
		},
	})
	require.NoError(t, err)
	addImage(t, db, created.Colors[1].ID, "/media/products/gone.jpg", false)
	files.On("Delete", mock.Anything, "/media/products/gone.jpg").Return(filestore.ErrDeleteFailed).Once()

	before := testutil.ToFloat64(metrics.ImageCleanupFailures)
	_, err = svc.UpdateProduct(ctx, created.ID, product.ProductRequest{
		CategoryID: category,
		Name:       "Tee",
		Colors:     []product.ColorEntry{keepColor(created.Colors[0].ID, "A", true, newVariant("M", 1, "10"))},
	})
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ImageCleanupFailures))
	files.AssertExpectations(t)
}

func TestService_UpdateProduct_RollsBackOnValidationError(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newService(t)
	category := seedCategory(t, db, "Shirts")

	created, err := svc.CreateProduct(ctx, product.ProductRequest{
		CategoryID: category,
		Name:       "Tee",
		Colors:     []product.ColorEntry{newColor("Red", true, newVariant("M", 1, "10"))},
	})
	require.NoError(t, err)

	_, err = svc.UpdateProduct(ctx, created.ID, product.ProductRequest{
		CategoryID: category,
		Name:       "Renamed",
		Colors:     []product.ColorEntry{newColor("Red", false, newVariant("M", 1, "10"))},
	})
	assert.ErrorIs(t, err, product.ErrNoMainColor)

	got, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tee", got.Name)
	assert.Equal(t, created.Colors[0].ID, got.Colors[0].ID)
}

func TestService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	svc, db, files := newService(t)
	category := seedCategory(t, db, "Shirts")

	created, err := svc.CreateProduct(ctx, product.ProductRequest{
		CategoryID: category,
		Name:       "Tee",
		Colors: []product.ColorEntry{
			newColor("A", true, newVariant("M", 1, "10")),
			newColor("B", false, newVariant("M", 1, "10")),
		},
	})
	require.NoError(t, err)
	addImage(t, db, created.Colors[0].ID, "/media/products/a.jpg", true)
	addImage(t, db, created.Colors[1].ID, "/media/products/b.jpg", true)
	files.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))
	files.AssertNumberOfCalls(t, "Delete", 2)

	_, err = svc.GetProduct(ctx, created.ID)
	assert.ErrorIs(t, err, product.ErrProductNotFound)
	for _, m := range models.All() {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		assert.Zero(t, n)
	}

	assert.ErrorIs(t, svc.DeleteProduct(ctx, created.ID), product.ErrProductNotFound)
}

func TestService_ListProducts(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newService(t)
	shirts := seedCategory(t, db, "Shirts")
	hats := seedCategory(t, db, "Hats")

	create := func(category uuid.UUID, name, p string) *product.Detail {
		out, err := svc.CreateProduct(ctx, product.ProductRequest{
			CategoryID: category,
			Name:       name,
			Colors: []product.ColorEntry{
				newColor("Side", false, newVariant("M", 1, "999")),
				newColor("Main", true, newVariant("M", 1, p)),
			},
		})
		require.NoError(t, err)
		return out
	}
	tee := create(shirts, "Basic Tee", "15")
	polo := create(shirts, "Polo 100%", "30")
	create(hats, "Cap", "5")
	addImage(t, db, tee.Colors[1].ID, "/media/products/tee.jpg", true)
	addImage(t, db, tee.Colors[0].ID, "/media/products/side.jpg", true)

	t.Run("Defaults sort by price", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, product.ListQuery{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 20, page.PageSize)
		require.Len(t, page.Items, 3)
		assert.Equal(t, "Cap", page.Items[0].Name)
		assert.Equal(t, "Basic Tee", page.Items[1].Name)
		assert.Equal(t, "/media/products/tee.jpg", page.Items[1].TopImageURL)
		assert.Empty(t, page.Items[2].TopImageURL)
	})

	t.Run("Name descending with paging", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, product.ListQuery{SortBy: "name", Desc: true, Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.EqualValues(t, 3, page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Basic Tee", page.Items[0].Name)
	})

	t.Run("Category filter", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, product.ListQuery{CategoryID: hats})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Cap", page.Items[0].Name)
	})

	t.Run("Search treats wildcards literally", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, product.ListQuery{Search: "0%"})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, polo.ID, page.Items[0].ID)

		page, err = svc.ListProducts(ctx, product.ListQuery{Search: "tee"})
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
	})

	t.Run("Page size is capped", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, product.ListQuery{PageSize: 1000})
		require.NoError(t, err)
		assert.Equal(t, 100, page.PageSize)
	})
}

func TestService_Images(t *testing.T) {
	ctx := context.Background()
	svc, db, files := newService(t)
	category := seedCategory(t, db, "Shirts")

	created, err := svc.CreateProduct(ctx, product.ProductRequest{
		CategoryID: category,
		Name:       "Tee",
		Colors:     []product.ColorEntry{newColor("Red", true, newVariant("M", 1, "10"))},
	})
	require.NoError(t, err)
	colorID := created.Colors[0].ID

	files.On("Save", mock.Anything, []byte("one"), "one.jpg", "products", filestore.KindImage, int64(maxImageBytes)).
		Return("/media/products/one.jpg", nil).Once()
	files.On("Save", mock.Anything, []byte("two"), "two.png", "products", filestore.KindImage, int64(maxImageBytes)).
		Return("/media/products/two.png", nil).Once()

	first, err := svc.AddImage(ctx, created.ID, colorID, product.ImageUpload{Filename: "one.jpg", Content: []byte("one"), IsMain: true})
	require.NoError(t, err)
	assert.True(t, first.IsMain)

	second, err := svc.AddImage(ctx, created.ID, colorID, product.ImageUpload{Filename: "two.png", Content: []byte("two"), IsMain: true})
	require.NoError(t, err)

	mainOf := func() []uuid.UUID {
		var ids []uuid.UUID
		require.NoError(t, db.Model(&models.Image{}).Where("color_id = ? AND is_main = ?", colorID, true).Pluck("id", &ids).Error)
		return ids
	}
	assert.Equal(t, []uuid.UUID{second.ID}, mainOf())

	require.NoError(t, svc.SetMainImage(ctx, created.ID, colorID, first.ID))
	assert.Equal(t, []uuid.UUID{first.ID}, mainOf())

	t.Run("Color of another product", func(t *testing.T) {
		_, err := svc.AddImage(ctx, uuid.New(), colorID, product.ImageUpload{Filename: "x.jpg", Content: []byte("x")})
		assert.ErrorIs(t, err, product.ErrColorNotFound)
		assert.ErrorIs(t, svc.SetMainImage(ctx, uuid.New(), colorID, first.ID), product.ErrColorNotFound)
	})

	t.Run("Unknown image", func(t *testing.T) {
		assert.ErrorIs(t, svc.RemoveImage(ctx, created.ID, colorID, uuid.New()), product.ErrImageNotFound)
	})

	t.Run("Store rejection", func(t *testing.T) {
		files.On("Save", mock.Anything, []byte("doc"), "x.pdf", "products", filestore.KindImage, int64(maxImageBytes)).
			Return("", filestore.ErrKindNotSupported.Withf(".pdf", filestore.KindImage)).Once()
		_, err := svc.AddImage(ctx, created.ID, colorID, product.ImageUpload{Filename: "x.pdf", Content: []byte("doc")})
		assert.ErrorIs(t, err, filestore.ErrKindNotSupported)
	})

	t.Run("Remove deletes row then file", func(t *testing.T) {
		files.On("Delete", mock.Anything, "/media/products/two.png").Return(errors.New("bucket offline")).Once()
		require.NoError(t, svc.RemoveImage(ctx, created.ID, colorID, second.ID))

		var n int64
		require.NoError(t, db.Model(&models.Image{}).Where("id = ?", second.ID).Count(&n).Error)
		assert.Zero(t, n)
	})

	files.AssertExpectations(t)
}
