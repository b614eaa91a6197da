package loader_test

import (
	"errors"
	"net/http/httptest"
	"testing"

	"catalog-manager/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeature struct {
	name    string
	enabled bool
	err     error
	models  []any
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Models() []any   { return f.models }

func (f *fakeFeature) Load(app fiber.Router) error {
	if f.err != nil {
		return f.err
	}
	app.Get("/"+f.name, func(c *fiber.Ctx) error { return c.SendString(f.name) })
	return nil
}

type modelA struct{}
type modelB struct{}

func TestManager_LoadAll(t *testing.T) {
	mgr := loader.NewManager()
	mgr.Register(&fakeFeature{name: "on", enabled: true, models: []any{&modelA{}}})
	mgr.Register(&fakeFeature{name: "off", enabled: false, models: []any{&modelB{}}})

	app := fiber.New()
	require.NoError(t, mgr.LoadAll(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/on", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/off", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	assert.Equal(t, []string{"on"}, mgr.Names())
	assert.Len(t, mgr.Models(), 2)
}

func TestManager_LoadAllError(t *testing.T) {
	mgr := loader.NewManager()
	mgr.Register(&fakeFeature{name: "broken", enabled: true, err: errors.New("no db")})

	err := mgr.LoadAll(fiber.New())
	assert.ErrorContains(t, err, "broken")
	assert.ErrorContains(t, err, "no db")
}
