package apperr_test

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"catalog-manager/core/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDuplicate = apperr.NewConflict("Thing.Name.Unique", "Name '%s' is already used.")

func TestError_IsMatchesCode(t *testing.T) {
	formatted := errDuplicate.Withf("red")
	assert.Equal(t, "Name 'red' is already used.", formatted.Description)
	assert.True(t, errors.Is(formatted, errDuplicate))

	wrapped := fmt.Errorf("saving: %w", formatted)
	assert.True(t, errors.Is(wrapped, errDuplicate))
	assert.Equal(t, apperr.Conflict, apperr.KindOf(wrapped))

	other := apperr.NewConflict("Thing.Other", "x")
	assert.False(t, errors.Is(other, errDuplicate))
}

func TestKindOf_DefaultsToUnexpected(t *testing.T) {
	assert.Equal(t, apperr.Unexpected, apperr.KindOf(errors.New("boom")))
}

func TestRespond(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"Validation", apperr.NewValidation("A", "a"), 400, "A"},
		{"Unauthorized", apperr.NewUnauthorized("B", "b"), 401, "B"},
		{"Forbidden", apperr.NewForbidden("C", "c"), 403, "C"},
		{"NotFound", apperr.NewNotFound("D", "d"), 404, "D"},
		{"Conflict", apperr.NewConflict("E", "e"), 409, "E"},
		{"Failure", apperr.NewFailure("F", "f"), 500, "F"},
		{"Plain", errors.New("db exploded"), 500, "General.Unexpected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return apperr.Respond(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tt.code)
			assert.NotContains(t, string(body), "db exploded")
		})
	}
}

func TestValidate(t *testing.T) {
	type request struct {
		Name  string `validate:"required,max=5"`
		Email string `validate:"omitempty,email"`
	}
	v := validator.New()

	assert.NoError(t, apperr.Validate(v, "Thing", request{Name: "ok"}))

	err := apperr.Validate(v, "Thing", request{})
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	assert.True(t, errors.Is(err, apperr.NewValidation("Thing.Name.Empty", "")))

	err = apperr.Validate(v, "Thing", request{Name: "toolong"})
	assert.True(t, errors.Is(err, apperr.NewValidation("Thing.Name.Length", "")))

	err = apperr.Validate(v, "Thing", request{Name: "ok", Email: "nope"})
	assert.True(t, errors.Is(err, apperr.NewValidation("Thing.Email.Format", "")))
}
