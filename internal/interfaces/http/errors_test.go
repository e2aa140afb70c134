package http

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybodega/productos-api/internal/domain"
)

func responseFor(t *testing.T, err error) (int, string) {
	t.Helper()
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return domainError(c, err)
	})
	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, reqErr)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestDomainError_Mapeo(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrUserNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{domain.ErrEmailAlreadyExists, http.StatusConflict, "DUPLICATE"},
		{domain.ErrInsufficientStock, http.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
	}
	for _, tc := range cases {
		status, body := responseFor(t, tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Contains(t, body, tc.code, tc.err.Error())
	}
}

func TestDomainError_NoReconocido_500SinDetalles(t *testing.T) {
	status, body := responseFor(t, errors.New("detalle interno de la base"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, body, "INTERNAL")
	assert.NotContains(t, body, "detalle interno",
		"el error interno no debe filtrarse al cliente")
}
