package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invokeRecovery(t *testing.T, method, path string, h echo.HandlerFunc) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(method, path, http.NoBody)
	rec := httptest.NewRecorder()

	err := Recovery(log)(h)(e.NewContext(req, rec))
	require.NoError(t, err)
	return rec, buf.String()
}

func TestRecovery_NoPanic(t *testing.T) {
	t.Parallel()

	rec, logged := invokeRecovery(t, http.MethodGet, "/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, logged, "no panic should produce no log output")
}

func TestRecovery_PanicString(t *testing.T) {
	t.Parallel()

	rec, logged := invokeRecovery(t, http.MethodGet, "/panic", func(echo.Context) error {
		panic("test panic")
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
	assert.Contains(t, logged, "panic recovered")
	assert.Contains(t, logged, "test panic")
	assert.Contains(t, logged, "path=/panic")
}

func TestRecovery_PanicNonString(t *testing.T) {
	t.Parallel()

	rec, logged := invokeRecovery(t, http.MethodPost, "/api/crash", func(echo.Context) error {
		panic(42)
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logged, "42")
	assert.Contains(t, logged, "method=POST")
}
