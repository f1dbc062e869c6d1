package handler

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notely/internal/auth"
	apperrors "notely/internal/errors"
)

// newContext builds an echo context for req, authenticated as userID when non-empty.
func newContext(req *http.Request, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(ClaimsContextKey, &auth.Claims{UserID: userID})
	}
	return c, rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

type formFile struct {
	field, name string
	data        []byte
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, files ...formFile) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

// assertHTTPError checks that err is an echo error with the given status and code.
func assertHTTPError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "expected *echo.HTTPError, got %v", err)
	assert.Equal(t, status, he.Code)
	body, ok := he.Message.(apperrors.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, code, body.Code)
}

func TestCurrentClaims_Missing(t *testing.T) {
	c, _ := newContext(httptest.NewRequest(http.MethodGet, "/", nil), "")

	_, err := currentClaims(c)
	assertHTTPError(t, err, http.StatusUnauthorized, "UNAUTHORIZED")
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperrors.NewValidationError("title", "title is required"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not found", apperrors.ErrNoteNotFound, http.StatusNotFound, "NOTE_NOT_FOUND"},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := respondError(tt.err)
			assertHTTPError(t, err, tt.status, tt.code)

			var he *echo.HTTPError
			require.True(t, errors.As(err, &he))
			assert.Equal(t, tt.err, he.Internal)
		})
	}
}

func TestParseFlag(t *testing.T) {
	assert.True(t, parseFlag("true"))
	assert.True(t, parseFlag("1"))
	assert.False(t, parseFlag("false"))
	assert.False(t, parseFlag(""))
	assert.False(t, parseFlag("yes"))
}

func TestFormUpload(t *testing.T) {
	t.Run("reads file", func(t *testing.T) {
		req := multipartRequest(t, http.MethodPost, "/", nil, formFile{"image", "cat.png", []byte("png-bytes")})
		c, _ := newContext(req, "u1")

		up, err := formUpload(c, "image")
		require.NoError(t, err)
		require.NotNil(t, up)
		assert.Equal(t, "cat.png", up.FileName)
		assert.Equal(t, []byte("png-bytes"), up.Data)
	})

	t.Run("missing field", func(t *testing.T) {
		req := multipartRequest(t, http.MethodPost, "/", map[string]string{"title": "A"})
		c, _ := newContext(req, "u1")

		up, err := formUpload(c, "image")
		require.NoError(t, err)
		assert.Nil(t, up)
	})

	t.Run("not multipart", func(t *testing.T) {
		c, _ := newContext(jsonRequest(http.MethodPost, "/", `{}`), "u1")

		up, err := formUpload(c, "image")
		require.NoError(t, err)
		assert.Nil(t, up)
	})
}
