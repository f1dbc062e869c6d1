package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"notely/internal/auth"
	apperrors "notely/internal/errors"
	"notely/internal/service"
)

// ClaimsContextKey is where the JWT middleware stores *auth.Claims.
const ClaimsContextKey = "user"

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// currentClaims returns the authenticated caller's token claims.
func currentClaims(c echo.Context) (*auth.Claims, error) {
	claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
	if !ok || claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "missing or invalid token",
			Code:  "UNAUTHORIZED",
		})
	}
	return claims, nil
}

// currentUserID returns the authenticated caller's user ID.
func currentUserID(c echo.Context) (string, error) {
	claims, err := currentClaims(c)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// respondError translates a service error into an echo HTTP error.
func respondError(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}

func badRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Error: msg,
		Code:  "INVALID_REQUEST",
	})
}

// formUpload reads an optional multipart file field. It returns nil when the
// field is absent.
func formUpload(c echo.Context, field string) (*service.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, badRequest(fmt.Sprintf("invalid %s upload", field))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}

	return &service.Upload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Data:        data,
	}, nil
}
