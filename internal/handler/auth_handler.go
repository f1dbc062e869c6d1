package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "notely/internal/errors"
	"notely/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// CredentialsRequest is the body of signup and signin.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest is the body of a password change.
type UpdatePasswordRequest struct {
	UserID      string `json:"userId" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// SignUp godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	if _, err := h.authService.SignUp(c.Request().Context(), req.Email, req.Password); err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "User created"})
}

// SignIn godoc
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 200 {object} service.SignInResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return respondError(apperrors.ErrInvalidCredentials)
	}

	result, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, result)
}

// SignOut godoc
// @Summary Revoke the current token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	if err := h.authService.SignOut(c.Request().Context(), claims); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Signed out"})
}

// UpdatePassword godoc
// @Summary Change the caller's password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdatePasswordRequest true "New password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /update-password [post]
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	if err := h.authService.UpdatePassword(c.Request().Context(), actorID, req.UserID, req.NewPassword); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password updated"})
}
