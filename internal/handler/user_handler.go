package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"notely/internal/service"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ProfileImageResponse carries a profile picture URL.
type ProfileImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

// UploadProfileImage godoc
// @Summary Set a user's profile picture
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param profileImage formData file true "Profile picture"
// @Success 200 {object} ImageUploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /upload/{userId} [post]
func (h *UserHandler) UploadProfileImage(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}

	file, err := formUpload(c, "profileImage")
	if err != nil {
		return err
	}

	url, err := h.userService.UpdateProfileImage(c.Request().Context(), actorID, c.Param("userId"), file)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, ImageUploadResponse{Success: true, ImageURL: url})
}

// GetProfileImage godoc
// @Summary Get a user's profile picture URL
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} ProfileImageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /profile-image/{userId} [get]
func (h *UserHandler) GetProfileImage(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}

	url, err := h.userService.GetProfileImage(c.Request().Context(), actorID, c.Param("userId"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, ProfileImageResponse{ImageURL: url})
}
