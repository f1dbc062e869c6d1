package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "notely/internal/errors"
	"notely/internal/service"
)

func TestUserHandler_UploadProfileImage(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("UpdateProfileImage", mock.Anything, "u1", "u1", mock.MatchedBy(func(f *service.Upload) bool {
			return f != nil && f.FileName == "me.png" && string(f.Data) == "png"
		})).Return("https://cdn/profile-pictures/u1_me.png", nil)
		h := NewUserHandler(svc)

		req := multipartRequest(t, http.MethodPost, "/upload/u1", nil, formFile{"profileImage", "me.png", []byte("png")})
		c, rec := newContext(req, "u1")
		c.SetParamNames("userId")
		c.SetParamValues("u1")
		require.NoError(t, h.UploadProfileImage(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"imageUrl":"https://cdn/profile-pictures/u1_me.png"}`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("other user", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("UpdateProfileImage", mock.Anything, "u1", "u2", mock.Anything).Return("", apperrors.ErrForbidden)
		h := NewUserHandler(svc)

		req := multipartRequest(t, http.MethodPost, "/upload/u2", nil, formFile{"profileImage", "me.png", []byte("png")})
		c, _ := newContext(req, "u1")
		c.SetParamNames("userId")
		c.SetParamValues("u2")
		assertHTTPError(t, h.UploadProfileImage(c), http.StatusForbidden, "FORBIDDEN")
	})
}

func TestUserHandler_GetProfileImage(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{"found", "https://cdn/profile-pictures/u1_me.png", nil, http.StatusOK, ""},
		{"not set", "", apperrors.ErrProfileImageNotFound, http.StatusNotFound, "PROFILE_IMAGE_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUserService)
			svc.On("GetProfileImage", mock.Anything, "u1", "u1").Return(tt.url, tt.svcErr)
			h := NewUserHandler(svc)

			c, rec := newContext(httptest.NewRequest(http.MethodGet, "/profile-image/u1", nil), "u1")
			c.SetParamNames("userId")
			c.SetParamValues("u1")
			err := h.GetProfileImage(c)

			if tt.wantCode != "" {
				assertHTTPError(t, err, tt.wantStatus, tt.wantCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, `{"imageUrl":"`+tt.url+`"}`, rec.Body.String())
		})
	}
}
