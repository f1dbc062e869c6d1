package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/mock"

	"notely/internal/auth"
	"notely/internal/model"
	"notely/internal/service"
)

type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) Create(ctx context.Context, actorID string, in service.NoteInput) (*model.Note, error) {
	args := m.Called(ctx, actorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteService) Update(ctx context.Context, actorID, noteID string, in service.NoteInput) (*model.Note, error) {
	args := m.Called(ctx, actorID, noteID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteService) Delete(ctx context.Context, actorID, noteID string) error {
	args := m.Called(ctx, actorID, noteID)
	return args.Error(0)
}

func (m *MockNoteService) List(ctx context.Context, actorID string, q service.ListQuery) ([]model.Note, error) {
	args := m.Called(ctx, actorID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockNoteService) ToggleFavorite(ctx context.Context, actorID, ownerID, noteID string) (*model.Note, error) {
	args := m.Called(ctx, actorID, ownerID, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteService) AttachImage(ctx context.Context, actorID, noteID string, file *service.Upload) (*model.Note, error) {
	args := m.Called(ctx, actorID, noteID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteService) AttachAudio(ctx context.Context, actorID, noteID string, file *service.Upload) (*model.Note, error) {
	args := m.Called(ctx, actorID, noteID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*service.SignInResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SignInResult), args.Error(1)
}

func (m *MockAuthService) SignOut(ctx context.Context, claims *auth.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

func (m *MockAuthService) UpdatePassword(ctx context.Context, actorID, userID, newPassword string) error {
	args := m.Called(ctx, actorID, userID, newPassword)
	return args.Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) UpdateProfileImage(ctx context.Context, actorID, userID string, file *service.Upload) (string, error) {
	args := m.Called(ctx, actorID, userID, file)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) GetProfileImage(ctx context.Context, actorID, userID string) (string, error) {
	args := m.Called(ctx, actorID, userID)
	return args.String(0), args.Error(1)
}

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.v.Struct(i)
}

func strPtr(s string) *string {
	return &s
}


func boolPtr(b bool) *bool {
	return &b
}
