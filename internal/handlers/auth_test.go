package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ukydev/garagelog/internal/auth"
	"github.com/ukydev/garagelog/internal/db"
	"github.com/ukydev/garagelog/internal/middleware"
	"github.com/ukydev/garagelog/internal/models"
)

// MockUserCollection is a mock implementation of UserCollection
type MockUserCollection struct {
	mock.Mock
}

func (m *MockUserCollection) InsertUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserCollection) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) UpdateUser(ctx context.Context, id string, user models.User) error {
	args := m.Called(ctx, id, user)
	return args.Error(0)
}

func (m *MockUserCollection) UpdateLastLogin(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func authFixtures(t *testing.T) (*auth.Service, *MockUserCollection, *AuthHandler, *models.User) {
	t.Helper()
	service := auth.NewService("test-secret", time.Hour)
	users := new(MockUserCollection)
	handler := NewAuthHandler(service, users)

	hash, err := service.HashPassword("valid-password")
	require.NoError(t, err)
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Username:     "garage-owner",
		Email:        "owner@example.com",
		PasswordHash: hash,
		Role:         models.RoleOwner,
		IsActive:     true,
	}
	return service, users, handler, user
}

func postJSON(target string, body interface{}) *http.Request {
	data, _ := json.Marshal(body)
	return httptest.NewRequest(http.MethodPost, target, bytes.NewBuffer(data))
}

func TestLogin_Success(t *testing.T) {
	service, users, handler, user := authFixtures(t)

	users.On("FindUserByUsername", mock.Anything, "garage-owner").Return(user, nil)
	users.On("UpdateLastLogin", mock.Anything, user.ID.Hex()).Return(nil)

	rr := httptest.NewRecorder()
	handler.Login(rr, postJSON("/api/auth/login", models.LoginRequest{
		Username: "garage-owner",
		Password: "valid-password",
	}))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "garage-owner", resp.User.Username)

	claims, err := service.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, claims.Role)
	users.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	_, users, handler, user := authFixtures(t)

	users.On("FindUserByUsername", mock.Anything, "garage-owner").Return(user, nil)

	rr := httptest.NewRecorder()
	handler.Login(rr, postJSON("/api/auth/login", models.LoginRequest{
		Username: "garage-owner",
		Password: "wrong-password",
	}))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	_, users, handler, _ := authFixtures(t)

	users.On("FindUserByUsername", mock.Anything, "nobody").Return(nil, db.ErrNotFound)

	rr := httptest.NewRecorder()
	handler.Login(rr, postJSON("/api/auth/login", models.LoginRequest{
		Username: "nobody",
		Password: "valid-password",
	}))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	_, users, handler, user := authFixtures(t)
	user.IsActive = false

	users.On("FindUserByUsername", mock.Anything, "garage-owner").Return(user, nil)

	rr := httptest.NewRecorder()
	handler.Login(rr, postJSON("/api/auth/login", models.LoginRequest{
		Username: "garage-owner",
		Password: "valid-password",
	}))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRegister_DefaultsToOwnerRole(t *testing.T) {
	_, users, handler, _ := authFixtures(t)

	users.On("FindUserByUsername", mock.Anything, "newuser").Return(nil, db.ErrNotFound)
	users.On("FindUserByEmail", mock.Anything, "new@example.com").Return(nil, db.ErrNotFound)
	users.On("InsertUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Role == models.RoleOwner && u.Username == "newuser"
	})).Return(nil)

	rr := httptest.NewRecorder()
	handler.Register(rr, postJSON("/api/auth/register", models.RegisterRequest{
		Username: "newuser",
		Email:    "new@example.com",
		Password: "long-enough-password",
	}))

	require.Equal(t, http.StatusCreated, rr.Code)
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleOwner, resp.User.Role)
	users.AssertExpectations(t)
}

func TestRegister_RejectsRetiredRoles(t *testing.T) {
	_, users, handler, _ := authFixtures(t)

	for _, role := range []models.Role{"manager", "operator", "superuser"} {
		rr := httptest.NewRecorder()
		handler.Register(rr, postJSON("/api/auth/register", models.RegisterRequest{
			Username: "newuser",
			Email:    "new@example.com",
			Password: "long-enough-password",
			Role:     role,
		}))
		assert.Equal(t, http.StatusBadRequest, rr.Code, "role %s", role)
	}
	users.AssertNotCalled(t, "InsertUser", mock.Anything, mock.Anything)
}

func TestRegister_UsernameConflict(t *testing.T) {
	_, users, handler, user := authFixtures(t)

	users.On("FindUserByUsername", mock.Anything, "garage-owner").Return(user, nil)

	rr := httptest.NewRecorder()
	handler.Register(rr, postJSON("/api/auth/register", models.RegisterRequest{
		Username: "garage-owner",
		Email:    "other@example.com",
		Password: "long-enough-password",
	}))

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestRegister_WeakPassword(t *testing.T) {
	_, _, handler, _ := authFixtures(t)

	rr := httptest.NewRecorder()
	handler.Register(rr, postJSON("/api/auth/register", models.RegisterRequest{
		Username: "newuser",
		Email:    "new@example.com",
		Password: "short",
	}))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func withClaims(req *http.Request, user *models.User) *http.Request {
	claims := &models.Claims{
		UserID:   user.ID.Hex(),
		Username: user.Username,
		Role:     user.Role,
	}
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)
	return req.WithContext(ctx)
}

func TestGetProfile(t *testing.T) {
	_, users, handler, user := authFixtures(t)

	users.On("FindUserByID", mock.Anything, user.ID.Hex()).Return(user, nil)

	req := withClaims(httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil), user)
	rr := httptest.NewRecorder()
	handler.GetProfile(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "garage-owner", got.Username)
}

func TestGetProfile_NoContext(t *testing.T) {
	_, _, handler, _ := authFixtures(t)

	rr := httptest.NewRecorder()
	handler.GetProfile(rr, httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	_, users, handler, user := authFixtures(t)

	users.On("FindUserByID", mock.Anything, user.ID.Hex()).Return(user, nil)

	req := withClaims(postJSON("/api/auth/change-password", map[string]string{
		"current_password": "wrong-password",
		"new_password":     "another-long-password",
	}), user)
	rr := httptest.NewRecorder()
	handler.ChangePassword(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	users.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangePassword_Success(t *testing.T) {
	service, users, handler, user := authFixtures(t)

	users.On("FindUserByID", mock.Anything, user.ID.Hex()).Return(user, nil)
	users.On("UpdateUser", mock.Anything, user.ID.Hex(), mock.MatchedBy(func(u models.User) bool {
		return service.CheckPassword("another-long-password", u.PasswordHash)
	})).Return(nil)

	req := withClaims(postJSON("/api/auth/change-password", map[string]string{
		"current_password": "valid-password",
		"new_password":     "another-long-password",
	}), user)
	rr := httptest.NewRecorder()
	handler.ChangePassword(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	users.AssertExpectations(t)
}
