package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/one-love/onelove/internal/errdef"
	"github.com/one-love/onelove/pkg/model"
	"github.com/one-love/onelove/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandler_Register(t *testing.T) {
	userService := &mockUserService{}
	user := &model.User{ID: 1, Email: "someone@example.org"}
	userService.
		On("Register", mock.Anything, RegisterUserInput{Email: "someone@example.org", Password: "secret"}).
		Return(user, nil)
	handler := NewHandler(userService, &mockTokenService{})

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/users/register", &RegisterRequest{Email: "someone@example.org", Password: "secret"})

	handler.Register(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	userService.AssertExpectations(t)
}

func TestHandler_Register_InvalidEmail(t *testing.T) {
	userService := &mockUserService{}
	handler := NewHandler(userService, &mockTokenService{})

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/users/register", &RegisterRequest{Email: "not-an-email"})

	handler.Register(c)

	require.Len(t, c.Errors, 1)
	require.True(t, errdef.IsUnprocessable(c.Errors[0].Err))
	userService.AssertNotCalled(t, "Register")
}

func TestHandler_Confirm_MalformedToken(t *testing.T) {
	userService := &mockUserService{}
	handler := NewHandler(userService, &mockTokenService{})

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.AddParam("token", "not-a-uuid")
	c.Request = newGet(t, "/users/confirm/not-a-uuid")

	handler.Confirm(c)

	require.Len(t, c.Errors, 1)
	require.True(t, errdef.IsNotFound(c.Errors[0].Err))
	userService.AssertNotCalled(t, "Confirm")
}

func TestHandler_SignIn(t *testing.T) {
	user := &model.User{ID: 123}
	tokenService := &mockTokenService{}
	tokens := &token.Tokens{
		AccessToken:  "accessToken",
		TokenType:    "bearer",
		RefreshToken: "refreshToken",
		ExpiresIn:    312,
	}
	tokenService.
		On("GetTokens", user, "").
		Return(tokens, nil)
	handler := NewHandler(&mockUserService{}, tokenService)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Set("user", user)
	c.Request = newPost(t, "/tokens", nil)

	handler.SignIn(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	var body token.Tokens
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "accessToken", body.AccessToken)
	tokenService.AssertExpectations(t)
}

func TestHandler_RefreshToken(t *testing.T) {
	userService := &mockUserService{}
	user := &model.User{ID: 123}
	userService.
		On("FindById", mock.Anything, uint(123)).
		Return(user, nil)
	tokenService := &mockTokenService{}
	id := uuid.New()
	refreshTokenData := &token.RefreshTokenData{
		SignedToken: "signed-token",
		ID:          id,
		UserId:      123,
	}
	tokenService.
		On("ValidateRefreshToken", mock.Anything, "token").
		Return(refreshTokenData, nil)
	tokens := &token.Tokens{
		AccessToken:  "accessToken",
		TokenType:    "bearer",
		RefreshToken: "refreshToken",
		ExpiresIn:    312,
	}
	tokenService.
		On("GetTokens", user, id.String()).
		Return(tokens, nil)
	handler := NewHandler(userService, tokenService)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/refresh", &RefreshTokenRequest{RefreshToken: "token"})

	handler.RefreshToken(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	tokenService.AssertExpectations(t)
	userService.AssertExpectations(t)
}

func TestHandler_RefreshToken_Invalid(t *testing.T) {
	tokenService := &mockTokenService{}
	tokenService.
		On("ValidateRefreshToken", mock.Anything, "token").
		Return(nil, errdef.NewUnauthorized("invalid refresh token"))
	handler := NewHandler(&mockUserService{}, tokenService)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/refresh", &RefreshTokenRequest{RefreshToken: "token"})

	handler.RefreshToken(c)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestHandler_Delete_CurrentUser(t *testing.T) {
	userService := &mockUserService{}
	handler := NewHandler(userService, &mockTokenService{})

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Set("user", &model.User{ID: 1})
	c.AddParam("id", "1")
	c.Request = newGet(t, "/users/1")

	handler.Delete(c)

	require.Len(t, c.Errors, 1)
	require.True(t, errdef.IsBadRequest(c.Errors[0].Err))
	userService.AssertNotCalled(t, "Delete")
}

func newPost(t *testing.T, path string, jsonBody any) *http.Request {
	body, err := json.Marshal(jsonBody)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	return req
}

func newGet(t *testing.T, path string) *http.Request {
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	return req
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) Register(ctx context.Context, input RegisterUserInput) (*model.User, error) {
	called := m.Called(ctx, input)
	user, _ := called.Get(0).(*model.User)
	return user, called.Error(1)
}

func (m *mockUserService) Confirm(ctx context.Context, token uuid.UUID) (*model.User, error) {
	called := m.Called(ctx, token)
	user, _ := called.Get(0).(*model.User)
	return user, called.Error(1)
}

func (m *mockUserService) FindById(ctx context.Context, id uint) (*model.User, error) {
	called := m.Called(ctx, id)
	user, _ := called.Get(0).(*model.User)
	return user, called.Error(1)
}

func (m *mockUserService) FindAll(ctx context.Context) ([]*model.User, error) {
	panic("implement me")
}

func (m *mockUserService) Update(ctx context.Context, id uint, input UpdateUserInput) (*model.User, error) {
	panic("implement me")
}

func (m *mockUserService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockTokenService struct{ mock.Mock }

func (m *mockTokenService) GetTokens(user *model.User, previousTokenId string) (*token.Tokens, error) {
	called := m.Called(user, previousTokenId)
	tokens, _ := called.Get(0).(*token.Tokens)
	return tokens, called.Error(1)
}

func (m *mockTokenService) ValidateRefreshToken(ctx context.Context, tokenString string) (*token.RefreshTokenData, error) {
	called := m.Called(ctx, tokenString)
	data, _ := called.Get(0).(*token.RefreshTokenData)
	return data, called.Error(1)
}

func (m *mockTokenService) SignOut(userId uint) error {
	return m.Called(userId).Error(0)
}
