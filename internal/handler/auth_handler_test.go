package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cs-study-hub/notes-api/internal/dto"
	"github.com/cs-study-hub/notes-api/internal/models"
	appErrors "github.com/cs-study-hub/notes-api/pkg/errors"
	"github.com/cs-study-hub/notes-api/pkg/response"
)

type authServiceMock struct {
	registerResp *models.User
	registerErr  error
	loginResp    *models.User
	loginErr     error
	loginCalled  bool
}

func (m *authServiceMock) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	return m.registerResp, m.registerErr
}

func (m *authServiceMock) Login(ctx context.Context, req dto.LoginRequest) (*models.User, error) {
	m.loginCalled = true
	return m.loginResp, m.loginErr
}

func jsonRequest(t *testing.T, method, path string, payload interface{}) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return w, c
}

func TestLoginSuccess(t *testing.T) {
	mockSvc := &authServiceMock{
		loginResp: &models.User{ID: "u1", UCCMSNumber: "UC123", FullName: "Alice", Role: models.RoleStudent},
	}
	handler := NewAuthHandler(mockSvc)

	w, c := jsonRequest(t, http.MethodPost, "/login", dto.LoginRequest{UCCMSNumber: "UC123", Password: "secret"})
	handler.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	var result dto.LoginResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, response.StatusSuccess, result.Status)
	assert.Equal(t, "u1", result.UserID)
	assert.Equal(t, "UC123", result.UCCMS)
	assert.Equal(t, "Alice", result.Name)
	assert.Equal(t, "student", result.Role)
}

func TestLoginInvalidCredentialsStays200(t *testing.T) {
	mockSvc := &authServiceMock{loginErr: appErrors.ErrInvalidCredentials}
	handler := NewAuthHandler(mockSvc)

	w, c := jsonRequest(t, http.MethodPost, "/login", dto.LoginRequest{UCCMSNumber: "UC123", Password: "nope"})
	handler.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	var failure response.Failure
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &failure))
	assert.Equal(t, response.StatusFailed, failure.Status)
	assert.True(t, mockSvc.loginCalled)
}

func TestLoginMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(&authServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"uccms_number":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Login(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var failure response.Failure
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &failure))
	assert.Equal(t, response.StatusFailed, failure.Status)
}

func TestRegisterSuccess(t *testing.T) {
	mockSvc := &authServiceMock{registerResp: &models.User{ID: "u1"}}
	handler := NewAuthHandler(mockSvc)

	w, c := jsonRequest(t, http.MethodPost, "/register", dto.RegisterRequest{
		UCCMSNumber: "UC123",
		FullName:    "Alice",
		Password:    "secret",
	})
	handler.Register(c)

	require.Equal(t, http.StatusOK, w.Code)
	var result dto.RegisterResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, response.StatusSuccess, result.Status)
	assert.Equal(t, "Registered successfully!", result.Message)
}

func TestRegisterStoreErrorExposesDetail(t *testing.T) {
	storeErr := errors.New(`duplicate key value violates unique constraint "users_uccms_number_key"`)
	mockSvc := &authServiceMock{
		registerErr: appErrors.Wrap(storeErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to register user"),
	}
	handler := NewAuthHandler(mockSvc)

	w, c := jsonRequest(t, http.MethodPost, "/register", dto.RegisterRequest{
		UCCMSNumber: "UC123",
		FullName:    "Alice",
		Password:    "secret",
	})
	handler.Register(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var failure response.Failure
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &failure))
	assert.Equal(t, response.StatusError, failure.Status)
	assert.Contains(t, failure.Detail, "duplicate key")
}
