package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cs-study-hub/notes-api/internal/dto"
	"github.com/cs-study-hub/notes-api/internal/models"
	appErrors "github.com/cs-study-hub/notes-api/pkg/errors"
	"github.com/cs-study-hub/notes-api/pkg/response"
)

type authService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*models.User, error)
}

// AuthHandler wires the registration and login endpoints to the auth service.
type AuthHandler struct {
	service authService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login godoc
// @Summary Authenticate a student
// @Description Match uccms_number and password against the users table
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Login payload"
// @Success 200 {object} dto.LoginResult
// @Failure 400 {object} response.Failure
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.WrapFrom(appErrors.ErrValidation, err, "invalid login payload"))
		return
	}

	user, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.LoginResult{
		Status: response.StatusSuccess,
		UserID: user.ID,
		UCCMS:  user.UCCMSNumber,
		Name:   user.FullName,
		Role:   string(user.Role),
	})
}

// Register godoc
// @Summary Register a new student account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.RegisterRequest true "Register payload"
// @Success 200 {object} dto.RegisterResult
// @Failure 400 {object} response.Failure
// @Failure 500 {object} response.Failure
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.WrapFrom(appErrors.ErrValidation, err, "invalid register payload"))
		return
	}

	if _, err := h.service.Register(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.RegisterResult{
		Status:  response.StatusSuccess,
		Message: "Registered successfully!",
	})
}
