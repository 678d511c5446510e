package service

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/cs-study-hub/notes-api/internal/dto"
	"github.com/cs-study-hub/notes-api/internal/models"
	appErrors "github.com/cs-study-hub/notes-api/pkg/errors"
)

type authUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByCredentials(ctx context.Context, uccmsNumber, passwordHash string) (*models.User, error)
}

// AuthService provides registration and login use cases.
type AuthService struct {
	repo      authUserRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{repo: repo, validator: validate, logger: logger}
}

// Register creates a new student account. No uniqueness pre-check: a
// duplicate identifier surfaces as the store's constraint error, which is
// passed through to the caller.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.WrapFrom(appErrors.ErrValidation, err, "invalid register payload")
	}

	user := &models.User{
		UCCMSNumber:   req.UCCMSNumber,
		FullName:      req.FullName,
		PasswordHash:  HashPassword(req.Password),
		Role:          models.RoleStudent,
		AccountStatus: models.AccountApproved,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to register user")
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("uccms", user.UCCMSNumber))
	return user, nil
}

// Login authenticates by looking up the identifier together with the
// password digest. A miss is a business failure that deliberately does
// not reveal whether the identifier or the password was wrong.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.WrapFrom(appErrors.ErrValidation, err, "invalid login payload")
	}

	user, err := s.repo.FindByCredentials(ctx, req.UCCMSNumber, HashPassword(req.Password))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	return user, nil
}

// HashPassword returns the hex-encoded SHA-256 digest of the plaintext.
// The login contract requires a deterministic digest so credentials can
// be matched in a single store lookup.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
