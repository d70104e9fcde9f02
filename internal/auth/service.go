// Package auth implements accounts, credential checks and bearer session tokens.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/morocco-events/backend/internal/i18n"
	"github.com/morocco-events/backend/internal/middleware"
	"github.com/morocco-events/backend/internal/models"
	"github.com/morocco-events/backend/pkg/apperr"
	"github.com/morocco-events/backend/pkg/database"
	"github.com/morocco-events/backend/pkg/utils"
)

// CreateUserInput holds the fields of a new account.
type CreateUserInput struct {
	Name         string `json:"name" binding:"required,max=120"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,pwd"`
	Organization string `json:"organization" binding:"max=200"`
}

// Session is what register and login return.
type Session struct {
	User  models.UserPublic `json:"user"`
	Token string            `json:"token"`
}

// Service implements registration, login, logout and token checks.
type Service struct {
	users    UserRepository
	tokens   *JWTService
	revoked  RevocationStore
	logger   *zap.Logger
	now      func() time.Time
	hashCost int

	// compared against when the email is unknown so both failures cost one bcrypt run
	dummyHash string
}

// NewService creates an auth service. With a nil revoked store logout succeeds
// but tokens stay valid until they expire.
func NewService(users UserRepository, tokens *JWTService, revoked RevocationStore, logger *zap.Logger) *Service {
	s := &Service{
		users:   users,
		tokens:  tokens,
		revoked: revoked,
		logger:  logger,
		now:     time.Now,
	}
	s.SetHashCost(bcrypt.DefaultCost)
	return s
}

// SetHashCost sets the bcrypt cost for new passwords.
func (s *Service) SetHashCost(cost int) {
	s.hashCost = cost
	s.dummyHash, _ = utils.HashPassword("not-a-real-password", cost)
}

// SetClock replaces the time source.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// CreateUser stores a new account with a bcrypt hash. The returned user has no password.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput, role models.Role) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	details := map[string]string{}
	if in.Name == "" {
		details["name"] = "is required"
	}
	if in.Email == "" {
		details["email"] = "is required"
	}
	if len(in.Password) < 6 {
		details["password"] = "must be at least 6 characters"
	}
	if len(details) > 0 {
		return nil, apperr.Validation(i18n.ErrValidation).WithDetails(details)
	}
	if !role.Valid() {
		role = models.RoleUser
	}

	hash, err := utils.HashPassword(in.Password, s.hashCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	u := &models.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		Password:     hash,
		Organization: strings.TrimSpace(in.Organization),
		Role:         role,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, apperr.New(apperr.KindDuplicateEmail, i18n.ErrDuplicateEmail)
		}
		return nil, apperr.Internal(err)
	}
	u.Password = ""
	s.logger.Info("user created", zap.String("user_id", u.ID.String()), zap.String("role", string(u.Role)))
	return u, nil
}

// VerifyCredentials returns the account for email when password matches.
// Unknown email and wrong password fail the same way.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			return nil, apperr.Internal(err)
		}
		utils.CheckPassword(password, s.dummyHash)
		return nil, apperr.New(apperr.KindInvalidCredentials, i18n.ErrInvalidCredentials)
	}
	if !utils.CheckPassword(password, u.Password) {
		return nil, apperr.New(apperr.KindInvalidCredentials, i18n.ErrInvalidCredentials)
	}
	u.Password = ""
	return u, nil
}

// Register creates a user account and signs it in.
func (s *Service) Register(ctx context.Context, in CreateUserInput) (*Session, error) {
	u, err := s.CreateUser(ctx, in, models.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

func (s *Service) issue(u *models.User) (*Session, error) {
	token, _, err := s.tokens.Generate(u.ID, u.Role)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &Session{User: u.ToPublic(), Token: token}, nil
}

// Logout revokes the token id until its expiry.
func (s *Service) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.revoked == nil {
		return nil
	}
	if err := s.revoked.Revoke(ctx, jti, expiresAt.Sub(s.now())); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Authorize validates a bearer token. It satisfies middleware.TokenValidator.
func (s *Service) Authorize(ctx context.Context, token string) (middleware.Identity, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return middleware.Identity{}, apperr.Unauthenticated(i18n.ErrInvalidToken)
	}
	if s.revoked != nil {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return middleware.Identity{}, apperr.Internal(err)
		}
		if revoked {
			return middleware.Identity{}, apperr.Unauthenticated(i18n.ErrInvalidToken)
		}
	}
	return middleware.Identity{
		UserID:    claims.UserID,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Me returns the current snapshot of the caller's account.
func (s *Service) Me(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound(i18n.ErrUserNotFound)
		}
		return nil, apperr.Internal(err)
	}
	u.Password = ""
	return u, nil
}
