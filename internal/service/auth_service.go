package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/models"
	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
)

type authUserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	SetTokens(ctx context.Context, id, accessToken, refreshToken string) error
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenSecret string
	RefreshTokenExpiry time.Duration
	Issuer             string
}

// AuthService issues and verifies the single active token pair of each user.
type AuthService struct {
	repo      authUserRepository
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Issuer == "" {
		config.Issuer = "easycd-api"
	}
	return &AuthService{
		repo:      repo,
		validator: defaultValidator(validate),
		logger:    logger,
		metrics:   metrics,
		config:    config,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// HashPassword returns the bcrypt hash stored for a password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login authenticates a user and replaces its stored token pair.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*models.TokenPair, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.metrics.RecordLogin(false)
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, appErrors.Internal(err, "failed to fetch user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.metrics.RecordLogin(false)
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	pair, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordLogin(true)
	s.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return pair, nil
}

// Refresh exchanges the stored refresh token for a new pair.
func (s *AuthService) Refresh(ctx context.Context, req dto.RefreshRequest) (*models.TokenPair, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	claims := &models.RefreshClaims{}
	if _, err := s.parse(req.RefreshToken, s.config.RefreshTokenSecret, claims); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid refresh token")
	}

	user, err := s.repo.FindByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "associated user no longer exists")
		}
		return nil, appErrors.Internal(err, "failed to load user")
	}
	if user.RefreshToken == "" || user.RefreshToken != req.RefreshToken {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "refresh token has been replaced")
	}

	return s.issue(ctx, user)
}

// Logout clears the stored token pair.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.repo.SetTokens(ctx, userID, "", ""); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFound("user")
		}
		return appErrors.Internal(err, "failed to clear tokens")
	}
	return nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	if _, err := s.parse(tokenString, s.config.AccessTokenSecret, claims); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}
	if claims.ID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// Authenticate validates an access token and checks it is still the user's active session.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.JWTClaims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "associated user no longer exists")
		}
		return nil, appErrors.Internal(err, "failed to load user")
	}
	if user.AccessToken != tokenString {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session has ended")
	}
	claims.Role = user.Role
	claims.PersonID = user.PersonID
	return claims, nil
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*models.TokenPair, error) {
	issuedAt := s.now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.JWTClaims{
		ID:               user.ID,
		Username:         user.Username,
		Role:             user.Role,
		PersonID:         user.PersonID,
		RegisteredClaims: s.registered(user.ID, issuedAt, s.config.AccessTokenExpiry),
	})
	accessToken, err := access.SignedString([]byte(s.config.AccessTokenSecret))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to create access token")
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.RefreshClaims{
		ID:               user.ID,
		RegisteredClaims: s.registered(user.ID, issuedAt, s.config.RefreshTokenExpiry),
	})
	refreshToken, err := refresh.SignedString([]byte(s.config.RefreshTokenSecret))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to create refresh token")
	}

	if err := s.repo.SetTokens(ctx, user.ID, accessToken, refreshToken); err != nil {
		return nil, appErrors.Internal(err, "failed to persist tokens")
	}
	user.AccessToken = accessToken
	user.RefreshToken = refreshToken

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.AccessTokenExpiry.Seconds()),
		User:         user,
	}, nil
}

func (s *AuthService) registered(subject string, issuedAt time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    s.config.Issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		NotBefore: jwt.NewNumericDate(issuedAt),
		// distinct pairs issued in the same second must not collide
		ID: fmt.Sprintf("%s-%d", subject, issuedAt.UnixNano()),
	}
}

func (s *AuthService) parse(tokenString, secret string, claims jwt.Claims) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	return token, nil
}
