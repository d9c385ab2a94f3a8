package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/models"
	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
)

type userRepository interface {
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByPersonID(ctx context.Context, personID string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	SoftDelete(ctx context.Context, id, actorID string) error
}

type userPersonRepository interface {
	FindByID(ctx context.Context, id string) (*models.Person, error)
	SetUser(ctx context.Context, personID string, userID *string) error
}

// UserService handles user management workflows.
type UserService struct {
	repo      userRepository
	people    userPersonRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, people userPersonRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, people: people, validator: defaultValidator(validate), logger: logger}
}

// List returns paginated users and pagination metadata.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]models.User, *models.Pagination, error) {
	filter.Normalize()
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list users")
	}
	return users, filter.Pagination(total), nil
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "user")
	}
	return user, nil
}

// Me returns the caller's user and person.
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, *models.Person, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	person, err := s.people.FindByID(ctx, user.PersonID)
	if err != nil {
		return nil, nil, lookupError(err, "person")
	}
	return user, person, nil
}

// Create adds credentials to an existing person.
func (s *UserService) Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	if _, err := s.people.FindByID(ctx, req.PersonID); err != nil {
		return nil, lookupError(err, "person")
	}
	if _, err := s.repo.FindByPersonID(ctx, req.PersonID); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "person already has a user")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Internal(err, "failed to load user")
	}
	if err := s.ensureUsernameFree(ctx, req.Username, ""); err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to hash password")
	}
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         models.UserRole(req.Role),
		PersonID:     req.PersonID,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, appErrors.Internal(err, "failed to create user")
	}
	if err := s.people.SetUser(ctx, req.PersonID, &user.ID); err != nil {
		return nil, appErrors.Internal(err, "failed to link user")
	}
	s.logger.Info("user created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Update changes username, password or role.
func (s *UserService) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "user")
	}

	changed := false
	if req.Username != nil && *req.Username != "" && *req.Username != user.Username {
		if err := s.ensureUsernameFree(ctx, *req.Username, user.ID); err != nil {
			return nil, err
		}
		user.Username = *req.Username
		changed = true
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to hash password")
		}
		user.PasswordHash = hash
		changed = true
	}
	if req.Role != nil {
		role := models.UserRole(*req.Role)
		changed = applyField(&user.Role, &role, false) || changed
	}
	if !changed {
		return user, nil
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, appErrors.Internal(err, "failed to update user")
	}
	return user, nil
}

// Delete soft-deletes a user, clearing its tokens and unlinking its person.
func (s *UserService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupError(err, "user")
	}
	if err := s.repo.SoftDelete(ctx, user.ID, actorID(actor)); err != nil {
		return lookupError(err, "user")
	}
	if err := s.people.SetUser(ctx, user.PersonID, nil); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return appErrors.Internal(err, "failed to unlink person")
	}
	return nil
}

func (s *UserService) ensureUsernameFree(ctx context.Context, username, excludeID string) error {
	taken, err := s.repo.ExistsByUsername(ctx, username, excludeID)
	if err != nil {
		return appErrors.Internal(err, "failed to check username")
	}
	if taken {
		return appErrors.Clone(appErrors.ErrConflict, "username already exists")
	}
	return nil
}
