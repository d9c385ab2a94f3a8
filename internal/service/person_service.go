package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/models"
	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
)

type personRepository interface {
	List(ctx context.Context, filter models.PersonFilter) ([]models.Person, int, error)
	FindByID(ctx context.Context, id string) (*models.Person, error)
	Create(ctx context.Context, person *models.Person) error
	Update(ctx context.Context, person *models.Person) error
	SetUser(ctx context.Context, personID string, userID *string) error
	SoftDelete(ctx context.Context, id, actorID string) error
}

type personUserRepository interface {
	FindByPersonID(ctx context.Context, personID string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	SoftDelete(ctx context.Context, id, actorID string) error
}

type personCourseCounter interface {
	CountByCoordinator(ctx context.Context, personID string) (int, error)
}

type personClassroomCounter interface {
	CountByTeacher(ctx context.Context, personID string) (int, error)
}

// PersonService manages people and the user credentials linked to them.
type PersonService struct {
	people     personRepository
	users      personUserRepository
	courses    personCourseCounter
	classrooms personClassroomCounter
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewPersonService constructs a PersonService.
func NewPersonService(people personRepository, users personUserRepository, courses personCourseCounter, classrooms personClassroomCounter, validate *validator.Validate, logger *zap.Logger) *PersonService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersonService{
		people:     people,
		users:      users,
		courses:    courses,
		classrooms: classrooms,
		validator:  defaultValidator(validate),
		logger:     logger,
	}
}

// List returns paginated people.
func (s *PersonService) List(ctx context.Context, filter models.PersonFilter) ([]models.Person, *models.Pagination, error) {
	filter.Normalize()
	people, total, err := s.people.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list people")
	}
	return people, filter.Pagination(total), nil
}

// Get returns a person by ID.
func (s *PersonService) Get(ctx context.Context, id string) (*models.Person, error) {
	person, err := s.people.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "person")
	}
	return person, nil
}

// Create registers a person and, when credentials are given, its user.
func (s *PersonService) Create(ctx context.Context, req dto.CreatePersonRequest) (*models.Person, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	if req.User != nil {
		taken, err := s.users.ExistsByUsername(ctx, req.User.Username, "")
		if err != nil {
			return nil, appErrors.Internal(err, "failed to check username")
		}
		if taken {
			return nil, appErrors.Clone(appErrors.ErrConflict, "username already exists")
		}
	}

	person := &models.Person{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Registration: req.Registration,
		Phone:        req.Phone,
		BirthDate:    req.BirthDate,
	}
	if err := s.people.Create(ctx, person); err != nil {
		return nil, appErrors.Internal(err, "failed to create person")
	}

	if req.User == nil {
		return person, nil
	}

	hash, err := HashPassword(req.User.Password)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to hash password")
	}
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     req.User.Username,
		PasswordHash: hash,
		Role:         models.UserRole(req.User.Role),
		PersonID:     person.ID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, appErrors.Internal(err, "failed to create user")
	}
	if err := s.people.SetUser(ctx, person.ID, &user.ID); err != nil {
		return nil, appErrors.Internal(err, "failed to link user")
	}
	person.UserID = &user.ID
	person.Role = user.Role
	return person, nil
}

// Update applies sparse changes to a person.
func (s *PersonService) Update(ctx context.Context, id string, req dto.UpdatePersonRequest) (*models.Person, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	person, err := s.people.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "person")
	}

	changed := applyField(&person.Name, req.Name, false)
	changed = applyField(&person.Email, req.Email, false) || changed
	changed = applyField(&person.Registration, req.Registration, false) || changed
	changed = applyField(&person.Phone, req.Phone, true) || changed
	if req.BirthDate != nil && (person.BirthDate == nil || !person.BirthDate.Equal(*req.BirthDate)) {
		person.BirthDate = req.BirthDate
		changed = true
	}
	if !changed {
		return person, nil
	}

	if err := s.people.Update(ctx, person); err != nil {
		return nil, appErrors.Internal(err, "failed to update person")
	}
	return person, nil
}

// Delete soft-deletes a person and its user. It refuses while the person is still referenced.
func (s *PersonService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	person, err := s.people.FindByID(ctx, id)
	if err != nil {
		return lookupError(err, "person")
	}
	if err := s.ensureUnreferenced(ctx, person); err != nil {
		return err
	}

	user, err := s.users.FindByPersonID(ctx, person.ID)
	switch {
	case err == nil:
		if err := s.users.SoftDelete(ctx, user.ID, actorID(actor)); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return appErrors.Internal(err, "failed to delete user")
		}
	case !errors.Is(err, sql.ErrNoRows):
		return appErrors.Internal(err, "failed to load user")
	}

	if err := s.people.SoftDelete(ctx, person.ID, actorID(actor)); err != nil {
		return lookupError(err, "person")
	}
	s.logger.Info("person deleted", zap.String("person_id", person.ID), zap.String("actor_id", actorID(actor)))
	return nil
}

func (s *PersonService) ensureUnreferenced(ctx context.Context, person *models.Person) error {
	switch {
	case len(person.Enrollments) > 0:
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "person still has enrollments")
	case len(person.ComplementaryActivities) > 0:
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "person still has complementary activities")
	case len(person.Solicitations) > 0:
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "person still has solicitations")
	}

	var courses, classrooms int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		courses, err = s.courses.CountByCoordinator(gctx, person.ID)
		return err
	})
	g.Go(func() (err error) {
		classrooms, err = s.classrooms.CountByTeacher(gctx, person.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return appErrors.Internal(err, "failed to count person references")
	}
	if courses > 0 {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "person still coordinates courses")
	}
	if classrooms > 0 {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "person still teaches classrooms")
	}
	return nil
}
