package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/models"
	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	SoftDelete(ctx context.Context, id, actorID string) error
}

type courseGrideCounter interface {
	CountByCourse(ctx context.Context, courseID string) (int, error)
}

// CourseService manages courses.
type CourseService struct {
	repo      courseRepository
	grides    courseGrideCounter
	people    personFinder
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(repo courseRepository, grides courseGrideCounter, people personFinder, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, grides: grides, people: people, cache: cache, validator: defaultValidator(validate), logger: logger}
}

// List returns paginated courses.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, *models.Pagination, error) {
	filter.Normalize()
	courses, total, err := cachedList(ctx, s.cache, cacheCourses, filter, func() ([]models.Course, int, error) {
		return s.repo.List(ctx, filter)
	})
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list courses")
	}
	return courses, filter.Pagination(total), nil
}

// Get returns a course by ID.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "course")
	}
	return course, nil
}

// Create adds a course coordinated by a teacher.
func (s *CourseService) Create(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if _, err := requirePerson(ctx, s.people, req.CoordinatorID, "coordinator", models.RoleTeacher); err != nil {
		return nil, err
	}

	course := &models.Course{Name: req.Name, Description: req.Description, CoordinatorID: req.CoordinatorID}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Internal(err, "failed to create course")
	}
	s.cache.Invalidate(ctx, cacheCourses)
	return course, nil
}

// Update applies sparse changes to a course.
func (s *CourseService) Update(ctx context.Context, id string, req dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "course")
	}

	changed := applyField(&course.Name, req.Name, false)
	changed = applyField(&course.Description, req.Description, true) || changed
	if req.CoordinatorID != nil && *req.CoordinatorID != "" && *req.CoordinatorID != course.CoordinatorID {
		if _, err := requirePerson(ctx, s.people, *req.CoordinatorID, "coordinator", models.RoleTeacher); err != nil {
			return nil, err
		}
		course.CoordinatorID = *req.CoordinatorID
		changed = true
	}
	if !changed {
		return course, nil
	}

	if err := s.repo.Update(ctx, course); err != nil {
		return nil, appErrors.Internal(err, "failed to update course")
	}
	s.cache.Invalidate(ctx, cacheCourses)
	return course, nil
}

// Delete soft-deletes a course without live curriculum grides.
func (s *CourseService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return lookupError(err, "course")
	}
	count, err := s.grides.CountByCourse(ctx, id)
	if err != nil {
		return appErrors.Internal(err, "failed to count curriculum grides")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "course still has curriculum grides")
	}
	if err := s.repo.SoftDelete(ctx, id, actorID(actor)); err != nil {
		return lookupError(err, "course")
	}
	s.cache.Invalidate(ctx, cacheCourses)
	return nil
}
