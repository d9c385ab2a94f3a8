package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/models"
	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
)

type curriculumGrideRepository interface {
	List(ctx context.Context, filter models.CurriculumGrideFilter) ([]models.CurriculumGride, int, error)
	FindByID(ctx context.Context, id string) (*models.CurriculumGride, error)
	Create(ctx context.Context, gride *models.CurriculumGride) error
	Update(ctx context.Context, gride *models.CurriculumGride) error
	SoftDelete(ctx context.Context, id, actorID string) error
}

type courseFinder interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type grideSubjectCounter interface {
	CountByGride(ctx context.Context, grideID string) (int, error)
}

// CurriculumGrideService manages curriculum grides of a course.
type CurriculumGrideService struct {
	repo      curriculumGrideRepository
	courses   courseFinder
	subjects  grideSubjectCounter
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCurriculumGrideService constructs a CurriculumGrideService.
func NewCurriculumGrideService(repo curriculumGrideRepository, courses courseFinder, subjects grideSubjectCounter, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CurriculumGrideService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CurriculumGrideService{repo: repo, courses: courses, subjects: subjects, cache: cache, validator: defaultValidator(validate), logger: logger}
}

// List returns paginated curriculum grides.
func (s *CurriculumGrideService) List(ctx context.Context, filter models.CurriculumGrideFilter) ([]models.CurriculumGride, *models.Pagination, error) {
	filter.Normalize()
	grides, total, err := cachedList(ctx, s.cache, cacheCurriculumGrides, filter, func() ([]models.CurriculumGride, int, error) {
		return s.repo.List(ctx, filter)
	})
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list curriculum grides")
	}
	return grides, filter.Pagination(total), nil
}

// Get returns a curriculum gride by ID.
func (s *CurriculumGrideService) Get(ctx context.Context, id string) (*models.CurriculumGride, error) {
	gride, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "curriculum gride")
	}
	return gride, nil
}

// Create adds a gride to an existing course.
func (s *CurriculumGrideService) Create(ctx context.Context, req dto.CreateCurriculumGrideRequest) (*models.CurriculumGride, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if req.DtEnd.Before(req.DtStart) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "dt_end must not be before dt_start")
	}
	if _, err := s.courses.FindByID(ctx, req.CourseID); err != nil {
		return nil, lookupError(err, "course")
	}

	gride := &models.CurriculumGride{
		Name:        req.Name,
		Description: req.Description,
		CourseID:    req.CourseID,
		Active:      true,
		DtStart:     req.DtStart,
		DtEnd:       req.DtEnd,
	}
	if req.Active != nil {
		gride.Active = *req.Active
	}
	if err := s.repo.Create(ctx, gride); err != nil {
		return nil, appErrors.Internal(err, "failed to create curriculum gride")
	}
	s.cache.Invalidate(ctx, cacheCurriculumGrides)
	return gride, nil
}

// Update applies sparse changes to a gride.
func (s *CurriculumGrideService) Update(ctx context.Context, id string, req dto.UpdateCurriculumGrideRequest) (*models.CurriculumGride, error) {
	gride, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "curriculum gride")
	}

	changed := applyField(&gride.Name, req.Name, false)
	changed = applyField(&gride.Description, req.Description, true) || changed
	changed = applyField(&gride.Active, req.Active, true) || changed
	if req.DtStart != nil && !req.DtStart.IsZero() && !req.DtStart.Equal(gride.DtStart) {
		gride.DtStart = *req.DtStart
		changed = true
	}
	if req.DtEnd != nil && !req.DtEnd.IsZero() && !req.DtEnd.Equal(gride.DtEnd) {
		gride.DtEnd = *req.DtEnd
		changed = true
	}
	if gride.DtEnd.Before(gride.DtStart) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "dt_end must not be before dt_start")
	}
	if req.CourseID != nil && *req.CourseID != "" && *req.CourseID != gride.CourseID {
		if _, err := s.courses.FindByID(ctx, *req.CourseID); err != nil {
			return nil, lookupError(err, "course")
		}
		gride.CourseID = *req.CourseID
		changed = true
	}
	if !changed {
		return gride, nil
	}

	if err := s.repo.Update(ctx, gride); err != nil {
		return nil, appErrors.Internal(err, "failed to update curriculum gride")
	}
	s.cache.Invalidate(ctx, cacheCurriculumGrides)
	return gride, nil
}

// Delete soft-deletes a gride without live subjects.
func (s *CurriculumGrideService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return lookupError(err, "curriculum gride")
	}
	count, err := s.subjects.CountByGride(ctx, id)
	if err != nil {
		return appErrors.Internal(err, "failed to count subjects")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "curriculum gride still has subjects")
	}
	if err := s.repo.SoftDelete(ctx, id, actorID(actor)); err != nil {
		return lookupError(err, "curriculum gride")
	}
	s.cache.Invalidate(ctx, cacheCurriculumGrides)
	return nil
}
