package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/models"
	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
)

type subjectRepository interface {
	List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, int, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	SoftDelete(ctx context.Context, id, actorID string) error
}

type subjectGrideRepository interface {
	FindByID(ctx context.Context, id string) (*models.CurriculumGride, error)
	AddSubject(ctx context.Context, grideID, subjectID string) error
	RemoveSubject(ctx context.Context, grideID, subjectID string) error
}

type subjectClassroomCounter interface {
	CountBySubject(ctx context.Context, subjectID string) (int, error)
}

// SubjectService manages subjects and their place in a curriculum gride.
type SubjectService struct {
	repo       subjectRepository
	grides     subjectGrideRepository
	classrooms subjectClassroomCounter
	cache      *CacheService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewSubjectService constructs a SubjectService.
func NewSubjectService(repo subjectRepository, grides subjectGrideRepository, classrooms subjectClassroomCounter, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, grides: grides, classrooms: classrooms, cache: cache, validator: defaultValidator(validate), logger: logger}
}

// List returns paginated subjects.
func (s *SubjectService) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, *models.Pagination, error) {
	filter.Normalize()
	subjects, total, err := cachedList(ctx, s.cache, cacheSubjects, filter, func() ([]models.Subject, int, error) {
		return s.repo.List(ctx, filter)
	})
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list subjects")
	}
	return subjects, filter.Pagination(total), nil
}

// Get returns a subject by ID.
func (s *SubjectService) Get(ctx context.Context, id string) (*models.Subject, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "subject")
	}
	return subject, nil
}

// Create adds a subject and appends it to its gride.
func (s *SubjectService) Create(ctx context.Context, req dto.CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if _, err := s.grides.FindByID(ctx, req.CurriculumGrideID); err != nil {
		return nil, lookupError(err, "curriculum gride")
	}

	subject := &models.Subject{
		Name:              req.Name,
		Description:       req.Description,
		Code:              req.Code,
		Workload:          req.Workload,
		CurriculumGrideID: req.CurriculumGrideID,
	}
	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, appErrors.Internal(err, "failed to create subject")
	}
	if err := s.grides.AddSubject(ctx, subject.CurriculumGrideID, subject.ID); err != nil {
		return nil, appErrors.Internal(err, "failed to link subject to curriculum gride")
	}
	s.cache.Invalidate(ctx, cacheSubjects, cacheCurriculumGrides)
	return subject, nil
}

// Update applies sparse changes, moving the subject between grides when reassigned.
func (s *SubjectService) Update(ctx context.Context, id string, req dto.UpdateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "subject")
	}

	changed := applyField(&subject.Name, req.Name, false)
	changed = applyField(&subject.Description, req.Description, true) || changed
	changed = applyField(&subject.Code, req.Code, false) || changed
	changed = applyField(&subject.Workload, req.Workload, true) || changed

	previousGride := subject.CurriculumGrideID
	if req.CurriculumGrideID != nil && *req.CurriculumGrideID != "" && *req.CurriculumGrideID != previousGride {
		if _, err := s.grides.FindByID(ctx, *req.CurriculumGrideID); err != nil {
			return nil, lookupError(err, "curriculum gride")
		}
		subject.CurriculumGrideID = *req.CurriculumGrideID
		changed = true
	}
	if !changed {
		return subject, nil
	}

	if err := s.repo.Update(ctx, subject); err != nil {
		return nil, appErrors.Internal(err, "failed to update subject")
	}
	if previousGride != subject.CurriculumGrideID {
		if err := moveRef(ctx, s.grides.RemoveSubject, s.grides.AddSubject, previousGride, subject.CurriculumGrideID, subject.ID); err != nil {
			return nil, appErrors.Internal(err, "failed to move subject between curriculum grides")
		}
	}
	s.cache.Invalidate(ctx, cacheSubjects, cacheCurriculumGrides)
	return subject, nil
}

// Delete soft-deletes a subject without live classrooms and pulls it from its gride.
func (s *SubjectService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupError(err, "subject")
	}
	count, err := s.classrooms.CountBySubject(ctx, id)
	if err != nil {
		return appErrors.Internal(err, "failed to count classrooms")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "subject still has classrooms")
	}
	if err := s.grides.RemoveSubject(ctx, subject.CurriculumGrideID, subject.ID); err != nil {
		return appErrors.Internal(err, "failed to unlink subject from curriculum gride")
	}
	if err := s.repo.SoftDelete(ctx, id, actorID(actor)); err != nil {
		return lookupError(err, "subject")
	}
	s.cache.Invalidate(ctx, cacheSubjects, cacheCurriculumGrides)
	return nil
}
