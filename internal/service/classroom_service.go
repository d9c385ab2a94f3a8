package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/models"
	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
)

type classroomRepository interface {
	List(ctx context.Context, filter models.ClassroomFilter) ([]models.Classroom, int, error)
	FindByID(ctx context.Context, id string) (*models.Classroom, error)
	Create(ctx context.Context, classroom *models.Classroom) error
	Update(ctx context.Context, classroom *models.Classroom) error
	SoftDelete(ctx context.Context, id, actorID string) error
}

type classroomSubjectRepository interface {
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	AddClassroom(ctx context.Context, subjectID, classroomID string) error
	RemoveClassroom(ctx context.Context, subjectID, classroomID string) error
}

type classroomEnrollmentLister interface {
	ListIDsByClassroom(ctx context.Context, classroomID string) ([]string, error)
}

// cascadeRemover deletes a child row running the child's own cascade.
type cascadeRemover interface {
	Delete(ctx context.Context, id string, actor *models.JWTClaims) error
}

// ClassroomService manages classrooms of a subject.
type ClassroomService struct {
	repo        classroomRepository
	subjects    classroomSubjectRepository
	people      personFinder
	enrollments classroomEnrollmentLister
	remover     cascadeRemover
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewClassroomService constructs a ClassroomService. remover deletes enrollments when a classroom is removed.
func NewClassroomService(repo classroomRepository, subjects classroomSubjectRepository, people personFinder, enrollments classroomEnrollmentLister, remover cascadeRemover, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ClassroomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomService{
		repo:        repo,
		subjects:    subjects,
		people:      people,
		enrollments: enrollments,
		remover:     remover,
		cache:       cache,
		validator:   defaultValidator(validate),
		logger:      logger,
	}
}

// List returns paginated classrooms.
func (s *ClassroomService) List(ctx context.Context, filter models.ClassroomFilter) ([]models.Classroom, *models.Pagination, error) {
	filter.Normalize()
	classrooms, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list classrooms")
	}
	return classrooms, filter.Pagination(total), nil
}

// Get returns a classroom by ID.
func (s *ClassroomService) Get(ctx context.Context, id string) (*models.Classroom, error) {
	classroom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "classroom")
	}
	return classroom, nil
}

// Create adds a classroom taught by a teacher and appends it to its subject.
func (s *ClassroomService) Create(ctx context.Context, req dto.CreateClassroomRequest) (*models.Classroom, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := s.subjects.FindByID(gctx, req.SubjectID); err != nil {
			return lookupError(err, "subject")
		}
		return nil
	})
	g.Go(func() error {
		_, err := requirePerson(gctx, s.people, req.TeacherID, "teacher", models.RoleTeacher)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	classroom := &models.Classroom{
		Name:      req.Name,
		SubjectID: req.SubjectID,
		TeacherID: req.TeacherID,
		Semester:  req.Semester,
		Capacity:  req.Capacity,
		Schedule:  req.Schedule,
	}
	if err := s.repo.Create(ctx, classroom); err != nil {
		return nil, appErrors.Internal(err, "failed to create classroom")
	}
	if err := s.subjects.AddClassroom(ctx, classroom.SubjectID, classroom.ID); err != nil {
		return nil, appErrors.Internal(err, "failed to link classroom to subject")
	}
	s.cache.Invalidate(ctx, cacheSubjects)
	return classroom, nil
}

// Update applies sparse changes, moving the classroom between subjects when reassigned.
func (s *ClassroomService) Update(ctx context.Context, id string, req dto.UpdateClassroomRequest) (*models.Classroom, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	classroom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "classroom")
	}

	changed := applyField(&classroom.Name, req.Name, false)
	changed = applyField(&classroom.Semester, req.Semester, false) || changed
	changed = applyField(&classroom.Capacity, req.Capacity, true) || changed
	changed = applyField(&classroom.Schedule, req.Schedule, true) || changed

	if req.TeacherID != nil && *req.TeacherID != "" && *req.TeacherID != classroom.TeacherID {
		if _, err := requirePerson(ctx, s.people, *req.TeacherID, "teacher", models.RoleTeacher); err != nil {
			return nil, err
		}
		classroom.TeacherID = *req.TeacherID
		changed = true
	}
	previousSubject := classroom.SubjectID
	if req.SubjectID != nil && *req.SubjectID != "" && *req.SubjectID != previousSubject {
		if _, err := s.subjects.FindByID(ctx, *req.SubjectID); err != nil {
			return nil, lookupError(err, "subject")
		}
		classroom.SubjectID = *req.SubjectID
		changed = true
	}
	if !changed {
		return classroom, nil
	}

	if err := s.repo.Update(ctx, classroom); err != nil {
		return nil, appErrors.Internal(err, "failed to update classroom")
	}
	if previousSubject != classroom.SubjectID {
		if err := moveRef(ctx, s.subjects.RemoveClassroom, s.subjects.AddClassroom, previousSubject, classroom.SubjectID, classroom.ID); err != nil {
			return nil, appErrors.Internal(err, "failed to move classroom between subjects")
		}
		s.cache.Invalidate(ctx, cacheSubjects)
	}
	return classroom, nil
}

// Delete soft-deletes every enrollment of the classroom, then the classroom itself.
func (s *ClassroomService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	classroom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupError(err, "classroom")
	}

	enrollmentIDs, err := s.enrollments.ListIDsByClassroom(ctx, id)
	if err != nil {
		return appErrors.Internal(err, "failed to list classroom enrollments")
	}
	for _, enrollmentID := range enrollmentIDs {
		if err := s.remover.Delete(ctx, enrollmentID, actor); err != nil {
			return err
		}
	}

	if err := s.subjects.RemoveClassroom(ctx, classroom.SubjectID, classroom.ID); err != nil {
		return appErrors.Internal(err, "failed to unlink classroom from subject")
	}
	if err := s.repo.SoftDelete(ctx, id, actorID(actor)); err != nil {
		return lookupError(err, "classroom")
	}
	s.cache.Invalidate(ctx, cacheSubjects)
	s.logger.Info("classroom deleted", zap.String("classroom_id", id), zap.Int("enrollments", len(enrollmentIDs)))
	return nil
}
