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

type enrollmentRepository interface {
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, int, error)
	FindByID(ctx context.Context, id string) (*models.Enrollment, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Update(ctx context.Context, enrollment *models.Enrollment) error
	SoftDelete(ctx context.Context, id, actorID string) error
	CountOpenByClassroom(ctx context.Context, classroomID string) (int, error)
	ExistsOpen(ctx context.Context, studentID, classroomID, excludeID string) (bool, error)
}

type enrollmentClassroomRepository interface {
	FindByID(ctx context.Context, id string) (*models.Classroom, error)
	AddEnrollment(ctx context.Context, classroomID, enrollmentID string) error
	RemoveEnrollment(ctx context.Context, classroomID, enrollmentID string) error
}

type enrollmentPersonRepository interface {
	FindByID(ctx context.Context, id string) (*models.Person, error)
	AddEnrollment(ctx context.Context, personID, enrollmentID string) error
	RemoveEnrollment(ctx context.Context, personID, enrollmentID string) error
}

// EnrollmentService registers students in classrooms.
type EnrollmentService struct {
	repo       enrollmentRepository
	classrooms enrollmentClassroomRepository
	people     enrollmentPersonRepository
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, classrooms enrollmentClassroomRepository, people enrollmentPersonRepository, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, classrooms: classrooms, people: people, validator: defaultValidator(validate), logger: logger}
}

// List returns paginated enrollments.
func (s *EnrollmentService) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, *models.Pagination, error) {
	filter.Normalize()
	enrollments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list enrollments")
	}
	return enrollments, filter.Pagination(total), nil
}

// Get returns an enrollment by ID.
func (s *EnrollmentService) Get(ctx context.Context, id string) (*models.Enrollment, error) {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "enrollment")
	}
	return enrollment, nil
}

// Create enrolls a student, appending the enrollment to the classroom and the student.
func (s *EnrollmentService) Create(ctx context.Context, req dto.CreateEnrollmentRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	var classroom *models.Classroom
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := requirePerson(gctx, s.people, req.StudentID, "student", models.RoleStudent)
		return err
	})
	g.Go(func() error {
		found, err := s.classrooms.FindByID(gctx, req.ClassroomID)
		if err != nil {
			return lookupError(err, "classroom")
		}
		classroom = found
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{
		StudentID:   req.StudentID,
		ClassroomID: req.ClassroomID,
		Status:      models.EnrollmentStatus(req.Status),
	}
	if enrollment.Status == "" {
		enrollment.Status = models.EnrollmentInProgress
	}
	if err := s.checkSeat(ctx, enrollment, classroom, true); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, appErrors.Internal(err, "failed to create enrollment")
	}

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error { return s.classrooms.AddEnrollment(gctx, enrollment.ClassroomID, enrollment.ID) })
	g.Go(func() error { return s.people.AddEnrollment(gctx, enrollment.StudentID, enrollment.ID) })
	if err := g.Wait(); err != nil {
		return nil, appErrors.Internal(err, "failed to link enrollment")
	}
	return enrollment, nil
}

// Update applies sparse changes, moving the enrollment when student or classroom is reassigned.
func (s *EnrollmentService) Update(ctx context.Context, id string, req dto.UpdateEnrollmentRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "enrollment")
	}
	previous := *enrollment

	changed := applyField(&enrollment.Grade, req.Grade, true)
	changed = applyField(&enrollment.Frequency, req.Frequency, true) || changed
	if req.Status != nil {
		status := models.EnrollmentStatus(*req.Status)
		changed = applyField(&enrollment.Status, &status, false) || changed
	}

	if req.StudentID != nil && *req.StudentID != "" && *req.StudentID != enrollment.StudentID {
		if _, err := requirePerson(ctx, s.people, *req.StudentID, "student", models.RoleStudent); err != nil {
			return nil, err
		}
		enrollment.StudentID = *req.StudentID
		changed = true
	}
	var classroom *models.Classroom
	if req.ClassroomID != nil && *req.ClassroomID != "" && *req.ClassroomID != enrollment.ClassroomID {
		found, err := s.classrooms.FindByID(ctx, *req.ClassroomID)
		if err != nil {
			return nil, lookupError(err, "classroom")
		}
		classroom = found
		enrollment.ClassroomID = found.ID
		changed = true
	}
	if !changed {
		return enrollment, nil
	}

	reopened := previous.Status == models.EnrollmentCanceled && enrollment.Status != models.EnrollmentCanceled
	if classroom != nil || reopened || previous.StudentID != enrollment.StudentID {
		if classroom == nil {
			found, err := s.classrooms.FindByID(ctx, enrollment.ClassroomID)
			if err != nil {
				return nil, lookupError(err, "classroom")
			}
			classroom = found
		}
		takesSeat := reopened || previous.ClassroomID != enrollment.ClassroomID
		if err := s.checkSeat(ctx, enrollment, classroom, takesSeat); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, enrollment); err != nil {
		return nil, appErrors.Internal(err, "failed to update enrollment")
	}

	g, gctx := errgroup.WithContext(ctx)
	if previous.ClassroomID != enrollment.ClassroomID {
		g.Go(func() error {
			return moveRef(gctx, s.classrooms.RemoveEnrollment, s.classrooms.AddEnrollment, previous.ClassroomID, enrollment.ClassroomID, enrollment.ID)
		})
	}
	if previous.StudentID != enrollment.StudentID {
		g.Go(func() error {
			return moveRef(gctx, s.people.RemoveEnrollment, s.people.AddEnrollment, previous.StudentID, enrollment.StudentID, enrollment.ID)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, appErrors.Internal(err, "failed to move enrollment")
	}
	return enrollment, nil
}

// Delete pulls the enrollment from its classroom and student, then soft-deletes it.
func (s *EnrollmentService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupError(err, "enrollment")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.classrooms.RemoveEnrollment(gctx, enrollment.ClassroomID, enrollment.ID) })
	g.Go(func() error { return s.people.RemoveEnrollment(gctx, enrollment.StudentID, enrollment.ID) })
	if err := g.Wait(); err != nil {
		return appErrors.Internal(err, "failed to unlink enrollment")
	}

	if err := s.repo.SoftDelete(ctx, id, actorID(actor)); err != nil {
		return lookupError(err, "enrollment")
	}
	return nil
}

// checkSeat rejects duplicate open enrollments and, when the enrollment takes a new seat, full classrooms.
// Canceled enrollments hold no seat.
func (s *EnrollmentService) checkSeat(ctx context.Context, enrollment *models.Enrollment, classroom *models.Classroom, takesSeat bool) error {
	if enrollment.Status == models.EnrollmentCanceled {
		return nil
	}
	exists, err := s.repo.ExistsOpen(ctx, enrollment.StudentID, classroom.ID, enrollment.ID)
	if err != nil {
		return appErrors.Internal(err, "failed to check enrollment")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "student is already enrolled in this classroom")
	}
	if !takesSeat || classroom.Capacity <= 0 {
		return nil
	}
	occupied, err := s.repo.CountOpenByClassroom(ctx, classroom.ID)
	if err != nil {
		return appErrors.Internal(err, "failed to count enrollments")
	}
	if occupied >= classroom.Capacity {
		return appErrors.Clone(appErrors.ErrConflict, "classroom is full")
	}
	return nil
}
