package service

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/models"
	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
)

type solicitationRepository interface {
	List(ctx context.Context, filter models.SolicitationFilter) ([]models.Solicitation, int, error)
	FindByID(ctx context.Context, id string) (*models.Solicitation, error)
	Create(ctx context.Context, solicitation *models.Solicitation) error
	Update(ctx context.Context, solicitation *models.Solicitation) error
	SoftDelete(ctx context.Context, id, actorID string) error
}

type solicitationTypeRefs interface {
	FindByID(ctx context.Context, id string) (*models.SolicitationType, error)
	AddSolicitation(ctx context.Context, typeID, solicitationID string) error
	RemoveSolicitation(ctx context.Context, typeID, solicitationID string) error
}

type solicitationPersonRefs interface {
	FindByID(ctx context.Context, id string) (*models.Person, error)
	AddSolicitation(ctx context.Context, personID, solicitationID string) error
	RemoveSolicitation(ctx context.Context, personID, solicitationID string) error
}

// Reviewer identifies which approval a review sets.
type Reviewer string

const (
	ReviewerTeacher     Reviewer = "teacher"
	ReviewerCoordinator Reviewer = "coordinator"
)

// SolicitationService manages student solicitations and their two-step review.
type SolicitationService struct {
	repo      solicitationRepository
	types     solicitationTypeRefs
	people    solicitationPersonRefs
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSolicitationService constructs a SolicitationService.
func NewSolicitationService(repo solicitationRepository, types solicitationTypeRefs, people solicitationPersonRefs, validate *validator.Validate, logger *zap.Logger) *SolicitationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SolicitationService{repo: repo, types: types, people: people, validator: defaultValidator(validate), logger: logger}
}

// List returns paginated solicitations. Students only see their own.
func (s *SolicitationService) List(ctx context.Context, filter models.SolicitationFilter, actor *models.JWTClaims) ([]models.Solicitation, *models.Pagination, error) {
	if actor != nil && actor.Role == models.RoleStudent {
		filter.StudentID = actor.PersonID
	}
	filter.Normalize()
	solicitations, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list solicitations")
	}
	return solicitations, filter.Pagination(total), nil
}

// Get returns a solicitation by ID.
func (s *SolicitationService) Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.Solicitation, error) {
	solicitation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "solicitation")
	}
	if err := ownedBy(actor, solicitation.StudentID); err != nil {
		return nil, err
	}
	return solicitation, nil
}

// Create opens a pending solicitation and appends it to its type and student.
func (s *SolicitationService) Create(ctx context.Context, req dto.CreateSolicitationRequest, actor *models.JWTClaims) (*models.Solicitation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	studentID, err := resolveStudent(actor, req.StudentID)
	if err != nil {
		return nil, err
	}
	meta, err := metaObject(req.Meta)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := s.types.FindByID(gctx, req.TypeID); err != nil {
			return lookupError(err, "solicitation type")
		}
		return nil
	})
	g.Go(func() error {
		_, err := requirePerson(gctx, s.people, studentID, "student", models.RoleStudent)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	solicitation := &models.Solicitation{TypeID: req.TypeID, StudentID: studentID, Meta: meta}
	solicitation.DeriveStatus()
	if err := s.repo.Create(ctx, solicitation); err != nil {
		return nil, appErrors.Internal(err, "failed to create solicitation")
	}

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error { return s.types.AddSolicitation(gctx, solicitation.TypeID, solicitation.ID) })
	g.Go(func() error { return s.people.AddSolicitation(gctx, solicitation.StudentID, solicitation.ID) })
	if err := g.Wait(); err != nil {
		return nil, appErrors.Internal(err, "failed to link solicitation")
	}
	return solicitation, nil
}

// Update changes the type or meta of a solicitation. Students may not edit it once reviewed.
func (s *SolicitationService) Update(ctx context.Context, id string, req dto.UpdateSolicitationRequest, actor *models.JWTClaims) (*models.Solicitation, error) {
	solicitation, err := s.Get(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if actor != nil && actor.Role == models.RoleStudent && solicitation.Reviewed() {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "solicitation has already been reviewed")
	}

	changed := false
	if len(req.Meta) > 0 {
		meta, err := metaObject(req.Meta)
		if err != nil {
			return nil, err
		}
		solicitation.Meta = meta
		changed = true
	}
	previousType := solicitation.TypeID
	if req.TypeID != nil && *req.TypeID != "" && *req.TypeID != previousType {
		if _, err := s.types.FindByID(ctx, *req.TypeID); err != nil {
			return nil, lookupError(err, "solicitation type")
		}
		solicitation.TypeID = *req.TypeID
		changed = true
	}
	if !changed {
		return solicitation, nil
	}

	if err := s.repo.Update(ctx, solicitation); err != nil {
		return nil, appErrors.Internal(err, "failed to update solicitation")
	}
	if previousType != solicitation.TypeID {
		if err := moveRef(ctx, s.types.RemoveSolicitation, s.types.AddSolicitation, previousType, solicitation.TypeID, solicitation.ID); err != nil {
			return nil, appErrors.Internal(err, "failed to move solicitation between types")
		}
	}
	return solicitation, nil
}

// Review records a teacher or coordinator decision and re-derives the status.
func (s *SolicitationService) Review(ctx context.Context, id string, reviewer Reviewer, req dto.ReviewSolicitationRequest) (*models.Solicitation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	solicitation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "solicitation")
	}

	approved := *req.Approved
	switch reviewer {
	case ReviewerTeacher:
		solicitation.TeacherApproval = &approved
		solicitation.TeacherNotes = req.Notes
	case ReviewerCoordinator:
		solicitation.CoordinatorApproval = &approved
		solicitation.CoordinatorNotes = req.Notes
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown reviewer")
	}
	solicitation.DeriveStatus()

	if err := s.repo.Update(ctx, solicitation); err != nil {
		return nil, appErrors.Internal(err, "failed to review solicitation")
	}
	s.logger.Info("solicitation reviewed",
		zap.String("solicitation_id", id),
		zap.String("reviewer", string(reviewer)),
		zap.String("status", string(solicitation.Status)))
	return solicitation, nil
}

// Delete pulls the solicitation from its type and student, then soft-deletes it.
func (s *SolicitationService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	solicitation, err := s.Get(ctx, id, actor)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.types.RemoveSolicitation(gctx, solicitation.TypeID, solicitation.ID) })
	g.Go(func() error { return s.people.RemoveSolicitation(gctx, solicitation.StudentID, solicitation.ID) })
	if err := g.Wait(); err != nil {
		return appErrors.Internal(err, "failed to unlink solicitation")
	}

	if err := s.repo.SoftDelete(ctx, id, actorID(actor)); err != nil {
		return lookupError(err, "solicitation")
	}
	return nil
}

// metaObject accepts an absent meta as {} and rejects anything but a JSON object.
func metaObject(raw json.RawMessage) (types.JSONText, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return types.JSONText("{}"), nil
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "meta must be a JSON object")
	}
	return types.JSONText(raw), nil
}
