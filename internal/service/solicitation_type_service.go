package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/models"
	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
)

type solicitationTypeRepository interface {
	List(ctx context.Context, filter models.SolicitationTypeFilter) ([]models.SolicitationType, int, error)
	FindByID(ctx context.Context, id string) (*models.SolicitationType, error)
	Create(ctx context.Context, solicitationType *models.SolicitationType) error
	Update(ctx context.Context, solicitationType *models.SolicitationType) error
	SoftDelete(ctx context.Context, id, actorID string) error
}

type solicitationTypeChildren interface {
	ListIDsByType(ctx context.Context, typeID string) ([]string, error)
}

// SolicitationTypeService manages solicitation types. Deleting a type deletes its solicitations.
type SolicitationTypeService struct {
	repo          solicitationTypeRepository
	solicitations solicitationTypeChildren
	remover       cascadeRemover
	cache         *CacheService
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewSolicitationTypeService constructs a SolicitationTypeService.
func NewSolicitationTypeService(repo solicitationTypeRepository, solicitations solicitationTypeChildren, remover cascadeRemover, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *SolicitationTypeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SolicitationTypeService{
		repo:          repo,
		solicitations: solicitations,
		remover:       remover,
		cache:         cache,
		validator:     defaultValidator(validate),
		logger:        logger,
	}
}

// List returns paginated solicitation types.
func (s *SolicitationTypeService) List(ctx context.Context, filter models.SolicitationTypeFilter) ([]models.SolicitationType, *models.Pagination, error) {
	filter.Normalize()
	types, total, err := cachedList(ctx, s.cache, cacheSolicitationTypes, filter, func() ([]models.SolicitationType, int, error) {
		return s.repo.List(ctx, filter)
	})
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list solicitation types")
	}
	return types, filter.Pagination(total), nil
}

// Get returns a solicitation type by ID.
func (s *SolicitationTypeService) Get(ctx context.Context, id string) (*models.SolicitationType, error) {
	solicitationType, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "solicitation type")
	}
	return solicitationType, nil
}

// Create adds a solicitation type.
func (s *SolicitationTypeService) Create(ctx context.Context, req dto.CreateSolicitationTypeRequest) (*models.SolicitationType, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	solicitationType := &models.SolicitationType{Name: req.Name, Description: req.Description}
	if err := s.repo.Create(ctx, solicitationType); err != nil {
		return nil, appErrors.Internal(err, "failed to create solicitation type")
	}
	s.cache.Invalidate(ctx, cacheSolicitationTypes)
	return solicitationType, nil
}

// Update renames or re-describes a solicitation type.
func (s *SolicitationTypeService) Update(ctx context.Context, id string, req dto.UpdateSolicitationTypeRequest) (*models.SolicitationType, error) {
	solicitationType, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "solicitation type")
	}
	changed := applyField(&solicitationType.Name, req.Name, false)
	changed = applyField(&solicitationType.Description, req.Description, true) || changed
	if !changed {
		return solicitationType, nil
	}
	if err := s.repo.Update(ctx, solicitationType); err != nil {
		return nil, appErrors.Internal(err, "failed to update solicitation type")
	}
	s.cache.Invalidate(ctx, cacheSolicitationTypes)
	return solicitationType, nil
}

// Delete removes every solicitation of the type, then the type itself.
func (s *SolicitationTypeService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return lookupError(err, "solicitation type")
	}
	ids, err := s.solicitations.ListIDsByType(ctx, id)
	if err != nil {
		return appErrors.Internal(err, "failed to list solicitations")
	}
	for _, solicitationID := range ids {
		if err := s.remover.Delete(ctx, solicitationID, actor); err != nil {
			return err
		}
	}
	if err := s.repo.SoftDelete(ctx, id, actorID(actor)); err != nil {
		return lookupError(err, "solicitation type")
	}
	s.cache.Invalidate(ctx, cacheSolicitationTypes)
	return nil
}
