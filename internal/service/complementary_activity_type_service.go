package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/models"
	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
)

type activityTypeRepository interface {
	List(ctx context.Context, filter models.ComplementaryActivityTypeFilter) ([]models.ComplementaryActivityType, int, error)
	FindByID(ctx context.Context, id string) (*models.ComplementaryActivityType, error)
	Create(ctx context.Context, activityType *models.ComplementaryActivityType) error
	Update(ctx context.Context, activityType *models.ComplementaryActivityType) error
	SoftDelete(ctx context.Context, id, actorID string) error
}

type activityTypeChildren interface {
	ListIDsByType(ctx context.Context, typeID string) ([]string, error)
}

// ComplementaryActivityTypeService manages activity types, the aggregate root of activities.
type ComplementaryActivityTypeService struct {
	repo       activityTypeRepository
	activities activityTypeChildren
	remover    cascadeRemover
	cache      *CacheService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewComplementaryActivityTypeService constructs a ComplementaryActivityTypeService.
func NewComplementaryActivityTypeService(repo activityTypeRepository, activities activityTypeChildren, remover cascadeRemover, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ComplementaryActivityTypeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComplementaryActivityTypeService{repo: repo, activities: activities, remover: remover, cache: cache, validator: defaultValidator(validate), logger: logger}
}

// List returns paginated activity types.
func (s *ComplementaryActivityTypeService) List(ctx context.Context, filter models.ComplementaryActivityTypeFilter) ([]models.ComplementaryActivityType, *models.Pagination, error) {
	filter.Normalize()
	types, total, err := cachedList(ctx, s.cache, cacheActivityTypes, filter, func() ([]models.ComplementaryActivityType, int, error) {
		return s.repo.List(ctx, filter)
	})
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list complementary activity types")
	}
	return types, filter.Pagination(total), nil
}

// Get returns an activity type by ID.
func (s *ComplementaryActivityTypeService) Get(ctx context.Context, id string) (*models.ComplementaryActivityType, error) {
	activityType, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "complementary activity type")
	}
	return activityType, nil
}

// Create adds an activity type.
func (s *ComplementaryActivityTypeService) Create(ctx context.Context, req dto.CreateComplementaryActivityTypeRequest) (*models.ComplementaryActivityType, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	activityType := &models.ComplementaryActivityType{
		Name:        req.Name,
		Description: req.Description,
		Score:       req.Score,
		MaxScore:    req.MaxScore,
	}
	if err := s.repo.Create(ctx, activityType); err != nil {
		return nil, appErrors.Internal(err, "failed to create complementary activity type")
	}
	s.cache.Invalidate(ctx, cacheActivityTypes)
	return activityType, nil
}

// Update applies sparse changes to an activity type.
func (s *ComplementaryActivityTypeService) Update(ctx context.Context, id string, req dto.UpdateComplementaryActivityTypeRequest) (*models.ComplementaryActivityType, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	activityType, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "complementary activity type")
	}

	changed := applyField(&activityType.Name, req.Name, false)
	changed = applyField(&activityType.Description, req.Description, true) || changed
	changed = applyField(&activityType.Score, req.Score, true) || changed
	changed = applyField(&activityType.MaxScore, req.MaxScore, true) || changed
	if !changed {
		return activityType, nil
	}

	if err := s.repo.Update(ctx, activityType); err != nil {
		return nil, appErrors.Internal(err, "failed to update complementary activity type")
	}
	s.cache.Invalidate(ctx, cacheActivityTypes)
	return activityType, nil
}

// Delete removes every activity of the type, then the type itself.
func (s *ComplementaryActivityTypeService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return lookupError(err, "complementary activity type")
	}
	ids, err := s.activities.ListIDsByType(ctx, id)
	if err != nil {
		return appErrors.Internal(err, "failed to list complementary activities")
	}
	for _, activityID := range ids {
		if err := s.remover.Delete(ctx, activityID, actor); err != nil {
			return err
		}
	}
	if err := s.repo.SoftDelete(ctx, id, actorID(actor)); err != nil {
		return lookupError(err, "complementary activity type")
	}
	s.cache.Invalidate(ctx, cacheActivityTypes)
	s.logger.Info("complementary activity type deleted", zap.String("type_id", id), zap.Int("activities", len(ids)))
	return nil
}
