package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/models"
)

type complementaryActivityTypeService interface {
	List(ctx context.Context, filter models.ComplementaryActivityTypeFilter) ([]models.ComplementaryActivityType, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.ComplementaryActivityType, error)
	Create(ctx context.Context, req dto.CreateComplementaryActivityTypeRequest) (*models.ComplementaryActivityType, error)
	Update(ctx context.Context, id string, req dto.UpdateComplementaryActivityTypeRequest) (*models.ComplementaryActivityType, error)
	Delete(ctx context.Context, id string, actor *models.JWTClaims) error
}

// ComplementaryActivityTypeHandler handles activity type endpoints.
type ComplementaryActivityTypeHandler struct {
	service complementaryActivityTypeService
}

// NewComplementaryActivityTypeHandler constructs an activity type handler.
func NewComplementaryActivityTypeHandler(svc complementaryActivityTypeService) *ComplementaryActivityTypeHandler {
	return &ComplementaryActivityTypeHandler{service: svc}
}

// List godoc
// @Summary List complementary activity types
// @Tags Complementary Activity Types
// @Produce json
// @Param search query string false "Search keyword"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /complementary-activity-types [get]
func (h *ComplementaryActivityTypeHandler) List(c *gin.Context) {
	filter := models.ComplementaryActivityTypeFilter{Search: searchQuery(c), PageRequest: pageRequest(c)}
	types, pagination, err := h.service.List(c.Request.Context(), filter)
	respondList(c, types, pagination, err)
}

// Get godoc
// @Summary Get complementary activity type by id
// @Tags Complementary Activity Types
// @Produce json
// @Param id path string true "Type ID"
// @Success 200 {object} response.Envelope
// @Router /complementary-activity-types/{id} [get]
func (h *ComplementaryActivityTypeHandler) Get(c *gin.Context) { getOne(c, h.service.Get) }

// Create godoc
// @Summary Create complementary activity type
// @Tags Complementary Activity Types
// @Accept json
// @Produce json
// @Param payload body dto.CreateComplementaryActivityTypeRequest true "Type payload"
// @Success 201 {object} response.Envelope
// @Router /complementary-activity-types [post]
func (h *ComplementaryActivityTypeHandler) Create(c *gin.Context) { createOne(c, h.service.Create) }

// Update godoc
// @Summary Update complementary activity type
// @Tags Complementary Activity Types
// @Accept json
// @Produce json
// @Param id path string true "Type ID"
// @Param payload body dto.UpdateComplementaryActivityTypeRequest true "Type payload"
// @Success 200 {object} response.Envelope
// @Router /complementary-activity-types/{id} [put]
func (h *ComplementaryActivityTypeHandler) Update(c *gin.Context) { updateOne(c, h.service.Update) }

// Delete godoc
// @Summary Delete complementary activity type and its activities
// @Tags Complementary Activity Types
// @Param id path string true "Type ID"
// @Success 204
// @Router /complementary-activity-types/{id} [delete]
func (h *ComplementaryActivityTypeHandler) Delete(c *gin.Context) { deleteOne(c, h.service.Delete) }
