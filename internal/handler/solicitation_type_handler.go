package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/models"
)

type solicitationTypeService interface {
	List(ctx context.Context, filter models.SolicitationTypeFilter) ([]models.SolicitationType, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.SolicitationType, error)
	Create(ctx context.Context, req dto.CreateSolicitationTypeRequest) (*models.SolicitationType, error)
	Update(ctx context.Context, id string, req dto.UpdateSolicitationTypeRequest) (*models.SolicitationType, error)
	Delete(ctx context.Context, id string, actor *models.JWTClaims) error
}

// SolicitationTypeHandler handles solicitation type endpoints.
type SolicitationTypeHandler struct {
	service solicitationTypeService
}

// NewSolicitationTypeHandler constructs a solicitation type handler.
func NewSolicitationTypeHandler(svc solicitationTypeService) *SolicitationTypeHandler {
	return &SolicitationTypeHandler{service: svc}
}

// List godoc
// @Summary List solicitation types
// @Tags Solicitation Types
// @Produce json
// @Param search query string false "Search keyword"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /solicitation-types [get]
func (h *SolicitationTypeHandler) List(c *gin.Context) {
	filter := models.SolicitationTypeFilter{Search: searchQuery(c), PageRequest: pageRequest(c)}
	types, pagination, err := h.service.List(c.Request.Context(), filter)
	respondList(c, types, pagination, err)
}

// Get godoc
// @Summary Get solicitation type by id
// @Tags Solicitation Types
// @Produce json
// @Param id path string true "Type ID"
// @Success 200 {object} response.Envelope
// @Router /solicitation-types/{id} [get]
func (h *SolicitationTypeHandler) Get(c *gin.Context) { getOne(c, h.service.Get) }

// Create godoc
// @Summary Create solicitation type
// @Tags Solicitation Types
// @Accept json
// @Produce json
// @Param payload body dto.CreateSolicitationTypeRequest true "Type payload"
// @Success 201 {object} response.Envelope
// @Router /solicitation-types [post]
func (h *SolicitationTypeHandler) Create(c *gin.Context) { createOne(c, h.service.Create) }

// Update godoc
// @Summary Update solicitation type
// @Tags Solicitation Types
// @Accept json
// @Produce json
// @Param id path string true "Type ID"
// @Param payload body dto.UpdateSolicitationTypeRequest true "Type payload"
// @Success 200 {object} response.Envelope
// @Router /solicitation-types/{id} [put]
func (h *SolicitationTypeHandler) Update(c *gin.Context) { updateOne(c, h.service.Update) }

// Delete godoc
// @Summary Delete solicitation type and its solicitations
// @Tags Solicitation Types
// @Param id path string true "Type ID"
// @Success 204
// @Router /solicitation-types/{id} [delete]
func (h *SolicitationTypeHandler) Delete(c *gin.Context) { deleteOne(c, h.service.Delete) }
