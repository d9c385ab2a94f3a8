package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/models"
)

type curriculumGrideService interface {
	List(ctx context.Context, filter models.CurriculumGrideFilter) ([]models.CurriculumGride, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.CurriculumGride, error)
	Create(ctx context.Context, req dto.CreateCurriculumGrideRequest) (*models.CurriculumGride, error)
	Update(ctx context.Context, id string, req dto.UpdateCurriculumGrideRequest) (*models.CurriculumGride, error)
	Delete(ctx context.Context, id string, actor *models.JWTClaims) error
}

// CurriculumGrideHandler handles curriculum gride endpoints.
type CurriculumGrideHandler struct {
	service curriculumGrideService
}

// NewCurriculumGrideHandler constructs a curriculum gride handler.
func NewCurriculumGrideHandler(svc curriculumGrideService) *CurriculumGrideHandler {
	return &CurriculumGrideHandler{service: svc}
}

// List godoc
// @Summary List curriculum grides
// @Tags Curriculum Grides
// @Produce json
// @Param course_id query string false "Filter by course"
// @Param active query bool false "Filter by active flag"
// @Param search query string false "Search keyword"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /curriculum-grides [get]
func (h *CurriculumGrideHandler) List(c *gin.Context) {
	filter := models.CurriculumGrideFilter{
		CourseID:    c.Query("course_id"),
		Active:      optionalBool(c, "active"),
		Search:      searchQuery(c),
		PageRequest: pageRequest(c),
	}
	grides, pagination, err := h.service.List(c.Request.Context(), filter)
	respondList(c, grides, pagination, err)
}

// Get godoc
// @Summary Get curriculum gride by id
// @Tags Curriculum Grides
// @Produce json
// @Param id path string true "Curriculum gride ID"
// @Success 200 {object} response.Envelope
// @Router /curriculum-grides/{id} [get]
func (h *CurriculumGrideHandler) Get(c *gin.Context) { getOne(c, h.service.Get) }

// Create godoc
// @Summary Create curriculum gride
// @Tags Curriculum Grides
// @Accept json
// @Produce json
// @Param payload body dto.CreateCurriculumGrideRequest true "Curriculum gride payload"
// @Success 201 {object} response.Envelope
// @Router /curriculum-grides [post]
func (h *CurriculumGrideHandler) Create(c *gin.Context) { createOne(c, h.service.Create) }

// Update godoc
// @Summary Update curriculum gride
// @Tags Curriculum Grides
// @Accept json
// @Produce json
// @Param id path string true "Curriculum gride ID"
// @Param payload body dto.UpdateCurriculumGrideRequest true "Curriculum gride payload"
// @Success 200 {object} response.Envelope
// @Router /curriculum-grides/{id} [put]
func (h *CurriculumGrideHandler) Update(c *gin.Context) { updateOne(c, h.service.Update) }

// Delete godoc
// @Summary Delete curriculum gride
// @Tags Curriculum Grides
// @Param id path string true "Curriculum gride ID"
// @Success 204
// @Failure 412 {object} response.Envelope
// @Router /curriculum-grides/{id} [delete]
func (h *CurriculumGrideHandler) Delete(c *gin.Context) { deleteOne(c, h.service.Delete) }
