package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/models"
	"github.com/noah-isme/easycd-api/internal/service"
	"github.com/noah-isme/easycd-api/pkg/response"
)

type solicitationService interface {
	List(ctx context.Context, filter models.SolicitationFilter, actor *models.JWTClaims) ([]models.Solicitation, *models.Pagination, error)
	Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.Solicitation, error)
	Create(ctx context.Context, req dto.CreateSolicitationRequest, actor *models.JWTClaims) (*models.Solicitation, error)
	Update(ctx context.Context, id string, req dto.UpdateSolicitationRequest, actor *models.JWTClaims) (*models.Solicitation, error)
	Review(ctx context.Context, id string, reviewer service.Reviewer, req dto.ReviewSolicitationRequest) (*models.Solicitation, error)
	Delete(ctx context.Context, id string, actor *models.JWTClaims) error
}

// SolicitationHandler handles solicitation endpoints.
type SolicitationHandler struct {
	service solicitationService
}

// NewSolicitationHandler constructs a solicitation handler.
func NewSolicitationHandler(svc solicitationService) *SolicitationHandler {
	return &SolicitationHandler{service: svc}
}

// List godoc
// @Summary List solicitations
// @Description Students only see their own solicitations
// @Tags Solicitations
// @Produce json
// @Param student_id query string false "Filter by student"
// @Param type_id query string false "Filter by type"
// @Param status query string false "Pending, Deferred or Undeferred"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /solicitations [get]
func (h *SolicitationHandler) List(c *gin.Context) {
	filter := models.SolicitationFilter{
		StudentID:   c.Query("student_id"),
		TypeID:      c.Query("type_id"),
		Status:      models.SolicitationStatus(c.Query("status")),
		PageRequest: pageRequest(c),
	}
	solicitations, pagination, err := h.service.List(c.Request.Context(), filter, claimsFromContext(c))
	respondList(c, solicitations, pagination, err)
}

// Get godoc
// @Summary Get solicitation by id
// @Tags Solicitations
// @Produce json
// @Param id path string true "Solicitation ID"
// @Success 200 {object} response.Envelope
// @Router /solicitations/{id} [get]
func (h *SolicitationHandler) Get(c *gin.Context) {
	solicitation, err := h.service.Get(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, solicitation, nil)
}

// Create godoc
// @Summary Open solicitation
// @Tags Solicitations
// @Accept json
// @Produce json
// @Param payload body dto.CreateSolicitationRequest true "Solicitation payload"
// @Success 201 {object} response.Envelope
// @Router /solicitations [post]
func (h *SolicitationHandler) Create(c *gin.Context) {
	var req dto.CreateSolicitationRequest
	if !bindJSON(c, &req) {
		return
	}
	solicitation, err := h.service.Create(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, solicitation)
}

// Update godoc
// @Summary Update solicitation
// @Tags Solicitations
// @Accept json
// @Produce json
// @Param id path string true "Solicitation ID"
// @Param payload body dto.UpdateSolicitationRequest true "Solicitation payload"
// @Success 200 {object} response.Envelope
// @Router /solicitations/{id} [put]
func (h *SolicitationHandler) Update(c *gin.Context) {
	var req dto.UpdateSolicitationRequest
	if !bindJSON(c, &req) {
		return
	}
	solicitation, err := h.service.Update(c.Request.Context(), c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, solicitation, nil)
}

// TeacherReview godoc
// @Summary Record the teacher decision
// @Tags Solicitations
// @Accept json
// @Produce json
// @Param id path string true "Solicitation ID"
// @Param payload body dto.ReviewSolicitationRequest true "Review payload"
// @Success 200 {object} response.Envelope
// @Router /solicitations/{id}/teacher-review [put]
func (h *SolicitationHandler) TeacherReview(c *gin.Context) { h.review(c, service.ReviewerTeacher) }

// CoordinatorReview godoc
// @Summary Record the coordinator decision
// @Tags Solicitations
// @Accept json
// @Produce json
// @Param id path string true "Solicitation ID"
// @Param payload body dto.ReviewSolicitationRequest true "Review payload"
// @Success 200 {object} response.Envelope
// @Router /solicitations/{id}/coordinator-review [put]
func (h *SolicitationHandler) CoordinatorReview(c *gin.Context) { h.review(c, service.ReviewerCoordinator) }

func (h *SolicitationHandler) review(c *gin.Context, reviewer service.Reviewer) {
	var req dto.ReviewSolicitationRequest
	if !bindJSON(c, &req) {
		return
	}
	solicitation, err := h.service.Review(c.Request.Context(), c.Param("id"), reviewer, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, solicitation, nil)
}

// Delete godoc
// @Summary Delete solicitation
// @Tags Solicitations
// @Param id path string true "Solicitation ID"
// @Success 204
// @Router /solicitations/{id} [delete]
func (h *SolicitationHandler) Delete(c *gin.Context) { deleteOne(c, h.service.Delete) }
