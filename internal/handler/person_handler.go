package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/models"
	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
	"github.com/noah-isme/easycd-api/pkg/export"
	"github.com/noah-isme/easycd-api/pkg/response"
)

type personService interface {
	List(ctx context.Context, filter models.PersonFilter) ([]models.Person, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Person, error)
	Create(ctx context.Context, req dto.CreatePersonRequest) (*models.Person, error)
	Update(ctx context.Context, id string, req dto.UpdatePersonRequest) (*models.Person, error)
	Delete(ctx context.Context, id string, actor *models.JWTClaims) error
}

type recordService interface {
	Transcript(ctx context.Context, studentID string, actor *models.JWTClaims) (*models.Transcript, error)
	ExportTranscript(ctx context.Context, studentID string, format export.Format, actor *models.JWTClaims) ([]byte, string, error)
	ComplementaryScore(ctx context.Context, studentID string, actor *models.JWTClaims) (*models.ComplementaryScore, error)
}

// PersonHandler handles people and their academic records.
type PersonHandler struct {
	service personService
	records recordService
}

// NewPersonHandler constructs a person handler.
func NewPersonHandler(svc personService, records recordService) *PersonHandler {
	return &PersonHandler{service: svc, records: records}
}

// List godoc
// @Summary List people
// @Tags People
// @Produce json
// @Param role query string false "Filter by role"
// @Param search query string false "Search name, email or registration"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Param sort_by query string false "Sort column"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /people [get]
func (h *PersonHandler) List(c *gin.Context) {
	filter := models.PersonFilter{Role: models.UserRole(c.Query("role")), Search: searchQuery(c), PageRequest: pageRequest(c)}
	people, pagination, err := h.service.List(c.Request.Context(), filter)
	respondList(c, people, pagination, err)
}

// Get godoc
// @Summary Get person by id
// @Tags People
// @Produce json
// @Param id path string true "Person ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /people/{id} [get]
func (h *PersonHandler) Get(c *gin.Context) { getOne(c, h.service.Get) }

// Create godoc
// @Summary Create person
// @Tags People
// @Accept json
// @Produce json
// @Param payload body dto.CreatePersonRequest true "Person payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /people [post]
func (h *PersonHandler) Create(c *gin.Context) { createOne(c, h.service.Create) }

// Update godoc
// @Summary Update person
// @Tags People
// @Accept json
// @Produce json
// @Param id path string true "Person ID"
// @Param payload body dto.UpdatePersonRequest true "Person payload"
// @Success 200 {object} response.Envelope
// @Router /people/{id} [put]
func (h *PersonHandler) Update(c *gin.Context) { updateOne(c, h.service.Update) }

// Delete godoc
// @Summary Delete person
// @Tags People
// @Param id path string true "Person ID"
// @Success 204
// @Router /people/{id} [delete]
func (h *PersonHandler) Delete(c *gin.Context) { deleteOne(c, h.service.Delete) }

// Transcript godoc
// @Summary Student transcript
// @Description JSON by default; format=csv or format=pdf downloads a file
// @Tags People
// @Produce json
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Student ID"
// @Param format query string false "csv or pdf"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /people/{id}/transcript [get]
func (h *PersonHandler) Transcript(c *gin.Context) {
	actor := claimsFromContext(c)
	raw := c.Query("format")
	if raw == "" {
		transcript, err := h.records.Transcript(c.Request.Context(), c.Param("id"), actor)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, transcript, nil)
		return
	}

	format, err := export.ParseFormat(raw)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}
	payload, filename, err := h.records.ExportTranscript(c.Request.Context(), c.Param("id"), format, actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, format.ContentType(), payload)
}

// ComplementaryScore godoc
// @Summary Student complementary score
// @Tags People
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /people/{id}/complementary-score [get]
func (h *PersonHandler) ComplementaryScore(c *gin.Context) {
	score, err := h.records.ComplementaryScore(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, score, nil)
}
