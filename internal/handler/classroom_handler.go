package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/models"
)

type classroomService interface {
	List(ctx context.Context, filter models.ClassroomFilter) ([]models.Classroom, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Classroom, error)
	Create(ctx context.Context, req dto.CreateClassroomRequest) (*models.Classroom, error)
	Update(ctx context.Context, id string, req dto.UpdateClassroomRequest) (*models.Classroom, error)
	Delete(ctx context.Context, id string, actor *models.JWTClaims) error
}

// ClassroomHandler handles classroom endpoints.
type ClassroomHandler struct {
	service classroomService
}

// NewClassroomHandler constructs a classroom handler.
func NewClassroomHandler(svc classroomService) *ClassroomHandler {
	return &ClassroomHandler{service: svc}
}

// List godoc
// @Summary List classrooms
// @Tags Classrooms
// @Produce json
// @Param subject_id query string false "Filter by subject"
// @Param teacher_id query string false "Filter by teacher"
// @Param semester query string false "Filter by semester"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /classrooms [get]
func (h *ClassroomHandler) List(c *gin.Context) {
	filter := models.ClassroomFilter{
		SubjectID:   c.Query("subject_id"),
		TeacherID:   c.Query("teacher_id"),
		Semester:    c.Query("semester"),
		PageRequest: pageRequest(c),
	}
	classrooms, pagination, err := h.service.List(c.Request.Context(), filter)
	respondList(c, classrooms, pagination, err)
}

// Get godoc
// @Summary Get classroom by id
// @Tags Classrooms
// @Produce json
// @Param id path string true "Classroom ID"
// @Success 200 {object} response.Envelope
// @Router /classrooms/{id} [get]
func (h *ClassroomHandler) Get(c *gin.Context) { getOne(c, h.service.Get) }

// Create godoc
// @Summary Create classroom
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param payload body dto.CreateClassroomRequest true "Classroom payload"
// @Success 201 {object} response.Envelope
// @Router /classrooms [post]
func (h *ClassroomHandler) Create(c *gin.Context) { createOne(c, h.service.Create) }

// Update godoc
// @Summary Update classroom
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param id path string true "Classroom ID"
// @Param payload body dto.UpdateClassroomRequest true "Classroom payload"
// @Success 200 {object} response.Envelope
// @Router /classrooms/{id} [put]
func (h *ClassroomHandler) Update(c *gin.Context) { updateOne(c, h.service.Update) }

// Delete godoc
// @Summary Delete classroom and its enrollments
// @Tags Classrooms
// @Param id path string true "Classroom ID"
// @Success 204
// @Router /classrooms/{id} [delete]
func (h *ClassroomHandler) Delete(c *gin.Context) { deleteOne(c, h.service.Delete) }
