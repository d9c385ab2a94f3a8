package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/models"
	"github.com/noah-isme/easycd-api/internal/service"
	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
	"github.com/noah-isme/easycd-api/pkg/response"
	"github.com/noah-isme/easycd-api/pkg/storage"
)

type complementaryActivityService interface {
	List(ctx context.Context, filter models.ComplementaryActivityFilter, actor *models.JWTClaims) ([]models.ComplementaryActivity, *models.Pagination, error)
	Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.ComplementaryActivity, error)
	Create(ctx context.Context, req dto.CreateComplementaryActivityRequest, actor *models.JWTClaims) (*models.ComplementaryActivity, error)
	Update(ctx context.Context, id string, req dto.UpdateComplementaryActivityRequest, actor *models.JWTClaims) (*models.ComplementaryActivity, error)
	Review(ctx context.Context, id string, req dto.ReviewComplementaryActivityRequest) (*models.ComplementaryActivity, error)
	Delete(ctx context.Context, id string, actor *models.JWTClaims) error
	UploadEvidence(ctx context.Context, id, filename, contentType string, r io.Reader, actor *models.JWTClaims) (*models.ComplementaryActivity, error)
	EvidenceToken(ctx context.Context, id string, actor *models.JWTClaims) (string, *storage.SignedToken, error)
	OpenEvidence(ctx context.Context, id, token string) (*service.EvidenceFile, error)
}

// ComplementaryActivityHandler handles activity submission, review and evidence endpoints.
type ComplementaryActivityHandler struct {
	service   complementaryActivityService
	apiPrefix string
}

// NewComplementaryActivityHandler constructs an activity handler. apiPrefix is used to build evidence URLs.
func NewComplementaryActivityHandler(svc complementaryActivityService, apiPrefix string) *ComplementaryActivityHandler {
	return &ComplementaryActivityHandler{service: svc, apiPrefix: apiPrefix}
}

// List godoc
// @Summary List complementary activities
// @Description Students only see their own activities
// @Tags Complementary Activities
// @Produce json
// @Param student_id query string false "Filter by student"
// @Param type_id query string false "Filter by type"
// @Param status query string false "Pending, Accepted or Rejected"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /complementary-activities [get]
func (h *ComplementaryActivityHandler) List(c *gin.Context) {
	filter := models.ComplementaryActivityFilter{
		StudentID:   c.Query("student_id"),
		TypeID:      c.Query("type_id"),
		PageRequest: pageRequest(c),
	}
	if raw, ok := c.GetQuery("status"); ok {
		status := models.ActivityStatus(raw)
		if raw == "Pending" {
			status = models.ActivityPending
		}
		filter.Status = &status
	}
	activities, pagination, err := h.service.List(c.Request.Context(), filter, claimsFromContext(c))
	respondList(c, activities, pagination, err)
}

// Get godoc
// @Summary Get complementary activity by id
// @Tags Complementary Activities
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /complementary-activities/{id} [get]
func (h *ComplementaryActivityHandler) Get(c *gin.Context) {
	activity, err := h.service.Get(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, activity, nil)
}

// Create godoc
// @Summary Submit complementary activity
// @Tags Complementary Activities
// @Accept json
// @Produce json
// @Param payload body dto.CreateComplementaryActivityRequest true "Activity payload"
// @Success 201 {object} response.Envelope
// @Router /complementary-activities [post]
func (h *ComplementaryActivityHandler) Create(c *gin.Context) {
	var req dto.CreateComplementaryActivityRequest
	if !bindJSON(c, &req) {
		return
	}
	activity, err := h.service.Create(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, activity)
}

// Update godoc
// @Summary Update complementary activity
// @Tags Complementary Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param payload body dto.UpdateComplementaryActivityRequest true "Activity payload"
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /complementary-activities/{id} [put]
func (h *ComplementaryActivityHandler) Update(c *gin.Context) {
	var req dto.UpdateComplementaryActivityRequest
	if !bindJSON(c, &req) {
		return
	}
	activity, err := h.service.Update(c.Request.Context(), c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, activity, nil)
}

// Review godoc
// @Summary Accept or reject a complementary activity
// @Tags Complementary Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param payload body dto.ReviewComplementaryActivityRequest true "Review payload"
// @Success 200 {object} response.Envelope
// @Router /complementary-activities/{id}/review [put]
func (h *ComplementaryActivityHandler) Review(c *gin.Context) { updateOne(c, h.service.Review) }

// Delete godoc
// @Summary Delete complementary activity
// @Tags Complementary Activities
// @Param id path string true "Activity ID"
// @Success 204
// @Router /complementary-activities/{id} [delete]
func (h *ComplementaryActivityHandler) Delete(c *gin.Context) { deleteOne(c, h.service.Delete) }

// UploadEvidence godoc
// @Summary Upload evidence file
// @Tags Complementary Activities
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Activity ID"
// @Param file formData file true "Evidence file"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /complementary-activities/{id}/evidence [post]
func (h *ComplementaryActivityHandler) UploadEvidence(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.MissingField("file"))
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable file"))
		return
	}
	defer file.Close()

	activity, err := h.service.UploadEvidence(c.Request.Context(), c.Param("id"), header.Filename, header.Header.Get("Content-Type"), file, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, activity, nil)
}

// EvidenceURL godoc
// @Summary Signed evidence download URL
// @Tags Complementary Activities
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /complementary-activities/{id}/evidence/url [get]
func (h *ComplementaryActivityHandler) EvidenceURL(c *gin.Context) {
	id := c.Param("id")
	token, signed, err := h.service.EvidenceToken(c.Request.Context(), id, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	link := fmt.Sprintf("%s/complementary-activities/%s/evidence?token=%s", h.apiPrefix, url.PathEscape(id), url.QueryEscape(token))
	response.JSON(c, http.StatusOK, gin.H{"url": link, "expires_at": signed.ExpiresAt}, nil)
}

// DownloadEvidence godoc
// @Summary Download evidence with a signed token
// @Tags Complementary Activities
// @Produce octet-stream
// @Param id path string true "Activity ID"
// @Param token query string true "Signed token"
// @Success 200
// @Failure 401 {object} response.Envelope
// @Router /complementary-activities/{id}/evidence [get]
func (h *ComplementaryActivityHandler) DownloadEvidence(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.MissingField("token"))
		return
	}
	evidence, err := h.service.OpenEvidence(c.Request.Context(), c.Param("id"), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer evidence.File.Close()

	info, err := evidence.File.Stat()
	if err != nil {
		response.Error(c, appErrors.Internal(err, "failed to read evidence"))
		return
	}
	if evidence.ContentType != "" {
		c.Header("Content-Type", evidence.ContentType)
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", evidence.Name))
	http.ServeContent(c.Writer, c.Request, evidence.Name, info.ModTime(), evidence.File)
}
