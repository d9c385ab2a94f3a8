package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/middleware"
	"github.com/noah-isme/easycd-api/internal/models"
	"github.com/noah-isme/easycd-api/internal/service"
	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
	"github.com/noah-isme/easycd-api/pkg/storage"
)

type activityServiceStub struct {
	filter       models.ComplementaryActivityFilter
	uploadName   string
	uploadType   string
	uploadBody   string
	evidencePath string
}

func (s *activityServiceStub) List(_ context.Context, filter models.ComplementaryActivityFilter, _ *models.JWTClaims) ([]models.ComplementaryActivity, *models.Pagination, error) {
	s.filter = filter
	return []models.ComplementaryActivity{{ID: "a-1"}}, &models.Pagination{Page: 1, PageSize: 20, TotalCount: 1}, nil
}

func (s *activityServiceStub) Get(_ context.Context, id string, _ *models.JWTClaims) (*models.ComplementaryActivity, error) {
	return &models.ComplementaryActivity{ID: id}, nil
}

func (s *activityServiceStub) Create(_ context.Context, req dto.CreateComplementaryActivityRequest, actor *models.JWTClaims) (*models.ComplementaryActivity, error) {
	return &models.ComplementaryActivity{ID: "a-1", TypeID: req.TypeID, StudentID: actor.PersonID}, nil
}

func (s *activityServiceStub) Update(_ context.Context, id string, _ dto.UpdateComplementaryActivityRequest, _ *models.JWTClaims) (*models.ComplementaryActivity, error) {
	return &models.ComplementaryActivity{ID: id}, nil
}

func (s *activityServiceStub) Review(_ context.Context, id string, req dto.ReviewComplementaryActivityRequest) (*models.ComplementaryActivity, error) {
	return &models.ComplementaryActivity{ID: id, Status: models.ActivityStatus(req.Status)}, nil
}

func (s *activityServiceStub) Delete(_ context.Context, _ string, _ *models.JWTClaims) error {
	return nil
}

func (s *activityServiceStub) UploadEvidence(_ context.Context, id, filename, contentType string, r io.Reader, _ *models.JWTClaims) (*models.ComplementaryActivity, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s.uploadName, s.uploadType, s.uploadBody = filename, contentType, string(body)
	return &models.ComplementaryActivity{ID: id, EvidenceMIME: contentType}, nil
}

func (s *activityServiceStub) EvidenceToken(_ context.Context, id string, _ *models.JWTClaims) (string, *storage.SignedToken, error) {
	return "tok/en", &storage.SignedToken{ResourceID: id, ExpiresAt: time.Unix(1700000000, 0).UTC()}, nil
}

func (s *activityServiceStub) OpenEvidence(_ context.Context, id, token string) (*service.EvidenceFile, error) {
	if token != "valid" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid download token")
	}
	file, err := os.Open(s.evidencePath)
	if err != nil {
		return nil, err
	}
	return &service.EvidenceFile{File: file, ContentType: "application/pdf", Name: "proof.pdf"}, nil
}

func TestActivityHandlerListStatusFilter(t *testing.T) {
	stub := &activityServiceStub{}
	h := NewComplementaryActivityHandler(stub, "/api")

	c, w := newGinContext(http.MethodGet, "/complementary-activities?status=Pending&type_id=type-1", nil)
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, stub.filter.Status)
	assert.Equal(t, models.ActivityPending, *stub.filter.Status)
	assert.Equal(t, "type-1", stub.filter.TypeID)
}

func TestActivityHandlerUploadEvidence(t *testing.T) {
	stub := &activityServiceStub{}
	h := NewComplementaryActivityHandler(stub, "/api")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "proof.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	c, w := newGinContext(http.MethodPost, "/complementary-activities/a-1/evidence", body.Bytes())
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	c.Params = gin.Params{{Key: "id", Value: "a-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{ID: "u-1", Role: models.RoleStudent, PersonID: "s-1"})
	h.UploadEvidence(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "proof.pdf", stub.uploadName)
	assert.Equal(t, "application/octet-stream", stub.uploadType)
	assert.Equal(t, "%PDF-1.4", stub.uploadBody)
}

func TestActivityHandlerUploadRequiresFile(t *testing.T) {
	h := NewComplementaryActivityHandler(&activityServiceStub{}, "/api")

	c, w := newGinContext(http.MethodPost, "/complementary-activities/a-1/evidence", nil)
	c.Params = gin.Params{{Key: "id", Value: "a-1"}}
	h.UploadEvidence(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "file is required", decodeEnvelope(t, w)["message"])
}

func TestActivityHandlerEvidenceURL(t *testing.T) {
	h := NewComplementaryActivityHandler(&activityServiceStub{}, "/api")

	c, w := newGinContext(http.MethodGet, "/complementary-activities/a-1/evidence/url", nil)
	c.Params = gin.Params{{Key: "id", Value: "a-1"}}
	h.EvidenceURL(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	link, err := url.Parse(data["url"].(string))
	require.NoError(t, err)
	assert.Equal(t, "/api/complementary-activities/a-1/evidence", link.Path)
	assert.Equal(t, "tok/en", link.Query().Get("token"))
}

func TestActivityHandlerDownloadEvidence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proof.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))
	h := NewComplementaryActivityHandler(&activityServiceStub{evidencePath: path}, "/api")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/complementary-activities/:id/evidence", h.DownloadEvidence)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/complementary-activities/a-1/evidence?token=valid", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4", rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/complementary-activities/a-1/evidence?token=forged", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/complementary-activities/a-1/evidence", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
