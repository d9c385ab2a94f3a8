package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/models"
	"github.com/noah-isme/easycd-api/internal/service"
)

type solicitationServiceStub struct {
	reviewer service.Reviewer
	approved bool
}

func (s *solicitationServiceStub) List(context.Context, models.SolicitationFilter, *models.JWTClaims) ([]models.Solicitation, *models.Pagination, error) {
	return nil, &models.Pagination{Page: 1}, nil
}
func (s *solicitationServiceStub) Get(_ context.Context, id string, _ *models.JWTClaims) (*models.Solicitation, error) {
	return &models.Solicitation{ID: id}, nil
}
func (s *solicitationServiceStub) Create(_ context.Context, req dto.CreateSolicitationRequest, _ *models.JWTClaims) (*models.Solicitation, error) {
	return &models.Solicitation{ID: "sol-1", TypeID: req.TypeID}, nil
}
func (s *solicitationServiceStub) Update(_ context.Context, id string, _ dto.UpdateSolicitationRequest, _ *models.JWTClaims) (*models.Solicitation, error) {
	return &models.Solicitation{ID: id}, nil
}
func (s *solicitationServiceStub) Review(_ context.Context, id string, reviewer service.Reviewer, req dto.ReviewSolicitationRequest) (*models.Solicitation, error) {
	s.reviewer, s.approved = reviewer, *req.Approved
	return &models.Solicitation{ID: id, Status: models.SolicitationDeferred}, nil
}
func (s *solicitationServiceStub) Delete(context.Context, string, *models.JWTClaims) error { return nil }

func TestSolicitationHandlerReviewRoutesReviewer(t *testing.T) {
	stub := &solicitationServiceStub{}
	h := NewSolicitationHandler(stub)

	c, w := newGinContext(http.MethodPut, "/solicitations/sol-1/coordinator-review", []byte(`{"approved":true}`))
	c.Params = gin.Params{{Key: "id", Value: "sol-1"}}
	h.CoordinatorReview(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.ReviewerCoordinator, stub.reviewer)
	assert.True(t, stub.approved)

	c, w = newGinContext(http.MethodPut, "/solicitations/sol-1/teacher-review", []byte(`{"approved":false,"notes":"missing"}`))
	c.Params = gin.Params{{Key: "id", Value: "sol-1"}}
	h.TeacherReview(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.ReviewerTeacher, stub.reviewer)
	assert.False(t, stub.approved)
}
