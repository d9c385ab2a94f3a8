package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/middleware"
	"github.com/noah-isme/easycd-api/internal/models"
	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
)

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

type courseServiceStub struct {
	filter  models.CourseFilter
	created dto.CreateCourseRequest
	deleted string
	actor   *models.JWTClaims
	err     error
}

func (s *courseServiceStub) List(_ context.Context, filter models.CourseFilter) ([]models.Course, *models.Pagination, error) {
	s.filter = filter
	return nil, &models.Pagination{Page: 1, PageSize: 20}, s.err
}

func (s *courseServiceStub) Get(_ context.Context, id string) (*models.Course, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Course{ID: id, Name: "CS"}, nil
}

func (s *courseServiceStub) Create(_ context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	s.created = req
	return &models.Course{ID: "c-1", Name: req.Name, CoordinatorID: req.CoordinatorID}, s.err
}

func (s *courseServiceStub) Update(_ context.Context, id string, _ dto.UpdateCourseRequest) (*models.Course, error) {
	return &models.Course{ID: id}, s.err
}

func (s *courseServiceStub) Delete(_ context.Context, id string, actor *models.JWTClaims) error {
	s.deleted, s.actor = id, actor
	return s.err
}

func TestCourseHandlerListParsesQuery(t *testing.T) {
	stub := &courseServiceStub{}
	h := NewCourseHandler(stub)

	c, w := newGinContext(http.MethodGet, "/courses?coordinator_id=t-1&search=+cs+&page=2&page_size=5&sort_by=name&sort_order=desc", nil)
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "t-1", stub.filter.CoordinatorID)
	assert.Equal(t, "cs", stub.filter.Search)
	assert.Equal(t, 2, stub.filter.Page)
	assert.Equal(t, 5, stub.filter.PageSize)
	assert.Equal(t, "name", stub.filter.SortBy)
	assert.Equal(t, "desc", stub.filter.SortOrder)

	body := decodeEnvelope(t, w)
	assert.Equal(t, []interface{}{}, body["data"])
	assert.NotNil(t, body["pagination"])
}

func TestCourseHandlerCreate(t *testing.T) {
	stub := &courseServiceStub{}
	h := NewCourseHandler(stub)

	c, w := newGinContext(http.MethodPost, "/courses", []byte(`{"name":"CS","coordinator_id":"t-1"}`))
	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "CS", stub.created.Name)

	c, w = newGinContext(http.MethodPost, "/courses", []byte(`{"name":`))
	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCourseHandlerDeletePassesActor(t *testing.T) {
	stub := &courseServiceStub{}
	h := NewCourseHandler(stub)
	claims := &models.JWTClaims{ID: "u-1", Role: models.RoleAdmin}

	c, w := newGinContext(http.MethodDelete, "/courses/c-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "c-1"}}
	c.Set(middleware.ContextUserKey, claims)
	h.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "c-1", stub.deleted)
	assert.Same(t, claims, stub.actor)
}

func TestCourseHandlerRendersServiceError(t *testing.T) {
	stub := &courseServiceStub{err: appErrors.Clone(appErrors.ErrPreconditionFailed, "course still has curriculum grides")}
	h := NewCourseHandler(stub)

	c, w := newGinContext(http.MethodDelete, "/courses/c-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "c-1"}}
	h.Delete(c)

	require.Equal(t, http.StatusPreconditionFailed, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, "course still has curriculum grides", body["message"])
}

type authServiceStub struct {
	loggedOut string
}

func (s *authServiceStub) Login(_ context.Context, req dto.LoginRequest) (*models.TokenPair, error) {
	if req.Password != "secret" {
		return nil, appErrors.ErrInvalidCredentials
	}
	return &models.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (s *authServiceStub) Refresh(_ context.Context, req dto.RefreshRequest) (*models.TokenPair, error) {
	return &models.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}, nil
}

func (s *authServiceStub) Logout(_ context.Context, userID string) error {
	s.loggedOut = userID
	return nil
}

func TestAuthHandlerLoginSetsCookie(t *testing.T) {
	h := NewAuthHandler(&authServiceStub{}, CookieConfig{MaxAge: 15 * time.Minute})

	c, w := newGinContext(http.MethodPost, "/users/auth", []byte(`{"username":"ana","password":"secret"}`))
	h.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.CookieName, cookies[0].Name)
	assert.Equal(t, "access", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	c, w = newGinContext(http.MethodPost, "/users/auth", []byte(`{"username":"ana","password":"nope"}`))
	h.Login(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerLogoutClearsCookie(t *testing.T) {
	stub := &authServiceStub{}
	h := NewAuthHandler(stub, CookieConfig{})

	c, w := newGinContext(http.MethodPost, "/users/logout", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{ID: "u-1"})
	h.Logout(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "u-1", stub.loggedOut)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)

	c, w = newGinContext(http.MethodPost, "/users/logout", nil)
	h.Logout(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
