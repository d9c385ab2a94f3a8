package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/easycd-api/internal/models"
	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
	"github.com/noah-isme/easycd-api/pkg/response"
)

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}

func pageRequest(c *gin.Context) models.PageRequest {
	var p models.PageRequest
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		p.Page = page
	}
	if size, err := strconv.Atoi(c.Query("page_size")); err == nil {
		p.PageSize = size
	}
	p.SortBy = c.Query("sort_by")
	p.SortOrder = c.Query("sort_order")
	return p
}

func searchQuery(c *gin.Context) string {
	return strings.TrimSpace(c.Query("search"))
}

func optionalBool(c *gin.Context, key string) *bool {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

func respondList[T any](c *gin.Context, items []T, pagination *models.Pagination, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

func getOne[T any](c *gin.Context, get func(ctx context.Context, id string) (*T, error)) {
	item, err := get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

func createOne[R, T any](c *gin.Context, create func(ctx context.Context, req R) (*T, error)) {
	var req R
	if !bindJSON(c, &req) {
		return
	}
	item, err := create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

func updateOne[R, T any](c *gin.Context, update func(ctx context.Context, id string, req R) (*T, error)) {
	var req R
	if !bindJSON(c, &req) {
		return
	}
	item, err := update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

func deleteOne(c *gin.Context, del func(ctx context.Context, id string, actor *models.JWTClaims) error) {
	if err := del(c.Request.Context(), c.Param("id"), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
