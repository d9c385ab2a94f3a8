package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/easycd-api/internal/models"
	"github.com/noah-isme/easycd-api/pkg/cache"
)

func TestCachedListServesSecondCallFromCache(t *testing.T) {
	svc := NewCacheService(cache.NewMemory(time.Minute), NewMetricsService(), time.Minute, nil, true)
	ctx := context.Background()
	filter := models.CourseFilter{Search: "cs"}

	calls := 0
	load := func() ([]models.Course, int, error) {
		calls++
		return []models.Course{{ID: "c-1", Name: "CS"}}, 1, nil
	}

	items, total, err := cachedList(ctx, svc, cacheCourses, filter, load)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, items, 1)

	items, _, err = cachedList(ctx, svc, cacheCourses, filter, load)
	require.NoError(t, err)
	assert.Equal(t, "CS", items[0].Name)
	assert.Equal(t, 1, calls)

	svc.Invalidate(ctx, cacheCourses)
	_, _, err = cachedList(ctx, svc, cacheCourses, filter, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCachedListDisabledAlwaysLoads(t *testing.T) {
	svc := NewCacheService(cache.NewMemory(time.Minute), nil, time.Minute, nil, false)
	calls := 0
	load := func() ([]models.Course, int, error) {
		calls++
		return nil, 0, errors.New("boom")
	}
	_, _, err := cachedList(context.Background(), svc, cacheCourses, models.CourseFilter{}, load)
	assert.Error(t, err)
	_, _, _ = cachedList(context.Background(), svc, cacheCourses, models.CourseFilter{}, load)
	assert.Equal(t, 2, calls)
}

func TestListKeyDependsOnFilter(t *testing.T) {
	a := listKey(cacheSubjects, models.SubjectFilter{CurriculumGrideID: "g-1"})
	b := listKey(cacheSubjects, models.SubjectFilter{CurriculumGrideID: "g-2"})
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "subjects:list:")
}
