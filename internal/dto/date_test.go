package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCurriculumGrideAcceptsPlainDates(t *testing.T) {
	var req CreateCurriculumGrideRequest
	err := json.Unmarshal([]byte(`{"name":"2024/1","course_id":"c-1","dt_start":"2024-02-01","dt_end":"2024-07-01T12:00:00Z"}`), &req)
	require.NoError(t, err)

	assert.Equal(t, "2024/1", req.Name)
	assert.Equal(t, "c-1", req.CourseID)
	assert.True(t, req.DtStart.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, req.DtEnd.Equal(time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)))
}

func TestCreateCurriculumGrideRejectsBadDate(t *testing.T) {
	var req CreateCurriculumGrideRequest
	assert.Error(t, json.Unmarshal([]byte(`{"name":"x","dt_start":"01/02/2024"}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"name":"x","dt_start":20240201}`), &req))
}

func TestUpdateCurriculumGrideDatesStaySparse(t *testing.T) {
	var req UpdateCurriculumGrideRequest
	require.NoError(t, json.Unmarshal([]byte(`{"dt_end":"2024-12-20","active":false}`), &req))

	assert.Nil(t, req.DtStart)
	require.NotNil(t, req.DtEnd)
	assert.True(t, req.DtEnd.Equal(time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, req.Active)
	assert.False(t, *req.Active)
}
