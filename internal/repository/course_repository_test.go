package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/easycd-api/internal/models"
)

var courseRowColumns = []string{"id", "name", "description", "coordinator_id", "created_at", "updated_at", "deleted", "deleted_at", "deleted_by"}

func TestCourseRepositoryList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCourseRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(courseRowColumns).AddRow("c-1", "CS", "", "t-1", now, now, false, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT c.id, c.name, c.description, c.coordinator_id, c.created_at, c.updated_at, c.deleted, c.deleted_at, c.deleted_by FROM courses c WHERE c.deleted = FALSE AND c.coordinator_id = $1 AND (LOWER(c.name) LIKE $2) ORDER BY c.name ASC LIMIT 10 OFFSET 10")).
		WithArgs("t-1", "%cs%").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM courses c WHERE c.deleted = FALSE AND c.coordinator_id = $1 AND (LOWER(c.name) LIKE $2)")).
		WithArgs("t-1", "%cs%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	filter := models.CourseFilter{CoordinatorID: "t-1", Search: "CS", PageRequest: models.PageRequest{Page: 2, PageSize: 10, SortBy: "name", SortOrder: "asc"}}
	courses, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "CS", courses[0].Name)
	assert.Equal(t, 11, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryFindByIDHidesDeleted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM courses WHERE id = $1 AND deleted = FALSE")).
		WithArgs("c-1").
		WillReturnRows(sqlmock.NewRows(courseRowColumns))

	_, err := repo.FindByID(context.Background(), "c-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCourseRepository(db)

	mock.ExpectExec("INSERT INTO courses").
		WithArgs(sqlmock.AnyArg(), "CS", "", "t-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	course := &models.Course{Name: "CS", CoordinatorID: "t-1"}
	require.NoError(t, repo.Create(context.Background(), course))
	assert.NotEmpty(t, course.ID)
	assert.False(t, course.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
