package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/easycd-api/internal/models"
)

func TestPersonRepositoryFindByIDJoinsRole(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPersonRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "registration", "phone", "birth_date", "user_id", "enrollments", "solicitations", "complementary_activities", "created_at", "updated_at", "deleted", "deleted_at", "deleted_by", "role"}).
		AddRow("p-1", "Ana", "ana@example.com", "2024001", "", nil, "u-1", "{e-1,e-2}", "{}", "{}", now, now, false, nil, nil, "student")
	mock.ExpectQuery(regexp.QuoteMeta("FROM people p LEFT JOIN users u ON u.id = p.user_id AND u.deleted = FALSE WHERE p.id = $1 AND p.deleted = FALSE")).
		WithArgs("p-1").
		WillReturnRows(rows)

	person, err := repo.FindByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, person.Role)
	assert.Equal(t, []string{"e-1", "e-2"}, []string(person.Enrollments))
	require.NotNil(t, person.UserID)
	assert.Equal(t, "u-1", *person.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepositoryListByRole(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPersonRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.deleted = FALSE AND u.role = $1 ORDER BY p.created_at DESC LIMIT 20 OFFSET 0")).
		WithArgs(models.RoleTeacher).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM people p LEFT JOIN users u")).
		WithArgs(models.RoleTeacher).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	people, total, err := repo.List(context.Background(), models.PersonFilter{Role: models.RoleTeacher})
	require.NoError(t, err)
	assert.Empty(t, people)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
