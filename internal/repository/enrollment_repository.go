package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/easycd-api/internal/models"
)

const enrollmentColumns = "id, student_id, classroom_id, status, grade, frequency, created_at, updated_at, deleted, deleted_at, deleted_by"

// EnrollmentRepository manages persistence for enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs an EnrollmentRepository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// List returns enrollments matching the provided filters.
func (r *EnrollmentRepository) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, int, error) {
	q := newListQuery("e")
	q.eq("student_id", filter.StudentID)
	q.eq("classroom_id", filter.ClassroomID)
	q.eq("status", string(filter.Status))
	sorts := map[string]string{"status": "status", "grade": "grade", "created_at": "created_at"}
	return selectPage[models.Enrollment](ctx, r.db, "enrollments", prefixColumns("e", enrollmentColumns), "enrollments e", q, filter.PageRequest, sorts)
}

// FindByID fetches a live enrollment.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	query := fmt.Sprintf("SELECT %s FROM enrollments WHERE id = $1 AND deleted = FALSE", enrollmentColumns)
	if err := r.db.GetContext(ctx, &enrollment, query, id); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// Create inserts a new enrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	enrollment.Touch(time.Now().UTC())
	const query = `INSERT INTO enrollments (id, student_id, classroom_id, status, grade, frequency, created_at, updated_at)
        VALUES (:id, :student_id, :classroom_id, :status, :grade, :frequency, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, enrollment); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// Update modifies an existing enrollment.
func (r *EnrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	enrollment.UpdatedAt = time.Now().UTC()
	const query = `UPDATE enrollments SET student_id = :student_id, classroom_id = :classroom_id, status = :status, grade = :grade, frequency = :frequency, updated_at = :updated_at WHERE id = :id AND deleted = FALSE`
	if _, err := r.db.NamedExecContext(ctx, query, enrollment); err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}
	return nil
}

// SoftDelete marks the enrollment deleted.
func (r *EnrollmentRepository) SoftDelete(ctx context.Context, id, actorID string) error {
	return softDelete(ctx, r.db, "enrollments", id, actorID)
}

// ListIDsByClassroom returns live enrollment ids of a classroom.
func (r *EnrollmentRepository) ListIDsByClassroom(ctx context.Context, classroomID string) ([]string, error) {
	return liveIDs(ctx, r.db, "enrollments", "classroom_id", classroomID)
}

// ListIDsByStudent returns live enrollment ids of a student.
func (r *EnrollmentRepository) ListIDsByStudent(ctx context.Context, studentID string) ([]string, error) {
	return liveIDs(ctx, r.db, "enrollments", "student_id", studentID)
}

// CountOpenByClassroom counts live, non-canceled enrollments occupying a classroom seat.
func (r *EnrollmentRepository) CountOpenByClassroom(ctx context.Context, classroomID string) (int, error) {
	const query = `SELECT COUNT(*) FROM enrollments WHERE classroom_id = $1 AND deleted = FALSE AND status <> $2`
	var total int
	if err := r.db.GetContext(ctx, &total, query, classroomID, models.EnrollmentCanceled); err != nil {
		return 0, fmt.Errorf("count classroom enrollments: %w", err)
	}
	return total, nil
}

// ExistsOpen reports whether the student already holds a non-canceled enrollment in the classroom.
func (r *EnrollmentRepository) ExistsOpen(ctx context.Context, studentID, classroomID, excludeID string) (bool, error) {
	query := `SELECT 1 FROM enrollments WHERE student_id = $1 AND classroom_id = $2 AND deleted = FALSE AND status <> $3`
	args := []interface{}{studentID, classroomID, models.EnrollmentCanceled}
	if excludeID != "" {
		query += " AND id <> $4"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return true, nil
}

// Transcript returns the student's live enrollments joined with classroom and subject.
func (r *EnrollmentRepository) Transcript(ctx context.Context, studentID string) ([]models.TranscriptLine, error) {
	const query = `SELECT e.id AS enrollment_id, s.code AS subject_code, s.name AS subject_name, s.workload,
        c.name AS classroom_name, c.semester, e.status, e.grade, e.frequency
        FROM enrollments e
        JOIN classrooms c ON c.id = e.classroom_id
        JOIN subjects s ON s.id = c.subject_id
        WHERE e.student_id = $1 AND e.deleted = FALSE
        ORDER BY c.semester, s.name`
	lines := make([]models.TranscriptLine, 0)
	if err := r.db.SelectContext(ctx, &lines, query, studentID); err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}
	return lines, nil
}
