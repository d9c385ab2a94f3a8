package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/easycd-api/internal/models"
)

const personColumns = "id, name, email, registration, phone, birth_date, user_id, enrollments, solicitations, complementary_activities, created_at, updated_at, deleted, deleted_at, deleted_by"

// people rows carry the role of their linked user.
var (
	personSelect = prefixColumns("p", personColumns) + ", COALESCE(u.role, '') AS role"
	personFrom   = "people p LEFT JOIN users u ON u.id = p.user_id AND u.deleted = FALSE"
)

// PersonRepository manages persistence for people.
type PersonRepository struct {
	db *sqlx.DB
}

// NewPersonRepository constructs a PersonRepository.
func NewPersonRepository(db *sqlx.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// List returns people matching the provided filters.
func (r *PersonRepository) List(ctx context.Context, filter models.PersonFilter) ([]models.Person, int, error) {
	q := newListQuery("p")
	if filter.Role != "" {
		q.conditions = append(q.conditions, "u.role = "+q.next(filter.Role))
	}
	q.search(filter.Search, "name", "email", "registration")
	sorts := map[string]string{"name": "name", "registration": "registration", "created_at": "created_at"}
	return selectPage[models.Person](ctx, r.db, "people", personSelect, personFrom, q, filter.PageRequest, sorts)
}

// FindByID fetches a live person with its role.
func (r *PersonRepository) FindByID(ctx context.Context, id string) (*models.Person, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE p.id = $1 AND p.deleted = FALSE", personSelect, personFrom)
	var person models.Person
	if err := r.db.GetContext(ctx, &person, query, id); err != nil {
		return nil, err
	}
	return &person, nil
}

// Create inserts a new person.
func (r *PersonRepository) Create(ctx context.Context, person *models.Person) error {
	if person.ID == "" {
		person.ID = uuid.NewString()
	}
	person.Touch(time.Now().UTC())
	const query = `INSERT INTO people (id, name, email, registration, phone, birth_date, user_id, created_at, updated_at)
        VALUES (:id, :name, :email, :registration, :phone, :birth_date, :user_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, person); err != nil {
		return fmt.Errorf("create person: %w", err)
	}
	return nil
}

// Update persists scalar fields. Back-reference arrays are only changed through Add/Remove helpers.
func (r *PersonRepository) Update(ctx context.Context, person *models.Person) error {
	person.UpdatedAt = time.Now().UTC()
	const query = `UPDATE people SET name = :name, email = :email, registration = :registration, phone = :phone, birth_date = :birth_date, updated_at = :updated_at WHERE id = :id AND deleted = FALSE`
	if _, err := r.db.NamedExecContext(ctx, query, person); err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	return nil
}

// SetUser links or, with nil, unlinks the person's user.
func (r *PersonRepository) SetUser(ctx context.Context, personID string, userID *string) error {
	const query = `UPDATE people SET user_id = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, personID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("set person user: %w", err)
	}
	return nil
}

// SoftDelete marks the person deleted.
func (r *PersonRepository) SoftDelete(ctx context.Context, id, actorID string) error {
	return softDelete(ctx, r.db, "people", id, actorID)
}

func (r *PersonRepository) AddEnrollment(ctx context.Context, personID, enrollmentID string) error {
	return personEnrollments.push(ctx, r.db, personID, enrollmentID)
}

func (r *PersonRepository) RemoveEnrollment(ctx context.Context, personID, enrollmentID string) error {
	return personEnrollments.pull(ctx, r.db, personID, enrollmentID)
}

func (r *PersonRepository) AddSolicitation(ctx context.Context, personID, solicitationID string) error {
	return personSolicitations.push(ctx, r.db, personID, solicitationID)
}

func (r *PersonRepository) RemoveSolicitation(ctx context.Context, personID, solicitationID string) error {
	return personSolicitations.pull(ctx, r.db, personID, solicitationID)
}

func (r *PersonRepository) AddComplementaryActivity(ctx context.Context, personID, activityID string) error {
	return personActivities.push(ctx, r.db, personID, activityID)
}

func (r *PersonRepository) RemoveComplementaryActivity(ctx context.Context, personID, activityID string) error {
	return personActivities.pull(ctx, r.db, personID, activityID)
}
