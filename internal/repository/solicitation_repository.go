package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/easycd-api/internal/models"
)

const (
	solicitationTypeColumns = "id, name, description, solicitations, created_at, updated_at, deleted, deleted_at, deleted_by"
	solicitationColumns     = "id, type_id, student_id, meta, teacher_approval, teacher_notes, coordinator_approval, coordinator_notes, status, created_at, updated_at, deleted, deleted_at, deleted_by"
)

// SolicitationTypeRepository manages persistence for solicitation types.
type SolicitationTypeRepository struct {
	db *sqlx.DB
}

// NewSolicitationTypeRepository constructs a SolicitationTypeRepository.
func NewSolicitationTypeRepository(db *sqlx.DB) *SolicitationTypeRepository {
	return &SolicitationTypeRepository{db: db}
}

// List returns solicitation types matching the provided filters.
func (r *SolicitationTypeRepository) List(ctx context.Context, filter models.SolicitationTypeFilter) ([]models.SolicitationType, int, error) {
	q := newListQuery("t")
	q.search(filter.Search, "name")
	sorts := map[string]string{"name": "name", "created_at": "created_at"}
	return selectPage[models.SolicitationType](ctx, r.db, "solicitation types", prefixColumns("t", solicitationTypeColumns), "solicitation_types t", q, filter.PageRequest, sorts)
}

// FindByID fetches a live solicitation type.
func (r *SolicitationTypeRepository) FindByID(ctx context.Context, id string) (*models.SolicitationType, error) {
	var solicitationType models.SolicitationType
	query := fmt.Sprintf("SELECT %s FROM solicitation_types WHERE id = $1 AND deleted = FALSE", solicitationTypeColumns)
	if err := r.db.GetContext(ctx, &solicitationType, query, id); err != nil {
		return nil, err
	}
	return &solicitationType, nil
}

// Create inserts a new solicitation type.
func (r *SolicitationTypeRepository) Create(ctx context.Context, solicitationType *models.SolicitationType) error {
	if solicitationType.ID == "" {
		solicitationType.ID = uuid.NewString()
	}
	solicitationType.Touch(time.Now().UTC())
	const query = `INSERT INTO solicitation_types (id, name, description, created_at, updated_at)
        VALUES (:id, :name, :description, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, solicitationType); err != nil {
		return fmt.Errorf("create solicitation type: %w", err)
	}
	return nil
}

// Update modifies an existing solicitation type.
func (r *SolicitationTypeRepository) Update(ctx context.Context, solicitationType *models.SolicitationType) error {
	solicitationType.UpdatedAt = time.Now().UTC()
	const query = `UPDATE solicitation_types SET name = :name, description = :description, updated_at = :updated_at WHERE id = :id AND deleted = FALSE`
	if _, err := r.db.NamedExecContext(ctx, query, solicitationType); err != nil {
		return fmt.Errorf("update solicitation type: %w", err)
	}
	return nil
}

// SoftDelete marks the solicitation type deleted.
func (r *SolicitationTypeRepository) SoftDelete(ctx context.Context, id, actorID string) error {
	return softDelete(ctx, r.db, "solicitation_types", id, actorID)
}

func (r *SolicitationTypeRepository) AddSolicitation(ctx context.Context, typeID, solicitationID string) error {
	return solicitationTypeRequests.push(ctx, r.db, typeID, solicitationID)
}

func (r *SolicitationTypeRepository) RemoveSolicitation(ctx context.Context, typeID, solicitationID string) error {
	return solicitationTypeRequests.pull(ctx, r.db, typeID, solicitationID)
}

// SolicitationRepository manages persistence for solicitations.
type SolicitationRepository struct {
	db *sqlx.DB
}

// NewSolicitationRepository constructs a SolicitationRepository.
func NewSolicitationRepository(db *sqlx.DB) *SolicitationRepository {
	return &SolicitationRepository{db: db}
}

// List returns solicitations matching the provided filters.
func (r *SolicitationRepository) List(ctx context.Context, filter models.SolicitationFilter) ([]models.Solicitation, int, error) {
	q := newListQuery("s")
	q.eq("type_id", filter.TypeID)
	q.eq("student_id", filter.StudentID)
	q.eq("status", string(filter.Status))
	sorts := map[string]string{"status": "status", "created_at": "created_at"}
	return selectPage[models.Solicitation](ctx, r.db, "solicitations", prefixColumns("s", solicitationColumns), "solicitations s", q, filter.PageRequest, sorts)
}

// FindByID fetches a live solicitation.
func (r *SolicitationRepository) FindByID(ctx context.Context, id string) (*models.Solicitation, error) {
	var solicitation models.Solicitation
	query := fmt.Sprintf("SELECT %s FROM solicitations WHERE id = $1 AND deleted = FALSE", solicitationColumns)
	if err := r.db.GetContext(ctx, &solicitation, query, id); err != nil {
		return nil, err
	}
	return &solicitation, nil
}

// Create inserts a new solicitation.
func (r *SolicitationRepository) Create(ctx context.Context, solicitation *models.Solicitation) error {
	if solicitation.ID == "" {
		solicitation.ID = uuid.NewString()
	}
	if len(solicitation.Meta) == 0 {
		solicitation.Meta = []byte("{}")
	}
	solicitation.Touch(time.Now().UTC())
	const query = `INSERT INTO solicitations (id, type_id, student_id, meta, teacher_approval, teacher_notes, coordinator_approval, coordinator_notes, status, created_at, updated_at)
        VALUES (:id, :type_id, :student_id, :meta, :teacher_approval, :teacher_notes, :coordinator_approval, :coordinator_notes, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, solicitation); err != nil {
		return fmt.Errorf("create solicitation: %w", err)
	}
	return nil
}

// Update modifies an existing solicitation including its reviews.
func (r *SolicitationRepository) Update(ctx context.Context, solicitation *models.Solicitation) error {
	solicitation.UpdatedAt = time.Now().UTC()
	const query = `UPDATE solicitations SET type_id = :type_id, student_id = :student_id, meta = :meta, teacher_approval = :teacher_approval, teacher_notes = :teacher_notes,
        coordinator_approval = :coordinator_approval, coordinator_notes = :coordinator_notes, status = :status, updated_at = :updated_at WHERE id = :id AND deleted = FALSE`
	if _, err := r.db.NamedExecContext(ctx, query, solicitation); err != nil {
		return fmt.Errorf("update solicitation: %w", err)
	}
	return nil
}

// SoftDelete marks the solicitation deleted.
func (r *SolicitationRepository) SoftDelete(ctx context.Context, id, actorID string) error {
	return softDelete(ctx, r.db, "solicitations", id, actorID)
}

// ListIDsByType returns live solicitation ids of a type.
func (r *SolicitationRepository) ListIDsByType(ctx context.Context, typeID string) ([]string, error) {
	return liveIDs(ctx, r.db, "solicitations", "type_id", typeID)
}

// ListIDsByStudent returns live solicitation ids of a student.
func (r *SolicitationRepository) ListIDsByStudent(ctx context.Context, studentID string) ([]string, error) {
	return liveIDs(ctx, r.db, "solicitations", "student_id", studentID)
}
