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

const userColumns = "id, username, password_hash, role, person_id, access_token, refresh_token, created_at, updated_at, deleted, deleted_at, deleted_by"

// UserRepository manages persistence for user credentials.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// List returns users matching the provided filters.
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	q := newListQuery("u")
	if filter.Role != "" {
		q.eqAny("role", filter.Role)
	}
	q.search(filter.Search, "username")
	sorts := map[string]string{"username": "username", "role": "role", "created_at": "created_at"}
	return selectPage[models.User](ctx, r.db, "users", prefixColumns("u", userColumns), "users u", q, filter.PageRequest, sorts)
}

// FindByID fetches a live user.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, "id", id)
}

// FindByUsername fetches a live user by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, "username", username)
}

// FindByPersonID fetches the live user linked to a person.
func (r *UserRepository) FindByPersonID(ctx context.Context, personID string) (*models.User, error) {
	return r.findOne(ctx, "person_id", personID)
}

func (r *UserRepository) findOne(ctx context.Context, column, value string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE %s = $1 AND deleted = FALSE LIMIT 1", userColumns, column)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, value); err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUsername checks whether a live user owns username, optionally ignoring excludeID.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error) {
	query := "SELECT 1 FROM users WHERE username = $1 AND deleted = FALSE"
	args := []interface{}{username}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check username: %w", err)
	}
	return true, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Touch(time.Now().UTC())
	const query = `INSERT INTO users (id, username, password_hash, role, person_id, created_at, updated_at)
        VALUES (:id, :username, :password_hash, :role, :person_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update persists username, role and password hash.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	const query = `UPDATE users SET username = :username, password_hash = :password_hash, role = :role, updated_at = :updated_at WHERE id = :id AND deleted = FALSE`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// SetTokens stores the user's only session, replacing any previous pair. Empty strings end the session.
func (r *UserRepository) SetTokens(ctx context.Context, id, accessToken, refreshToken string) error {
	const query = `UPDATE users SET access_token = $2, refresh_token = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, accessToken, refreshToken, time.Now().UTC()); err != nil {
		return fmt.Errorf("set user tokens: %w", err)
	}
	return nil
}

// SoftDelete marks the user deleted and drops its session.
func (r *UserRepository) SoftDelete(ctx context.Context, id, actorID string) error {
	if err := softDelete(ctx, r.db, "users", id, actorID); err != nil {
		return err
	}
	return r.SetTokens(ctx, id, "", "")
}
