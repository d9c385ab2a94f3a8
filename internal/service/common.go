package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/easycd-api/internal/models"
	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
)

// NewValidator returns a validator whose errors name JSON fields.
func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

func defaultValidator(validate *validator.Validate) *validator.Validate {
	if validate == nil {
		return NewValidator()
	}
	return validate
}

// validationError turns the first failed rule into a 400 naming the field.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	fe := fieldErrs[0]
	if fe.Tag() == "required" {
		return appErrors.MissingField(fe.Field())
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("%s is invalid", fe.Field()))
}

// applyField overwrites dst with next when next is present, changed, and non-empty unless allowEmpty.
func applyField[T comparable](dst *T, next *T, allowEmpty bool) bool {
	if next == nil {
		return false
	}
	var zero T
	if *next == zero && !allowEmpty {
		return false
	}
	if *next == *dst {
		return false
	}
	*dst = *next
	return true
}

// lookupError maps a repository read failure to 404 or 500.
func lookupError(err error, entity string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.NotFound(entity)
	}
	return appErrors.Internal(err, "failed to load "+entity)
}

type personFinder interface {
	FindByID(ctx context.Context, id string) (*models.Person, error)
}

// requirePerson loads a live person and, when role is set, checks the linked user's role.
func requirePerson(ctx context.Context, repo personFinder, id, label string, role models.UserRole) (*models.Person, error) {
	person, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, label)
	}
	if role != "" && person.Role != role {
		return nil, appErrors.Clone(appErrors.ErrInvalidReference, fmt.Sprintf("%s must be a %s", label, role))
	}
	return person, nil
}

// actorID returns the caller's user id or empty for system actions.
func actorID(actor *models.JWTClaims) string {
	if actor == nil {
		return ""
	}
	return actor.ID
}

type refFunc func(ctx context.Context, ownerID, id string) error

// moveRef pulls id from the old owner's array and pushes it onto the new owner's array concurrently.
func moveRef(ctx context.Context, pull, push refFunc, from, to, id string) error {
	g, gctx := errgroup.WithContext(ctx)
	if from != "" {
		g.Go(func() error { return pull(gctx, from, id) })
	}
	if to != "" {
		g.Go(func() error { return push(gctx, to, id) })
	}
	return g.Wait()
}

// resolveStudent picks the student a request acts for. Students may only act for themselves.
func resolveStudent(actor *models.JWTClaims, requested string) (string, error) {
	if actor != nil && actor.Role == models.RoleStudent {
		if requested == "" {
			return actor.PersonID, nil
		}
		if requested != actor.PersonID {
			return "", appErrors.Clone(appErrors.ErrForbidden, "students can only act for themselves")
		}
	}
	if requested == "" {
		return "", appErrors.MissingField("student_id")
	}
	return requested, nil
}

// ownedBy rejects students touching another student's record.
func ownedBy(actor *models.JWTClaims, studentID string) error {
	if actor != nil && actor.Role == models.RoleStudent && actor.PersonID != studentID {
		return appErrors.Clone(appErrors.ErrForbidden, "students can only act for themselves")
	}
	return nil
}
