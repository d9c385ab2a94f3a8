package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorDefaultsToInternal(t *testing.T) {
	appErr := FromError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, ErrInternal.Code, appErr.Code)
}

func TestFromErrorKeepsTypedError(t *testing.T) {
	wrapped := Wrap(errors.New("db"), ErrConflict.Code, ErrConflict.Status, "duplicate")
	appErr := FromError(wrapped)
	assert.Same(t, wrapped, appErr)
	assert.Equal(t, "duplicate: db", appErr.Error())
}

func TestMissingFieldNamesField(t *testing.T) {
	err := MissingField("name")
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "name is required", err.Message)
	assert.Equal(t, "validation failed", ErrValidation.Message)
}

func TestNotFound(t *testing.T) {
	err := NotFound("course")
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "course not found", err.Message)
}
