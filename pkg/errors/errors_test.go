package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsSetTypeAndStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantType   ErrorType
		wantStatus int
	}{
		{name: "validation", err: NewValidationError("bad input"), wantType: ErrorTypeValidation, wantStatus: http.StatusBadRequest},
		{name: "not found", err: NewNotFoundError("node"), wantType: ErrorTypeNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", err: NewInternalError("boom"), wantType: ErrorTypeInternal, wantStatus: http.StatusInternalServerError},
		{name: "storage", err: NewStorageError("put_item", stderrors.New("throttled")), wantType: ErrorTypeStorage, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantStatus, tt.err.HTTPStatus)
			assert.NotEmpty(t, tt.err.StackTrace)
		})
	}
}

func TestStorageErrorCarriesCause(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewStorageError("query", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "query")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("node")))
	assert.True(t, IsValidation(NewValidationError("bad")))
	assert.True(t, IsStorage(NewStorageError("scan", stderrors.New("x"))))

	assert.False(t, IsNotFound(NewValidationError("bad")))
	assert.False(t, IsNotFound(stderrors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewNotFoundError("edge"))
	assert.True(t, IsNotFound(wrapped))

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))

	err := Wrap(NewNotFoundError("node"), "loading start node")
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "loading start node")

	plain := stderrors.New("plain failure")
	err = Wrap(plain, "doing work")
	appErr := GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeInternal, appErr.Type)
	assert.ErrorIs(t, err, plain)
}

func TestWithCodeAndDetails(t *testing.T) {
	err := NewValidationError("depth out of range").
		WithCode("DEPTH_RANGE").
		WithDetails(map[string]interface{}{"min": 1, "max": 3})

	assert.Equal(t, "DEPTH_RANGE", err.Code)
	assert.Equal(t, 3, err.Details["max"])
}
