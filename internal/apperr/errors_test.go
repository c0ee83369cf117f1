package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"courier-admin/internal/apperr"
)

func TestValidationError_UnwrapsToInvalid(t *testing.T) {
	t.Parallel()

	err := apperr.FieldError("delivery_user_id", "required")
	require.ErrorIs(t, err, apperr.ErrInvalid)

	wrapped := fmt.Errorf("update: %w", err)
	var verr *apperr.ValidationError
	require.True(t, errors.As(wrapped, &verr))
	require.Equal(t, "required", verr.Fields["delivery_user_id"])
}

func TestValidationError_FirstMessageWins(t *testing.T) {
	t.Parallel()

	v := apperr.NewValidationError()
	v.Add("status", "required")
	v.Add("status", "invalid")
	v.Add("notes", "too long")

	require.Equal(t, "required", v.Fields["status"])
	require.Equal(t, "validation failed: notes: too long; status: required", v.Error())
}

func TestValidationError_OrNil(t *testing.T) {
	t.Parallel()

	require.NoError(t, apperr.NewValidationError().OrNil())

	var nilErr *apperr.ValidationError
	require.True(t, nilErr.Empty())
}
