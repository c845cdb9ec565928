package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewForbidden("nope")
	require.Same(t, original.(*DomainError), ToDomainError(original))
}

func TestToDomainErrorNoRows(t *testing.T) {
	de := ToDomainError(pgx.ErrNoRows)
	require.Equal(t, "NOT_FOUND", de.Code)
	require.Equal(t, http.StatusNotFound, de.HTTPStatus)
}

func TestToDomainErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "clients_email_key"}

	de := ToDomainError(fmt.Errorf("insert client: %w", pgErr))
	require.Equal(t, "CONFLICT", de.Code)
	require.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	require.Equal(t, "clients_email_key", de.Details["constraint"])
}

func TestToDomainErrorOtherPgError(t *testing.T) {
	de := ToDomainError(&pgconn.PgError{Code: "23503"})
	require.Equal(t, "INTERNAL_ERROR", de.Code)
}

func TestToDomainErrorUnknown(t *testing.T) {
	de := ToDomainError(errors.New("boom"))
	require.Equal(t, "INTERNAL_ERROR", de.Code)
	require.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
}
