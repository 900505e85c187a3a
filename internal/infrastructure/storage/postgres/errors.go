package postgres

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"procura/internal/core/apperror"
)

// PostgreSQL error codes relevant to this service.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgQueryCanceled       = "57014" // statement_timeout fired
)

// TranslateError maps low-level store errors to domain errors.
// Constraint violations become Duplicate/ForeignKey, connection and timeout
// failures become Unavailable. Raw store error text never reaches callers.
func TranslateError(err error, entity string) error {
	if err == nil {
		return nil
	}

	// Already classified upstream
	if apperror.IsAppError(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperror.NewDuplicate(entity, constraintField(pgErr), "").
				WithDetail("constraint", pgErr.ConstraintName).
				WithCause(err)
		case pgForeignKeyViolation:
			return apperror.NewForeignKey(entity, constraintField(pgErr)).
				WithDetail("constraint", pgErr.ConstraintName).
				WithCause(err)
		case pgQueryCanceled:
			return apperror.NewUnavailable(err).WithDetail("entity", entity)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperror.NewUnavailable(err).WithDetail("entity", entity)
	}

	if pgconn.Timeout(err) {
		return apperror.NewUnavailable(err).WithDetail("entity", entity)
	}

	// Dial and other transport failures mean the store is unreachable,
	// not that the statement was bad.
	var netErr net.Error
	if errors.As(err, &netErr) {
		return apperror.NewUnavailable(err).WithDetail("entity", entity)
	}

	return apperror.NewDatabase(err).WithDetail("entity", entity)
}

// constraintField extracts the offending column name when the server
// reports one, falling back to the constraint name.
func constraintField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	return pgErr.ConstraintName
}
