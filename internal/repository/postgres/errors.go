package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

// integrityViolation is the SQLSTATE class for constraint failures
const integrityViolation = "23"

// wrapWriteError annotates err and marks integrity violations with
// domain.ErrConstraint so callers can tell them apart from store failures.
func wrapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 && pgErr.Code[:2] == integrityViolation {
		return fmt.Errorf("failed to %s: %w: %s", op, domain.ErrConstraint, pgErr.Message)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
