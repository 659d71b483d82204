package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/barstock-api/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	// invalid_text_representation: p. ej. un id que no es UUID.
	codeInvalidText = "22P02"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isConstraintViolation unique, FK o CHECK.
func isConstraintViolation(err error) bool {
	switch pgCode(err) {
	case codeUniqueViolation, codeForeignKeyViolation, codeCheckViolation:
		return true
	}
	return false
}

// storeErr envuelve un error del driver con domain.ErrStoreFailure (y ErrConflict si es de constraint)
// conservando la causa. Un literal mal formado es entrada inválida, no fallo del almacenamiento.
func storeErr(op string, err error) error {
	if pgCode(err) == codeInvalidText {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrInvalidInput, err)
	}
	if isConstraintViolation(err) {
		return fmt.Errorf("%s: %w: %w: %w", op, domain.ErrConflict, domain.ErrStoreFailure, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreFailure, err)
}
