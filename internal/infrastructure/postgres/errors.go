package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Granja-api/internal/domain"
)

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// stockCheckSuffix nombre que PostgreSQL da a los CHECK (current_stock >= 0) de columna.
// Solo esos se traducen a stock insuficiente; el resto de CHECK es entrada inválida.
const stockCheckSuffix = "_current_stock_check"

// mapError envuelve err en un domain.StoreError conservando el SQLSTATE.
// what nombra el recurso en el mensaje (ej. "parvada").
func mapError(op, what string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return &domain.StoreError{Code: pgErr.Code, Op: op, Err: fmt.Errorf("%s: %w", what, domain.ErrDuplicate)}
	case codeForeignKeyViolation:
		return &domain.StoreError{Code: pgErr.Code, Op: op, Err: fmt.Errorf("%s tiene registros asociados o referencia inexistente: %w", what, domain.ErrConflict)}
	case codeCheckViolation:
		if strings.HasSuffix(pgErr.ConstraintName, stockCheckSuffix) {
			return &domain.StoreError{Code: pgErr.Code, Op: op, Err: fmt.Errorf("%s: %w", what, domain.ErrInsufficientStock)}
		}
		return &domain.StoreError{Code: pgErr.Code, Op: op, Err: fmt.Errorf("%s: restricción %s: %w", what, pgErr.ConstraintName, domain.ErrInvalidInput)}
	}
	return &domain.StoreError{Code: pgErr.Code, Op: op, Err: err}
}

// notFound traduce una actualización sin filas afectadas.
func notFound(what string, tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return nil
}

// isNoRows indica si QueryRow no devolvió fila.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// pgCode devuelve el SQLSTATE de err, o "" si no viene de PostgreSQL.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
