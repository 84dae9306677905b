package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// sortColumn devuelve la columna de orden si está en la lista blanca; si no,
// la de por defecto. El nombre se interpola en el SQL, por eso la lista blanca.
func sortColumn(sort string, allowed map[string]string, def string) string {
	if col, ok := allowed[sort]; ok {
		return col
	}
	return def
}

// sortOrder normaliza asc/desc (desc por defecto solo si se pide explícito).
func sortOrder(order string) string {
	if strings.EqualFold(order, "desc") {
		return "DESC"
	}
	return "ASC"
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}
