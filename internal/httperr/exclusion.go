package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// exclusionViolation é o SQLSTATE de violação de exclusion constraint
// (a constraint appointments_no_overlap, criada em internal/db).
const exclusionViolation = "23P01"

// IsExclusionConflict detecta quando o Postgres barrou um insert por
// sobreposição de intervalo. É a segunda linha de defesa contra
// double-booking, atrás do lock transacional do repositório.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == exclusionViolation
}
