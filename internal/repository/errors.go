package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgErrorCode возвращает SQLSTATE ошибки postgres или пустую строку
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == pgerrcode.ForeignKeyViolation
}
