package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	apperrors "menuhub/internal/errors"
)

// MySQL server error numbers.
const (
	mysqlDuplicateEntry   = 1062
	mysqlNoReferencedRow  = 1452
	mysqlNoReferencedRow1 = 1216
)

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlNoReferencedRow || mysqlErr.Number == mysqlNoReferencedRow1
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// translateWriteError maps a driver error raised by a write to the constraint it violated.
// An empty name means the operation cannot violate that kind of constraint.
func translateWriteError(err error, unique, foreign string) error {
	if err == nil {
		return nil
	}
	switch {
	case unique != "" && isUniqueViolation(err):
		return apperrors.NewConstraintError(unique, err)
	case foreign != "" && isForeignKeyViolation(err):
		return apperrors.NewConstraintError(foreign, err)
	}
	return err
}
