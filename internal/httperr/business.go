package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
)

// BusinessError is an expected failure with a stable code. Anything that is
// not a BusinessError is treated as a store/internal failure.
type BusinessError struct {
	Code    string
	Kind    Kind
	Details any
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code, Kind: KindValidation}
}

func ErrValidation(code string) error {
	return BusinessError{Code: code, Kind: KindValidation}
}

func ErrNotFound(code string) error {
	return BusinessError{Code: code, Kind: KindNotFound}
}

func ErrConflict(code string, details any) error {
	return BusinessError{Code: code, Kind: KindConflict, Details: details}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

// IsUniqueViolation reports a Postgres unique_violation (23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
