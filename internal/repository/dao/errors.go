package dao

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEntityNotFound        = errors.New("entity not found")
	ErrEntityNameExists      = errors.New("entity name already exists")
	ErrManagerNotFound       = errors.New("manager not found")
	ErrManagerUsernameExists = errors.New("manager username already exists for this entity")
	ErrProjectNotFound       = errors.New("project not found")
	ErrRaffleSetNotFound     = errors.New("raffle set not found")
	ErrRaffleNotFound        = errors.New("raffle not found")
	ErrRaffleNotSellable     = errors.New("raffle is not available for sale")
	ErrBuyerNotFound         = errors.New("buyer not found")
	ErrBuyerExists           = errors.New("buyer with this name and phone already exists")
	ErrDeleteFailed          = errors.New("delete failed")
	ErrStoreUnavailable      = errors.New("store unavailable")
)

// allocRetries bounds how often an insert re-reads its scoped counter after
// losing an allocation race to a concurrent creator.
const allocRetries = 3

// uniqueViolation reports whether err is a uniqueness violation and returns
// a description of the violated constraint. Postgres reports the constraint
// name; sqlite (used by the unit tests) reports the column list instead, so
// callers match on substrings present in both.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgerrcode.UniqueViolation {
			return pgErr.ConstraintName, true
		}

		return "", false
	}

	if msg := err.Error(); strings.Contains(msg, "UNIQUE constraint failed") {
		return msg, true
	}

	return "", false
}

// storeErr marks an unclassified store error as retryable for callers while
// keeping the original message.
func storeErr(err error) error {
	return fmt.Errorf("%w -> %v", ErrStoreUnavailable, err)
}
