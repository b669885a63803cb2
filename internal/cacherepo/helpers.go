package cacherepo

import (
	"database/sql"
	"errors"
	"time"
)

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// notFoundToNil turns sql.ErrNoRows into a (nil, nil) result, matching
// the cache's "miss is not an error" contract throughout C7.
func notFoundToNil(err error) error {
	if isNoRows(err) {
		return nil
	}
	return err
}

// nowFunc is overridable in tests.
var nowFunc = time.Now
