// Package sqlxrepos implements the attendance store on PostgreSQL via sqlx.
// The schema lives in fs/migrations and is applied with goose.
package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core/attendance"
)

type repository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*repository)(nil) // interface compliance check

func NewRepository(db *sqlx.DB) attendance.Repository {
	return &repository{db: db}
}

func rowsDeleted(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "checking affected rows")
	}
	return n > 0, nil
}
