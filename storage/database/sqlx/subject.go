package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/mahudhurio/core/attendance"
)

type subjectRow struct {
	ID      string      `db:"id"`
	Name    string      `db:"name"`
	Code    string      `db:"code"`
	Teacher null.String `db:"teacher"`
	Color   string      `db:"color"`
}

func (r subjectRow) subject() attendance.Subject {
	return attendance.Subject{
		ID:      r.ID,
		Name:    r.Name,
		Code:    r.Code,
		Teacher: r.Teacher.Ptr(),
		Color:   r.Color,
	}
}

func newSubjectRow(sub attendance.Subject) subjectRow {
	return subjectRow{
		ID:      sub.ID,
		Name:    sub.Name,
		Code:    sub.Code,
		Teacher: null.StringFromPtr(sub.Teacher),
		Color:   sub.Color,
	}
}

func (repo *repository) CheckCodeUniqueness(code string, excludedSubjects ...attendance.Subject) error {
	query := `SELECT EXISTS (SELECT 1 FROM subject WHERE lower(btrim(code)) = lower(btrim(?)))`
	args := []interface{}{code}
	if len(excludedSubjects) > 0 {
		ids := make([]string, 0, len(excludedSubjects))
		for _, sub := range excludedSubjects {
			ids = append(ids, sub.ID)
		}
		query = `SELECT EXISTS (SELECT 1 FROM subject WHERE lower(btrim(code)) = lower(btrim(?)) AND id NOT IN (?))`
		var err error
		if query, args, err = sqlx.In(query, code, ids); err != nil {
			return errors.Wrap(err, "checking code uniqueness")
		}
	}

	var exists bool
	if err := repo.db.Get(&exists, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "checking code uniqueness")
	}
	if exists {
		return attendance.ErrCodeExists
	}
	return nil
}

func (repo *repository) CreateSubject(sub attendance.Subject) (attendance.Subject, error) {
	query := `INSERT INTO subject (id, name, code, teacher, color)
		VALUES (:id, :name, :code, :teacher, :color)`
	if _, err := repo.db.NamedExec(query, newSubjectRow(sub)); err != nil {
		return attendance.Subject{}, errors.Wrap(err, "creating subject")
	}
	return sub, nil
}

func (repo *repository) QueryAllSubjects() ([]attendance.Subject, error) {
	var rows []subjectRow
	if err := repo.db.Select(&rows, `SELECT * FROM subject`); err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	subjects := make([]attendance.Subject, 0, len(rows))
	for _, row := range rows {
		subjects = append(subjects, row.subject())
	}
	return subjects, nil
}

func (repo *repository) GetSubjectByID(id string) (attendance.Subject, error) {
	var row subjectRow
	if err := repo.db.Get(&row, `SELECT * FROM subject WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return attendance.Subject{}, attendance.ErrSubjectNotFound
		}
		return attendance.Subject{}, errors.Wrap(err, "getting subject")
	}
	return row.subject(), nil
}

func (repo *repository) UpdateSubject(sub attendance.Subject) (attendance.Subject, error) {
	query := `UPDATE subject SET name = :name, code = :code, teacher = :teacher, color = :color
		WHERE id = :id`
	res, err := repo.db.NamedExec(query, newSubjectRow(sub))
	if err != nil {
		return attendance.Subject{}, errors.Wrap(err, "updating subject")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return attendance.Subject{}, attendance.ErrSubjectNotFound
	}
	return sub, nil
}

func (repo *repository) DeleteSubject(id string) (bool, error) {
	res, err := repo.db.Exec(`DELETE FROM subject WHERE id = $1`, id)
	if err != nil {
		return false, errors.Wrap(err, "deleting subject")
	}
	return rowsDeleted(res)
}
