package sqlxrepos

import (
	"database/sql"

	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core/attendance"
)

type scheduleRow struct {
	ID        string `db:"id"`
	SubjectID string `db:"subject_id"`
	Weekday   int    `db:"weekday"`
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
	Title     string `db:"title"`
}

func (r scheduleRow) schedule() attendance.WeeklySchedule {
	return attendance.WeeklySchedule(r)
}

func schedulesFromRows(rows []scheduleRow) []attendance.WeeklySchedule {
	schedules := make([]attendance.WeeklySchedule, 0, len(rows))
	for _, row := range rows {
		schedules = append(schedules, row.schedule())
	}
	return schedules
}

func (repo *repository) CreateWeeklySchedule(sch attendance.WeeklySchedule) (attendance.WeeklySchedule, error) {
	query := `INSERT INTO weekly_schedule (id, subject_id, weekday, start_time, end_time, title)
		VALUES (:id, :subject_id, :weekday, :start_time, :end_time, :title)`
	if _, err := repo.db.NamedExec(query, scheduleRow(sch)); err != nil {
		return attendance.WeeklySchedule{}, errors.Wrap(err, "creating weekly schedule")
	}
	return sch, nil
}

func (repo *repository) QueryAllWeeklySchedules() ([]attendance.WeeklySchedule, error) {
	var rows []scheduleRow
	if err := repo.db.Select(&rows, `SELECT * FROM weekly_schedule`); err != nil {
		return nil, errors.Wrap(err, "querying weekly schedules")
	}
	return schedulesFromRows(rows), nil
}

func (repo *repository) GetWeeklyScheduleByID(id string) (attendance.WeeklySchedule, error) {
	var row scheduleRow
	if err := repo.db.Get(&row, `SELECT * FROM weekly_schedule WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return attendance.WeeklySchedule{}, attendance.ErrScheduleNotFound
		}
		return attendance.WeeklySchedule{}, errors.Wrap(err, "getting weekly schedule")
	}
	return row.schedule(), nil
}

func (repo *repository) GetWeeklySchedulesBySubject(subjectID string) ([]attendance.WeeklySchedule, error) {
	var rows []scheduleRow
	if err := repo.db.Select(&rows, `SELECT * FROM weekly_schedule WHERE subject_id = $1`, subjectID); err != nil {
		return nil, errors.Wrap(err, "querying weekly schedules by subject")
	}
	return schedulesFromRows(rows), nil
}

func (repo *repository) UpdateWeeklySchedule(sch attendance.WeeklySchedule) (attendance.WeeklySchedule, error) {
	query := `UPDATE weekly_schedule SET subject_id = :subject_id, weekday = :weekday,
		start_time = :start_time, end_time = :end_time, title = :title
		WHERE id = :id`
	res, err := repo.db.NamedExec(query, scheduleRow(sch))
	if err != nil {
		return attendance.WeeklySchedule{}, errors.Wrap(err, "updating weekly schedule")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return attendance.WeeklySchedule{}, attendance.ErrScheduleNotFound
	}
	return sch, nil
}

func (repo *repository) DeleteWeeklySchedule(id string) (bool, error) {
	res, err := repo.db.Exec(`DELETE FROM weekly_schedule WHERE id = $1`, id)
	if err != nil {
		return false, errors.Wrap(err, "deleting weekly schedule")
	}
	return rowsDeleted(res)
}

func (repo *repository) DeleteWeeklySchedulesBySubject(subjectID string) error {
	if _, err := repo.db.Exec(`DELETE FROM weekly_schedule WHERE subject_id = $1`, subjectID); err != nil {
		return errors.Wrap(err, "deleting weekly schedules by subject")
	}
	return nil
}
