package sqlxrepos

import (
	"database/sql"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/mahudhurio/core/attendance"
)

type lectureRow struct {
	ID             string      `db:"id"`
	SubjectID      string      `db:"subject_id"`
	Title          string      `db:"title"`
	Date           string      `db:"date"`
	StartTime      string      `db:"start_time"`
	EndTime        string      `db:"end_time"`
	Notes          null.String `db:"notes"`
	Status         null.String `db:"status"`
	AttendanceNote null.String `db:"attendance_note"`
	ScheduleID     null.String `db:"schedule_id"`
}

func (r lectureRow) lecture() attendance.Lecture {
	return attendance.Lecture{
		ID:             r.ID,
		SubjectID:      r.SubjectID,
		Title:          r.Title,
		Date:           r.Date,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		Notes:          r.Notes.Ptr(),
		Status:         r.Status.Ptr(),
		AttendanceNote: r.AttendanceNote.Ptr(),
		ScheduleID:     r.ScheduleID.Ptr(),
	}
}

func newLectureRow(lec attendance.Lecture) lectureRow {
	return lectureRow{
		ID:             lec.ID,
		SubjectID:      lec.SubjectID,
		Title:          lec.Title,
		Date:           lec.Date,
		StartTime:      lec.StartTime,
		EndTime:        lec.EndTime,
		Notes:          null.StringFromPtr(lec.Notes),
		Status:         null.StringFromPtr(lec.Status),
		AttendanceNote: null.StringFromPtr(lec.AttendanceNote),
		ScheduleID:     null.StringFromPtr(lec.ScheduleID),
	}
}

func lecturesFromRows(rows []lectureRow) []attendance.Lecture {
	lectures := make([]attendance.Lecture, 0, len(rows))
	for _, row := range rows {
		lectures = append(lectures, row.lecture())
	}
	return lectures
}

func (repo *repository) CreateLecture(lec attendance.Lecture) (attendance.Lecture, error) {
	query := `INSERT INTO lecture (id, subject_id, title, date, start_time, end_time, notes, status, attendance_note, schedule_id)
		VALUES (:id, :subject_id, :title, :date, :start_time, :end_time, :notes, :status, :attendance_note, :schedule_id)`
	if _, err := repo.db.NamedExec(query, newLectureRow(lec)); err != nil {
		return attendance.Lecture{}, errors.Wrap(err, "creating lecture")
	}
	return lec, nil
}

func (repo *repository) QueryAllLectures() ([]attendance.Lecture, error) {
	var rows []lectureRow
	if err := repo.db.Select(&rows, `SELECT * FROM lecture`); err != nil {
		return nil, errors.Wrap(err, "querying lectures")
	}
	return lecturesFromRows(rows), nil
}

func (repo *repository) GetLectureByID(id string) (attendance.Lecture, error) {
	var row lectureRow
	if err := repo.db.Get(&row, `SELECT * FROM lecture WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return attendance.Lecture{}, attendance.ErrLectureNotFound
		}
		return attendance.Lecture{}, errors.Wrap(err, "getting lecture")
	}
	return row.lecture(), nil
}

func (repo *repository) GetLecturesBySubject(subjectID string) ([]attendance.Lecture, error) {
	var rows []lectureRow
	if err := repo.db.Select(&rows, `SELECT * FROM lecture WHERE subject_id = $1`, subjectID); err != nil {
		return nil, errors.Wrap(err, "querying lectures by subject")
	}
	return lecturesFromRows(rows), nil
}

func (repo *repository) UpdateLecture(lec attendance.Lecture) (attendance.Lecture, error) {
	query := `UPDATE lecture SET subject_id = :subject_id, title = :title, date = :date,
		start_time = :start_time, end_time = :end_time, notes = :notes, status = :status,
		attendance_note = :attendance_note, schedule_id = :schedule_id
		WHERE id = :id`
	res, err := repo.db.NamedExec(query, newLectureRow(lec))
	if err != nil {
		return attendance.Lecture{}, errors.Wrap(err, "updating lecture")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return attendance.Lecture{}, attendance.ErrLectureNotFound
	}
	return lec, nil
}

func (repo *repository) DeleteLecture(id string) (bool, error) {
	res, err := repo.db.Exec(`DELETE FROM lecture WHERE id = $1`, id)
	if err != nil {
		return false, errors.Wrap(err, "deleting lecture")
	}
	return rowsDeleted(res)
}

func (repo *repository) DeleteLecturesBySubject(subjectID string) error {
	if _, err := repo.db.Exec(`DELETE FROM lecture WHERE subject_id = $1`, subjectID); err != nil {
		return errors.Wrap(err, "deleting lectures by subject")
	}
	return nil
}
