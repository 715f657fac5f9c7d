package sqlxrepos

import (
	"database/sql"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/mahudhurio/core/attendance"
)

type taskRow struct {
	ID          string      `db:"id"`
	Title       string      `db:"title"`
	Description null.String `db:"description"`
	Date        string      `db:"date"`
	Time        null.String `db:"time"`
	Priority    null.String `db:"priority"`
	Completed   string      `db:"completed"`
	SubjectID   null.String `db:"subject_id"`
}

func (r taskRow) task() attendance.Task {
	return attendance.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description.Ptr(),
		Date:        r.Date,
		Time:        r.Time.Ptr(),
		Priority:    r.Priority.Ptr(),
		Completed:   r.Completed,
		SubjectID:   r.SubjectID.Ptr(),
	}
}

func newTaskRow(tsk attendance.Task) taskRow {
	return taskRow{
		ID:          tsk.ID,
		Title:       tsk.Title,
		Description: null.StringFromPtr(tsk.Description),
		Date:        tsk.Date,
		Time:        null.StringFromPtr(tsk.Time),
		Priority:    null.StringFromPtr(tsk.Priority),
		Completed:   tsk.Completed,
		SubjectID:   null.StringFromPtr(tsk.SubjectID),
	}
}

func tasksFromRows(rows []taskRow) []attendance.Task {
	tasks := make([]attendance.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.task())
	}
	return tasks
}

func (repo *repository) CreateTask(tsk attendance.Task) (attendance.Task, error) {
	query := `INSERT INTO task (id, title, description, date, time, priority, completed, subject_id)
		VALUES (:id, :title, :description, :date, :time, :priority, :completed, :subject_id)`
	if _, err := repo.db.NamedExec(query, newTaskRow(tsk)); err != nil {
		return attendance.Task{}, errors.Wrap(err, "creating task")
	}
	return tsk, nil
}

func (repo *repository) QueryAllTasks() ([]attendance.Task, error) {
	var rows []taskRow
	if err := repo.db.Select(&rows, `SELECT * FROM task`); err != nil {
		return nil, errors.Wrap(err, "querying tasks")
	}
	return tasksFromRows(rows), nil
}

func (repo *repository) GetTaskByID(id string) (attendance.Task, error) {
	var row taskRow
	if err := repo.db.Get(&row, `SELECT * FROM task WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return attendance.Task{}, attendance.ErrTaskNotFound
		}
		return attendance.Task{}, errors.Wrap(err, "getting task")
	}
	return row.task(), nil
}

func (repo *repository) GetTasksByDate(date string) ([]attendance.Task, error) {
	var rows []taskRow
	if err := repo.db.Select(&rows, `SELECT * FROM task WHERE date = $1`, date); err != nil {
		return nil, errors.Wrap(err, "querying tasks by date")
	}
	return tasksFromRows(rows), nil
}

func (repo *repository) UpdateTask(tsk attendance.Task) (attendance.Task, error) {
	query := `UPDATE task SET title = :title, description = :description, date = :date,
		time = :time, priority = :priority, completed = :completed, subject_id = :subject_id
		WHERE id = :id`
	res, err := repo.db.NamedExec(query, newTaskRow(tsk))
	if err != nil {
		return attendance.Task{}, errors.Wrap(err, "updating task")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return attendance.Task{}, attendance.ErrTaskNotFound
	}
	return tsk, nil
}

func (repo *repository) DeleteTask(id string) (bool, error) {
	res, err := repo.db.Exec(`DELETE FROM task WHERE id = $1`, id)
	if err != nil {
		return false, errors.Wrap(err, "deleting task")
	}
	return rowsDeleted(res)
}

func (repo *repository) ClearTaskSubject(subjectID string) error {
	if _, err := repo.db.Exec(`UPDATE task SET subject_id = NULL WHERE subject_id = $1`, subjectID); err != nil {
		return errors.Wrap(err, "clearing task subject")
	}
	return nil
}
