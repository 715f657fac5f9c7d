package attendance

import (
	"errors"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/mahudhurio/core"
)

var (
	// errors
	ErrSubjectNotFound  = errors.New("subject not found")
	ErrLectureNotFound  = errors.New("lecture not found")
	ErrScheduleNotFound = errors.New("weekly schedule not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrCodeExists       = errors.New("a subject with this code already exists")
)

// IsNotFound reports whether err is one of the entity not-found errors.
func IsNotFound(err error) bool {
	switch err {
	case ErrSubjectNotFound, ErrLectureNotFound, ErrScheduleNotFound, ErrTaskNotFound:
		return true
	}
	return false
}

type (
	// Repository is the entity store contract. Any keyed store satisfies it;
	// the service owns invariant checking and cross-collection consistency.
	Repository interface {
		// CheckCodeUniqueness fails with ErrCodeExists if a subject other than
		// the excluded ones holds the same normalized code.
		CheckCodeUniqueness(code string, excludedSubjects ...Subject) error
		CreateSubject(sub Subject) (Subject, error)
		QueryAllSubjects() ([]Subject, error)
		GetSubjectByID(id string) (Subject, error)
		UpdateSubject(sub Subject) (Subject, error)
		DeleteSubject(id string) (bool, error)

		CreateLecture(lec Lecture) (Lecture, error)
		QueryAllLectures() ([]Lecture, error)
		GetLectureByID(id string) (Lecture, error)
		GetLecturesBySubject(subjectID string) ([]Lecture, error)
		UpdateLecture(lec Lecture) (Lecture, error)
		DeleteLecture(id string) (bool, error)
		DeleteLecturesBySubject(subjectID string) error

		CreateWeeklySchedule(sch WeeklySchedule) (WeeklySchedule, error)
		QueryAllWeeklySchedules() ([]WeeklySchedule, error)
		GetWeeklyScheduleByID(id string) (WeeklySchedule, error)
		GetWeeklySchedulesBySubject(subjectID string) ([]WeeklySchedule, error)
		UpdateWeeklySchedule(sch WeeklySchedule) (WeeklySchedule, error)
		DeleteWeeklySchedule(id string) (bool, error)
		DeleteWeeklySchedulesBySubject(subjectID string) error

		CreateTask(tsk Task) (Task, error)
		QueryAllTasks() ([]Task, error)
		GetTaskByID(id string) (Task, error)
		GetTasksByDate(date string) ([]Task, error)
		UpdateTask(tsk Task) (Task, error)
		DeleteTask(id string) (bool, error)
		// ClearTaskSubject nulls the subject link on every task referencing
		// subjectID; the tasks themselves survive.
		ClearTaskSubject(subjectID string) error
	}

	ServiceInterface interface {
		CheckCodeUniqueness(code string, excludedSubjects ...Subject) error
		CheckSubjectExists(id string) error

		CreateSubject(ns NewSubject) (Subject, error)
		QueryAllSubjects() ([]Subject, error)
		GetSubject(id string) (Subject, error)
		UpdateSubject(id string, us UpdateSubject) (Subject, error)
		DeleteSubject(id string) (bool, error)

		CreateLecture(nl NewLecture) (Lecture, error)
		QueryAllLectures() ([]Lecture, error)
		GetLecture(id string) (Lecture, error)
		GetLecturesBySubject(subjectID string) ([]Lecture, error)
		UpdateLecture(id string, ul UpdateLecture) (Lecture, error)
		DeleteLecture(id string) (bool, error)

		CreateWeeklySchedule(ns NewWeeklySchedule) (WeeklySchedule, error)
		QueryAllWeeklySchedules() ([]WeeklySchedule, error)
		GetWeeklySchedule(id string) (WeeklySchedule, error)
		GetWeeklySchedulesBySubject(subjectID string) ([]WeeklySchedule, error)
		UpdateWeeklySchedule(id string, us UpdateWeeklySchedule) (WeeklySchedule, error)
		DeleteWeeklySchedule(id string) (bool, error)
		GenerateLectures(startDate, endDate string) ([]Lecture, error)

		CreateTask(nt NewTask) (Task, error)
		QueryAllTasks() ([]Task, error)
		GetTask(id string) (Task, error)
		GetTasksByDate(date string) ([]Task, error)
		UpdateTask(id string, ut UpdateTask) (Task, error)
		DeleteTask(id string) (bool, error)

		Statistics() (Statistics, error)
	}

	Service struct {
		// One exclusive lock around the whole store: mutations (including the
		// multi-entity cascade and the generation loop) run to completion
		// before any read observes their effects.
		mutex sync.RWMutex
		repo  Repository
		bus   core.EventBus
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, bus core.EventBus) *Service {
	return &Service{repo: repo, bus: bus}
}

func (svc *Service) publish(eventType string) {
	if svc.bus != nil {
		svc.bus.Publish(eventType)
	}
}

func (svc *Service) CheckCodeUniqueness(code string, excludedSubjects ...Subject) error {
	if err := svc.repo.CheckCodeUniqueness(code, excludedSubjects...); err != nil {
		if err == ErrCodeExists {
			return core.NewValidationError(err, core.FieldError{Field: "code", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) CheckSubjectExists(id string) error {
	if _, err := svc.repo.GetSubjectByID(id); err != nil {
		if err == ErrSubjectNotFound {
			return core.NewValidationError(err, core.FieldError{Field: "subject_id", Error: err.Error()})
		}
		return err
	}
	return nil
}

// Subjects

func (svc *Service) CreateSubject(ns NewSubject) (Subject, error) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	// re-check under the store lock; Validate ran outside it
	if err := svc.CheckCodeUniqueness(ns.Code); err != nil {
		return Subject{}, err
	}
	sub := Subject{
		ID:      uuid.New().String(),
		Name:    ns.Name,
		Code:    ns.Code,
		Teacher: ns.Teacher,
		Color:   ns.Color,
	}
	sub, err := svc.repo.CreateSubject(sub)
	if err != nil {
		return Subject{}, err
	}
	svc.publish(core.EventSubjects)
	return sub, nil
}

func (svc *Service) QueryAllSubjects() ([]Subject, error) {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	return svc.repo.QueryAllSubjects()
}

func (svc *Service) GetSubject(id string) (Subject, error) {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	return svc.repo.GetSubjectByID(id)
}

func (svc *Service) UpdateSubject(id string, us UpdateSubject) (Subject, error) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	sub, err := svc.repo.GetSubjectByID(id)
	if err != nil {
		return Subject{}, err
	}
	if us.Code != nil && *us.Code != "" {
		if err = svc.CheckCodeUniqueness(*us.Code, sub); err != nil {
			return Subject{}, err
		}
		sub.Code = *us.Code
	}
	if us.Name != nil && *us.Name != "" {
		sub.Name = *us.Name
	}
	if us.Teacher != nil {
		sub.Teacher = optString(*us.Teacher)
	}
	if us.Color != nil && *us.Color != "" {
		sub.Color = *us.Color
	}

	sub, err = svc.repo.UpdateSubject(sub)
	if err != nil {
		return Subject{}, err
	}
	svc.publish(core.EventSubjects)
	return sub, nil
}

// DeleteSubject removes a subject and keeps the other collections consistent:
// its lectures and weekly schedules are hard-deleted and its tasks get their
// subject link nulled, all before this returns. Absent id is a no-op (false).
func (svc *Service) DeleteSubject(id string) (bool, error) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	if _, err := svc.repo.GetSubjectByID(id); err != nil {
		if err == ErrSubjectNotFound {
			return false, nil
		}
		return false, err
	}

	// cascade; a failure mid-way is fatal for this store (not retried)
	if err := svc.repo.DeleteLecturesBySubject(id); err != nil {
		return false, err
	}
	if err := svc.repo.DeleteWeeklySchedulesBySubject(id); err != nil {
		return false, err
	}
	if err := svc.repo.ClearTaskSubject(id); err != nil {
		return false, err
	}
	deleted, err := svc.repo.DeleteSubject(id)
	if err != nil {
		return false, err
	}
	svc.publish(core.EventSubjects)
	return deleted, nil
}

// Lectures

func (svc *Service) CreateLecture(nl NewLecture) (Lecture, error) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	lec := Lecture{
		ID:             uuid.New().String(),
		SubjectID:      nl.SubjectID,
		Title:          nl.Title,
		Date:           nl.Date,
		StartTime:      nl.StartTime,
		EndTime:        nl.EndTime,
		Notes:          nl.Notes,
		Status:         nl.Status,
		AttendanceNote: nl.AttendanceNote,
		ScheduleID:     nl.ScheduleID,
	}
	lec, err := svc.repo.CreateLecture(lec)
	if err != nil {
		return Lecture{}, err
	}
	svc.publish(core.EventLectures)
	return lec, nil
}

func (svc *Service) QueryAllLectures() ([]Lecture, error) {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	return svc.repo.QueryAllLectures()
}

func (svc *Service) GetLecture(id string) (Lecture, error) {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	return svc.repo.GetLectureByID(id)
}

func (svc *Service) GetLecturesBySubject(subjectID string) ([]Lecture, error) {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	return svc.repo.GetLecturesBySubject(subjectID)
}

func (svc *Service) UpdateLecture(id string, ul UpdateLecture) (Lecture, error) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	lec, err := svc.repo.GetLectureByID(id)
	if err != nil {
		return Lecture{}, err
	}
	if ul.SubjectID != nil && *ul.SubjectID != "" {
		lec.SubjectID = *ul.SubjectID
	}
	if ul.Title != nil && *ul.Title != "" {
		lec.Title = *ul.Title
	}
	if ul.Date != nil && *ul.Date != "" {
		lec.Date = *ul.Date
	}
	if ul.StartTime != nil && *ul.StartTime != "" {
		lec.StartTime = *ul.StartTime
	}
	if ul.EndTime != nil && *ul.EndTime != "" {
		lec.EndTime = *ul.EndTime
	}
	if ul.Notes != nil {
		lec.Notes = optString(*ul.Notes)
	}
	if ul.Status != nil {
		lec.Status = optString(*ul.Status)
	}
	if ul.AttendanceNote != nil {
		lec.AttendanceNote = optString(*ul.AttendanceNote)
	}

	lec, err = svc.repo.UpdateLecture(lec)
	if err != nil {
		return Lecture{}, err
	}
	svc.publish(core.EventLectures)
	return lec, nil
}

func (svc *Service) DeleteLecture(id string) (bool, error) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	deleted, err := svc.repo.DeleteLecture(id)
	if err != nil {
		return false, err
	}
	if deleted {
		svc.publish(core.EventLectures)
	}
	return deleted, nil
}

// Weekly Schedules

func (svc *Service) CreateWeeklySchedule(ns NewWeeklySchedule) (WeeklySchedule, error) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	sch := WeeklySchedule{
		ID:        uuid.New().String(),
		SubjectID: ns.SubjectID,
		Weekday:   *ns.Weekday,
		StartTime: ns.StartTime,
		EndTime:   ns.EndTime,
		Title:     ns.Title,
	}
	sch, err := svc.repo.CreateWeeklySchedule(sch)
	if err != nil {
		return WeeklySchedule{}, err
	}
	svc.publish(core.EventWeeklySchedules)
	return sch, nil
}

func (svc *Service) QueryAllWeeklySchedules() ([]WeeklySchedule, error) {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	return svc.repo.QueryAllWeeklySchedules()
}

func (svc *Service) GetWeeklySchedule(id string) (WeeklySchedule, error) {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	return svc.repo.GetWeeklyScheduleByID(id)
}

func (svc *Service) GetWeeklySchedulesBySubject(subjectID string) ([]WeeklySchedule, error) {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	return svc.repo.GetWeeklySchedulesBySubject(subjectID)
}

func (svc *Service) UpdateWeeklySchedule(id string, us UpdateWeeklySchedule) (WeeklySchedule, error) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	sch, err := svc.repo.GetWeeklyScheduleByID(id)
	if err != nil {
		return WeeklySchedule{}, err
	}
	if us.SubjectID != nil && *us.SubjectID != "" {
		sch.SubjectID = *us.SubjectID
	}
	if us.Weekday != nil {
		sch.Weekday = *us.Weekday
	}
	if us.StartTime != nil && *us.StartTime != "" {
		sch.StartTime = *us.StartTime
	}
	if us.EndTime != nil && *us.EndTime != "" {
		sch.EndTime = *us.EndTime
	}
	if us.Title != nil && *us.Title != "" {
		sch.Title = *us.Title
	}

	sch, err = svc.repo.UpdateWeeklySchedule(sch)
	if err != nil {
		return WeeklySchedule{}, err
	}
	svc.publish(core.EventWeeklySchedules)
	return sch, nil
}

func (svc *Service) DeleteWeeklySchedule(id string) (bool, error) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	deleted, err := svc.repo.DeleteWeeklySchedule(id)
	if err != nil {
		return false, err
	}
	if deleted {
		svc.publish(core.EventWeeklySchedules)
	}
	return deleted, nil
}

// Tasks

func (svc *Service) CreateTask(nt NewTask) (Task, error) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	tsk := Task{
		ID:          uuid.New().String(),
		Title:       nt.Title,
		Description: nt.Description,
		Date:        nt.Date,
		Time:        nt.Time,
		Priority:    nt.Priority,
		Completed:   nt.Completed,
		SubjectID:   nt.SubjectID,
	}
	tsk, err := svc.repo.CreateTask(tsk)
	if err != nil {
		return Task{}, err
	}
	svc.publish(core.EventTasks)
	return tsk, nil
}

func (svc *Service) QueryAllTasks() ([]Task, error) {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	return svc.repo.QueryAllTasks()
}

func (svc *Service) GetTask(id string) (Task, error) {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	return svc.repo.GetTaskByID(id)
}

func (svc *Service) GetTasksByDate(date string) ([]Task, error) {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	return svc.repo.GetTasksByDate(date)
}

func (svc *Service) UpdateTask(id string, ut UpdateTask) (Task, error) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	tsk, err := svc.repo.GetTaskByID(id)
	if err != nil {
		return Task{}, err
	}
	if ut.Title != nil && *ut.Title != "" {
		tsk.Title = *ut.Title
	}
	if ut.Description != nil {
		tsk.Description = optString(*ut.Description)
	}
	if ut.Date != nil && *ut.Date != "" {
		tsk.Date = *ut.Date
	}
	if ut.Time != nil {
		tsk.Time = optString(*ut.Time)
	}
	if ut.Priority != nil {
		tsk.Priority = optString(*ut.Priority)
	}
	if ut.Completed != nil && *ut.Completed != "" {
		tsk.Completed = *ut.Completed
	}
	if ut.SubjectID != nil {
		tsk.SubjectID = optString(*ut.SubjectID)
	}

	tsk, err = svc.repo.UpdateTask(tsk)
	if err != nil {
		return Task{}, err
	}
	svc.publish(core.EventTasks)
	return tsk, nil
}

func (svc *Service) DeleteTask(id string) (bool, error) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	deleted, err := svc.repo.DeleteTask(id)
	if err != nil {
		return false, err
	}
	if deleted {
		svc.publish(core.EventTasks)
	}
	return deleted, nil
}

// Statistics derives attendance counts from the current lecture and subject
// collections. Attended means present or late; excused absences count in the
// breakdown but not as attended.
func (svc *Service) Statistics() (Statistics, error) {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()

	lectures, err := svc.repo.QueryAllLectures()
	if err != nil {
		return Statistics{}, err
	}
	subjects, err := svc.repo.QueryAllSubjects()
	if err != nil {
		return Statistics{}, err
	}

	stats := Statistics{
		TotalLectures: len(lectures),
		Subjects:      len(subjects),
	}
	for _, lec := range lectures {
		if lec.Status == nil {
			continue
		}
		switch *lec.Status {
		case StatusPresent:
			stats.Breakdown.Present++
		case StatusAbsent:
			stats.Breakdown.Absent++
		case StatusLate:
			stats.Breakdown.Late++
		case StatusExcused:
			stats.Breakdown.Excused++
		}
	}
	stats.AttendedLectures = stats.Breakdown.Present + stats.Breakdown.Late
	stats.MissedLectures = stats.Breakdown.Absent
	if stats.TotalLectures > 0 {
		pct := float64(stats.AttendedLectures) / float64(stats.TotalLectures) * 100
		stats.AttendancePercentage = math.Round(pct*10) / 10
	}
	return stats, nil
}

// optString maps an empty string to an unset optional field.
func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
