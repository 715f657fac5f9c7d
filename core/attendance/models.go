package attendance

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/mahudhurio/core"
)

// Attendance statuses recordable on a Lecture. A lecture with no status has
// not had attendance marked yet.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusExcused = "excused"
)

// Task priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// DefaultSubjectColor is assigned when a subject is created without a color.
const DefaultSubjectColor = "#0ea5a0"

// DateLayout is the calendar date format used throughout: naive local dates,
// no time-of-day, no timezone.
const DateLayout = "2006-01-02"

type Subject struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Code    string  `json:"code"`
	Teacher *string `json:"teacher"`
	Color   string  `json:"color"`
}

// NormalizedCode is the uniqueness key for a subject code: trimmed and case-folded.
func (s Subject) NormalizedCode() string {
	return core.CleanString(s.Code, true /* lower */)
}

type Lecture struct {
	ID             string  `json:"id"`
	SubjectID      string  `json:"subject_id"`
	Title          string  `json:"title"`
	Date           string  `json:"date"`       // YYYY-MM-DD
	StartTime      string  `json:"start_time"` // HH:MM, local
	EndTime        string  `json:"end_time"`   // HH:MM, local
	Notes          *string `json:"notes"`
	Status         *string `json:"status"`
	AttendanceNote *string `json:"attendance_note"`
	ScheduleID     *string `json:"schedule_id"` // set when generated from a WeeklySchedule
}

// Key returns the natural dedup key of a lecture. Two lectures with the same
// key are considered the same occurrence; generation never creates a second one.
func (l Lecture) Key() LectureKey {
	return LectureKey{
		SubjectID: l.SubjectID,
		Date:      l.Date,
		StartTime: l.StartTime,
		EndTime:   l.EndTime,
	}
}

// LectureKey identifies a concrete lecture occurrence: (subject, date, start, end).
type LectureKey struct {
	SubjectID string
	Date      string
	StartTime string
	EndTime   string
}

// WeeklySchedule is a recurring weekly commitment, not a concrete event.
// Weekday follows time.Weekday numbering: 0=Sunday .. 6=Saturday.
type WeeklySchedule struct {
	ID        string `json:"id"`
	SubjectID string `json:"subject_id"`
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Title     string `json:"title"`
}

// Task is a dated to-do item. Its subject link is soft: deleting the subject
// clears SubjectID but keeps the task.
type Task struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Date        string  `json:"date"`
	Time        *string `json:"time"`
	Priority    *string `json:"priority"`
	Completed   string  `json:"completed"` // "true" | "false"
	SubjectID   *string `json:"subject_id"`
}

// Statistics is a read-only derivation over the lecture and subject collections.
type Statistics struct {
	TotalLectures        int             `json:"total_lectures"`
	AttendedLectures     int             `json:"attended_lectures"`
	MissedLectures       int             `json:"missed_lectures"`
	AttendancePercentage float64         `json:"attendance_percentage"`
	Breakdown            StatusBreakdown `json:"breakdown"`
	Subjects             int             `json:"subjects"`
}

type StatusBreakdown struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	Excused int `json:"excused"`
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Name    string  `json:"name" validate:"required"`
	Code    string  `json:"code" validate:"required"`
	Teacher *string `json:"teacher"`
	Color   string  `json:"color" validate:"omitempty,hexcolor"`
}

func (ns *NewSubject) Validate(validate *validator.Validate, svc ServiceInterface) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Code = core.CleanString(ns.Code)
	ns.Teacher = cleanOptional(ns.Teacher)
	ns.Color = core.CleanString(ns.Color, true /* lower */)
	if ns.Color == "" {
		ns.Color = DefaultSubjectColor
	}

	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckCodeUniqueness(ns.Code)
}

// UpdateSubject defines what information may be provided to modify an existing
// Subject. Absent fields retain their previous value; for the nullable Teacher
// field an empty string clears it (a JSON null binds the same as an absent
// field, so the empty string is the clearing form).
type UpdateSubject struct {
	Name    *string `json:"name"`
	Code    *string `json:"code"`
	Teacher *string `json:"teacher"`
	Color   *string `json:"color" validate:"omitempty,hexcolor"`
}

func (us *UpdateSubject) Validate(origSub Subject, validate *validator.Validate, svc ServiceInterface) error {
	us.Name = cleanProvided(us.Name)
	us.Code = cleanProvided(us.Code)
	us.Teacher = cleanProvided(us.Teacher) // empty string clears on apply
	if us.Color != nil {
		lowered := core.CleanString(*us.Color, true /* lower */)
		us.Color = &lowered
	}

	if err := validate.Struct(us); err != nil {
		return err
	}
	if us.Code != nil && *us.Code != "" {
		return svc.CheckCodeUniqueness(*us.Code, origSub)
	}
	return nil
}

// NewLecture contains information needed to create a new Lecture.
type NewLecture struct {
	SubjectID      string  `json:"subject_id" validate:"required"`
	Title          string  `json:"title" validate:"required"`
	Date           string  `json:"date" validate:"required,isodate"`
	StartTime      string  `json:"start_time" validate:"required,hhmm"`
	EndTime        string  `json:"end_time" validate:"required,hhmm"`
	Notes          *string `json:"notes"`
	Status         *string `json:"status" validate:"omitempty,oneof=present absent late excused"`
	AttendanceNote *string `json:"attendance_note"`
	ScheduleID     *string `json:"schedule_id"`
}

func (nl *NewLecture) Validate(validate *validator.Validate, svc ServiceInterface) error {
	nl.SubjectID = core.CleanString(nl.SubjectID)
	nl.Title = core.CleanString(nl.Title)
	nl.Date = core.CleanString(nl.Date)
	nl.StartTime = core.CleanString(nl.StartTime)
	nl.EndTime = core.CleanString(nl.EndTime)
	nl.Notes = cleanOptional(nl.Notes)
	nl.Status = cleanOptional(nl.Status)
	nl.AttendanceNote = cleanOptional(nl.AttendanceNote)
	nl.ScheduleID = cleanOptional(nl.ScheduleID)

	if err := validate.Struct(nl); err != nil {
		return err
	}
	return svc.CheckSubjectExists(nl.SubjectID)
}

// UpdateLecture defines what information may be provided to modify an existing
// Lecture. For nullable fields an empty string clears the value (unmarks
// attendance, removes notes); a JSON null binds the same as an absent field.
type UpdateLecture struct {
	SubjectID      *string `json:"subject_id"`
	Title          *string `json:"title"`
	Date           *string `json:"date" validate:"omitempty,isodate"`
	StartTime      *string `json:"start_time" validate:"omitempty,hhmm"`
	EndTime        *string `json:"end_time" validate:"omitempty,hhmm"`
	Notes          *string `json:"notes"`
	Status         *string `json:"status" validate:"omitempty,oneof=present absent late excused"`
	AttendanceNote *string `json:"attendance_note"`
}

func (ul *UpdateLecture) Validate(validate *validator.Validate, svc ServiceInterface) error {
	ul.SubjectID = cleanProvided(ul.SubjectID)
	ul.Title = cleanProvided(ul.Title)
	ul.Date = cleanProvided(ul.Date)
	ul.StartTime = cleanProvided(ul.StartTime)
	ul.EndTime = cleanProvided(ul.EndTime)

	if err := validate.Struct(ul); err != nil {
		return err
	}
	if ul.SubjectID != nil && *ul.SubjectID != "" {
		return svc.CheckSubjectExists(*ul.SubjectID)
	}
	return nil
}

// NewWeeklySchedule contains information needed to create a new WeeklySchedule.
type NewWeeklySchedule struct {
	SubjectID string `json:"subject_id" validate:"required"`
	Weekday   *int   `json:"weekday" validate:"required,gte=0,lte=6"`
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" validate:"required,hhmm"`
	Title     string `json:"title" validate:"required"`
}

func (ns *NewWeeklySchedule) Validate(validate *validator.Validate, svc ServiceInterface) error {
	ns.SubjectID = core.CleanString(ns.SubjectID)
	ns.Title = core.CleanString(ns.Title)
	ns.StartTime = core.CleanString(ns.StartTime)
	ns.EndTime = core.CleanString(ns.EndTime)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckSubjectExists(ns.SubjectID)
}

// UpdateWeeklySchedule defines what information may be provided to modify an
// existing WeeklySchedule.
type UpdateWeeklySchedule struct {
	SubjectID *string `json:"subject_id"`
	Weekday   *int    `json:"weekday" validate:"omitempty,gte=0,lte=6"`
	StartTime *string `json:"start_time" validate:"omitempty,hhmm"`
	EndTime   *string `json:"end_time" validate:"omitempty,hhmm"`
	Title     *string `json:"title"`
}

func (us *UpdateWeeklySchedule) Validate(validate *validator.Validate, svc ServiceInterface) error {
	us.SubjectID = cleanProvided(us.SubjectID)
	us.Title = cleanProvided(us.Title)
	us.StartTime = cleanProvided(us.StartTime)
	us.EndTime = cleanProvided(us.EndTime)

	if err := validate.Struct(us); err != nil {
		return err
	}
	if us.SubjectID != nil && *us.SubjectID != "" {
		return svc.CheckSubjectExists(*us.SubjectID)
	}
	return nil
}

// NewTask contains information needed to create a new Task.
type NewTask struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Date        string  `json:"date" validate:"required,isodate"`
	Time        *string `json:"time" validate:"omitempty,hhmm"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Completed   string  `json:"completed" validate:"omitempty,oneof=true false"`
	SubjectID   *string `json:"subject_id"`
}

func (nt *NewTask) Validate(validate *validator.Validate, svc ServiceInterface) error {
	nt.Title = core.CleanString(nt.Title)
	nt.Date = core.CleanString(nt.Date)
	nt.Description = cleanOptional(nt.Description)
	nt.Time = cleanOptional(nt.Time)
	nt.Priority = cleanOptional(nt.Priority)
	nt.SubjectID = cleanOptional(nt.SubjectID)
	if nt.Completed == "" {
		nt.Completed = "false"
	}

	if err := validate.Struct(nt); err != nil {
		return err
	}
	if nt.SubjectID != nil {
		return svc.CheckSubjectExists(*nt.SubjectID)
	}
	return nil
}

// UpdateTask defines what information may be provided to modify an existing
// Task. For nullable fields an empty string clears the value; a JSON null
// binds the same as an absent field.
type UpdateTask struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date" validate:"omitempty,isodate"`
	Time        *string `json:"time" validate:"omitempty,hhmm"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Completed   *string `json:"completed" validate:"omitempty,oneof=true false"`
	SubjectID   *string `json:"subject_id"`
}

func (ut *UpdateTask) Validate(validate *validator.Validate, svc ServiceInterface) error {
	ut.Title = cleanProvided(ut.Title)
	ut.Date = cleanProvided(ut.Date)

	if err := validate.Struct(ut); err != nil {
		return err
	}
	if ut.SubjectID != nil {
		if id := core.CleanString(*ut.SubjectID); id != "" {
			return svc.CheckSubjectExists(id)
		}
	}
	return nil
}

// GenerateLecturesInput is the date range for schedule expansion; both bounds
// are inclusive calendar dates.
type GenerateLecturesInput struct {
	StartDate string `json:"start_date" validate:"required,isodate"`
	EndDate   string `json:"end_date" validate:"required,isodate"`
}

func (gi *GenerateLecturesInput) Validate(validate *validator.Validate) error {
	gi.StartDate = core.CleanString(gi.StartDate)
	gi.EndDate = core.CleanString(gi.EndDate)

	if err := validate.Struct(gi); err != nil {
		return err
	}
	start, _ := time.Parse(DateLayout, gi.StartDate)
	end, _ := time.Parse(DateLayout, gi.EndDate)
	if start.After(end) {
		return core.NewValidationError(nil, core.FieldError{Field: "end_date", Error: "end date cannot be before start date"})
	}
	return nil
}

// cleanOptional trims an optional string; empty collapses to nil.
func cleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := core.CleanString(*s)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// cleanProvided trims a patch field, preserving the provided/absent distinction.
func cleanProvided(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := core.CleanString(*s)
	return &cleaned
}
