package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
)

// GenerateLectures expands the weekly schedules into concrete lectures over
// [startDate, endDate], both bounds inclusive. A schedule yields one lecture
// per matching weekday unless an equal occurrence (same subject, date, start
// and end time) already exists, so re-running over an overlapping range is
// safe. Only the lectures created by this call are returned.
func (svc *Service) GenerateLectures(startDate, endDate string) ([]Lecture, error) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return nil, errors.Wrap(err, "parsing start date")
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return nil, errors.Wrap(err, "parsing end date")
	}

	schedules, err := svc.repo.QueryAllWeeklySchedules()
	if err != nil {
		return nil, err
	}
	byWeekday := make(map[int][]WeeklySchedule, len(schedules))
	for _, sch := range schedules {
		byWeekday[sch.Weekday] = append(byWeekday[sch.Weekday], sch)
	}

	lectures, err := svc.repo.QueryAllLectures()
	if err != nil {
		return nil, err
	}
	existing := make(map[LectureKey]bool, len(lectures))
	for _, lec := range lectures {
		existing[lec.Key()] = true
	}

	created := make([]Lecture, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(DateLayout)
		for _, sch := range byWeekday[int(d.Weekday())] {
			key := LectureKey{
				SubjectID: sch.SubjectID,
				Date:      date,
				StartTime: sch.StartTime,
				EndTime:   sch.EndTime,
			}
			if existing[key] {
				continue
			}
			scheduleID := sch.ID
			lec := Lecture{
				ID:         uuid.New().String(),
				SubjectID:  sch.SubjectID,
				Title:      sch.Title,
				Date:       date,
				StartTime:  sch.StartTime,
				EndTime:    sch.EndTime,
				ScheduleID: &scheduleID,
			}
			lec, err = svc.repo.CreateLecture(lec)
			if err != nil {
				return created, err
			}
			existing[key] = true
			created = append(created, lec)
		}
	}

	if len(created) > 0 {
		svc.publish(core.EventLectures)
	}
	return created, nil
}
