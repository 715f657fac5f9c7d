package testutil

import (
	"testing"

	"github.com/google/uuid"

	"github.com/trezcool/mahudhurio/core/attendance"
)

func CreateSubject(t *testing.T, repo attendance.Repository, name, code string, teacher ...string) attendance.Subject {
	sub := attendance.Subject{
		ID:    uuid.New().String(),
		Name:  name,
		Code:  code,
		Color: attendance.DefaultSubjectColor,
	}
	if len(teacher) > 0 && teacher[0] != "" {
		sub.Teacher = &teacher[0]
	}
	sub, err := repo.CreateSubject(sub)
	if err != nil {
		t.Fatalf("createSubject() failed: %v", err)
	}
	return sub
}

func CreateLecture(t *testing.T, repo attendance.Repository, subjectID, title, date, startTime, endTime string, status ...string) attendance.Lecture {
	lec := attendance.Lecture{
		ID:        uuid.New().String(),
		SubjectID: subjectID,
		Title:     title,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}
	if len(status) > 0 && status[0] != "" {
		lec.Status = &status[0]
	}
	lec, err := repo.CreateLecture(lec)
	if err != nil {
		t.Fatalf("createLecture() failed: %v", err)
	}
	return lec
}

func CreateWeeklySchedule(t *testing.T, repo attendance.Repository, subjectID string, weekday int, startTime, endTime, title string) attendance.WeeklySchedule {
	sch := attendance.WeeklySchedule{
		ID:        uuid.New().String(),
		SubjectID: subjectID,
		Weekday:   weekday,
		StartTime: startTime,
		EndTime:   endTime,
		Title:     title,
	}
	sch, err := repo.CreateWeeklySchedule(sch)
	if err != nil {
		t.Fatalf("createWeeklySchedule() failed: %v", err)
	}
	return sch
}

func CreateTask(t *testing.T, repo attendance.Repository, title, date string, subjectID ...string) attendance.Task {
	tsk := attendance.Task{
		ID:        uuid.New().String(),
		Title:     title,
		Date:      date,
		Completed: "false",
	}
	if len(subjectID) > 0 && subjectID[0] != "" {
		tsk.SubjectID = &subjectID[0]
	}
	tsk, err := repo.CreateTask(tsk)
	if err != nil {
		t.Fatalf("createTask() failed: %v", err)
	}
	return tsk
}
