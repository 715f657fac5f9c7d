package main

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core/attendance"
)

// seed loads the memory backend's JSON snapshot files into the database so an
// existing file-backed install can move to Postgres. Subjects whose code is
// already taken are skipped.
func (cli *commandLine) seed(dir string) error {
	var subjects []attendance.Subject
	if err := loadJSON(filepath.Join(dir, "subjects.json"), &subjects); err != nil {
		return err
	}
	seeded := make(map[string]bool, len(subjects)) // subject IDs that made it in
	for _, sub := range subjects {
		if err := cli.repo.CheckCodeUniqueness(sub.Code); err != nil {
			if err == attendance.ErrCodeExists {
				logger.Printf("skipping subject %q: code %q already exists", sub.Name, sub.Code)
				continue
			}
			return err
		}
		if _, err := cli.repo.CreateSubject(sub); err != nil {
			return err
		}
		seeded[sub.ID] = true
	}

	var lectures []attendance.Lecture
	if err := loadJSON(filepath.Join(dir, "lectures.json"), &lectures); err != nil {
		return err
	}
	for _, lec := range lectures {
		if !seeded[lec.SubjectID] {
			continue
		}
		if _, err := cli.repo.CreateLecture(lec); err != nil {
			return err
		}
	}

	var schedules []attendance.WeeklySchedule
	if err := loadJSON(filepath.Join(dir, "weekly_schedules.json"), &schedules); err != nil {
		return err
	}
	for _, sch := range schedules {
		if !seeded[sch.SubjectID] {
			continue
		}
		if _, err := cli.repo.CreateWeeklySchedule(sch); err != nil {
			return err
		}
	}

	var tasks []attendance.Task
	if err := loadJSON(filepath.Join(dir, "tasks.json"), &tasks); err != nil {
		return err
	}
	for _, tsk := range tasks {
		if tsk.SubjectID != nil && !seeded[*tsk.SubjectID] {
			tsk.SubjectID = nil // keep the task, drop the dead link
		}
		if _, err := cli.repo.CreateTask(tsk); err != nil {
			return err
		}
	}

	logger.Printf("seeded %d subjects, %d lectures, %d schedules, %d tasks", len(seeded), len(lectures), len(schedules), len(tasks))
	return nil
}

func loadJSON(path string, v interface{}) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "reading %s", path)
	}
	if len(data) == 0 {
		return nil
	}
	if err = json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}
	return nil
}
