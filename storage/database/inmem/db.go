// Package inmemdb provides an in-memory implementation of the attendance
// store with optional JSON file persistence: every collection lives in a map
// and is flushed to <dataDir>/<collection>.json after each mutation, so the
// data survives restarts without a database server.
package inmemdb

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core/attendance"
)

const (
	subjectsFile  = "subjects.json"
	lecturesFile  = "lectures.json"
	schedulesFile = "weekly_schedules.json"
	tasksFile     = "tasks.json"
)

type DB struct {
	mutex   sync.RWMutex
	dataDir string // empty disables persistence

	subjects  map[string]*attendance.Subject
	lectures  map[string]*attendance.Lecture
	schedules map[string]*attendance.WeeklySchedule
	tasks     map[string]*attendance.Task
}

// Open loads the persisted collections from dataDir, creating it if needed.
// An empty dataDir yields a purely in-memory store (used in tests).
func Open(dataDir string) (*DB, error) {
	db := &DB{
		dataDir:   dataDir,
		subjects:  make(map[string]*attendance.Subject),
		lectures:  make(map[string]*attendance.Lecture),
		schedules: make(map[string]*attendance.WeeklySchedule),
		tasks:     make(map[string]*attendance.Task),
	}
	if dataDir == "" {
		return db, nil
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, errors.Wrap(err, "creating data dir")
	}
	if err := db.load(); err != nil {
		return nil, err
	}
	return db, nil
}

func (db *DB) load() error {
	var subjects []attendance.Subject
	if err := db.loadFile(subjectsFile, &subjects); err != nil {
		return err
	}
	seenCodes := make(map[string]bool, len(subjects))
	for i := range subjects {
		sub := subjects[i]
		// corrupted files may carry duplicate codes; first one wins
		code := sub.NormalizedCode()
		if seenCodes[code] {
			continue
		}
		seenCodes[code] = true
		db.subjects[sub.ID] = &sub
	}

	var lectures []attendance.Lecture
	if err := db.loadFile(lecturesFile, &lectures); err != nil {
		return err
	}
	for i := range lectures {
		lec := lectures[i]
		if _, ok := db.subjects[lec.SubjectID]; !ok {
			continue // subject was dropped; its lectures go with it
		}
		db.lectures[lec.ID] = &lec
	}

	var schedules []attendance.WeeklySchedule
	if err := db.loadFile(schedulesFile, &schedules); err != nil {
		return err
	}
	for i := range schedules {
		sch := schedules[i]
		if _, ok := db.subjects[sch.SubjectID]; !ok {
			continue
		}
		db.schedules[sch.ID] = &sch
	}

	var tasks []attendance.Task
	if err := db.loadFile(tasksFile, &tasks); err != nil {
		return err
	}
	for i := range tasks {
		tsk := tasks[i]
		if tsk.SubjectID != nil {
			if _, ok := db.subjects[*tsk.SubjectID]; !ok {
				tsk.SubjectID = nil // task survives, the dead link does not
			}
		}
		db.tasks[tsk.ID] = &tsk
	}
	return nil
}

func (db *DB) loadFile(name string, v interface{}) error {
	data, err := ioutil.ReadFile(filepath.Join(db.dataDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "reading %s", name)
	}
	if len(data) == 0 {
		return nil
	}
	if err = json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "parsing %s", name)
	}
	return nil
}

func (db *DB) saveFile(name string, v interface{}) error {
	if db.dataDir == "" {
		return nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encoding %s", name)
	}
	if err = ioutil.WriteFile(filepath.Join(db.dataDir, name), data, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", name)
	}
	return nil
}

func (db *DB) saveSubjects() error {
	subjects := make([]attendance.Subject, 0, len(db.subjects))
	for _, sub := range db.subjects {
		subjects = append(subjects, *sub)
	}
	return db.saveFile(subjectsFile, subjects)
}

func (db *DB) saveLectures() error {
	lectures := make([]attendance.Lecture, 0, len(db.lectures))
	for _, lec := range db.lectures {
		lectures = append(lectures, *lec)
	}
	return db.saveFile(lecturesFile, lectures)
}

func (db *DB) saveSchedules() error {
	schedules := make([]attendance.WeeklySchedule, 0, len(db.schedules))
	for _, sch := range db.schedules {
		schedules = append(schedules, *sch)
	}
	return db.saveFile(schedulesFile, schedules)
}

func (db *DB) saveTasks() error {
	tasks := make([]attendance.Task, 0, len(db.tasks))
	for _, tsk := range db.tasks {
		tasks = append(tasks, *tsk)
	}
	return db.saveFile(tasksFile, tasks)
}
