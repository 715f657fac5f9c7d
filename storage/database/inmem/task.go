package inmemdb

import (
	"github.com/trezcool/mahudhurio/core/attendance"
)

func (repo *repository) CreateTask(tsk attendance.Task) (attendance.Task, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.tasks[tsk.ID] = &tsk
	if err := repo.db.saveTasks(); err != nil {
		delete(repo.db.tasks, tsk.ID)
		return attendance.Task{}, err
	}
	return tsk, nil
}

func (repo *repository) QueryAllTasks() ([]attendance.Task, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	tasks := make([]attendance.Task, 0, len(repo.db.tasks))
	for _, tsk := range repo.db.tasks {
		tasks = append(tasks, *tsk)
	}
	return tasks, nil
}

func (repo *repository) GetTaskByID(id string) (attendance.Task, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if tsk, ok := repo.db.tasks[id]; ok {
		return *tsk, nil
	}
	return attendance.Task{}, attendance.ErrTaskNotFound
}

func (repo *repository) GetTasksByDate(date string) ([]attendance.Task, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	tasks := make([]attendance.Task, 0)
	for _, tsk := range repo.db.tasks {
		if tsk.Date == date {
			tasks = append(tasks, *tsk)
		}
	}
	return tasks, nil
}

func (repo *repository) UpdateTask(tsk attendance.Task) (attendance.Task, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.tasks[tsk.ID]
	if !ok {
		return attendance.Task{}, attendance.ErrTaskNotFound
	}
	repo.db.tasks[tsk.ID] = &tsk
	if err := repo.db.saveTasks(); err != nil {
		repo.db.tasks[tsk.ID] = orig
		return attendance.Task{}, err
	}
	return tsk, nil
}

func (repo *repository) DeleteTask(id string) (bool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.tasks[id]
	if !ok {
		return false, nil
	}
	delete(repo.db.tasks, id)
	if err := repo.db.saveTasks(); err != nil {
		repo.db.tasks[id] = orig
		return false, err
	}
	return true, nil
}

func (repo *repository) ClearTaskSubject(subjectID string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	cleared := make(map[string]*string)
	for id, tsk := range repo.db.tasks {
		if tsk.SubjectID != nil && *tsk.SubjectID == subjectID {
			cleared[id] = tsk.SubjectID
			tsk.SubjectID = nil
		}
	}
	if len(cleared) == 0 {
		return nil
	}
	if err := repo.db.saveTasks(); err != nil {
		for id, subID := range cleared {
			repo.db.tasks[id].SubjectID = subID
		}
		return err
	}
	return nil
}
