package inmemdb

import (
	"github.com/trezcool/mahudhurio/core/attendance"
)

func (repo *repository) CreateWeeklySchedule(sch attendance.WeeklySchedule) (attendance.WeeklySchedule, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.schedules[sch.ID] = &sch
	if err := repo.db.saveSchedules(); err != nil {
		delete(repo.db.schedules, sch.ID)
		return attendance.WeeklySchedule{}, err
	}
	return sch, nil
}

func (repo *repository) QueryAllWeeklySchedules() ([]attendance.WeeklySchedule, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	schedules := make([]attendance.WeeklySchedule, 0, len(repo.db.schedules))
	for _, sch := range repo.db.schedules {
		schedules = append(schedules, *sch)
	}
	return schedules, nil
}

func (repo *repository) GetWeeklyScheduleByID(id string) (attendance.WeeklySchedule, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if sch, ok := repo.db.schedules[id]; ok {
		return *sch, nil
	}
	return attendance.WeeklySchedule{}, attendance.ErrScheduleNotFound
}

func (repo *repository) GetWeeklySchedulesBySubject(subjectID string) ([]attendance.WeeklySchedule, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	schedules := make([]attendance.WeeklySchedule, 0)
	for _, sch := range repo.db.schedules {
		if sch.SubjectID == subjectID {
			schedules = append(schedules, *sch)
		}
	}
	return schedules, nil
}

func (repo *repository) UpdateWeeklySchedule(sch attendance.WeeklySchedule) (attendance.WeeklySchedule, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.schedules[sch.ID]
	if !ok {
		return attendance.WeeklySchedule{}, attendance.ErrScheduleNotFound
	}
	repo.db.schedules[sch.ID] = &sch
	if err := repo.db.saveSchedules(); err != nil {
		repo.db.schedules[sch.ID] = orig
		return attendance.WeeklySchedule{}, err
	}
	return sch, nil
}

func (repo *repository) DeleteWeeklySchedule(id string) (bool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.schedules[id]
	if !ok {
		return false, nil
	}
	delete(repo.db.schedules, id)
	if err := repo.db.saveSchedules(); err != nil {
		repo.db.schedules[id] = orig
		return false, err
	}
	return true, nil
}

func (repo *repository) DeleteWeeklySchedulesBySubject(subjectID string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	deleted := make(map[string]*attendance.WeeklySchedule)
	for id, sch := range repo.db.schedules {
		if sch.SubjectID == subjectID {
			deleted[id] = sch
			delete(repo.db.schedules, id)
		}
	}
	if len(deleted) == 0 {
		return nil
	}
	if err := repo.db.saveSchedules(); err != nil {
		for id, sch := range deleted {
			repo.db.schedules[id] = sch
		}
		return err
	}
	return nil
}
