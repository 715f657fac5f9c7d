package inmemdb

import (
	"github.com/trezcool/mahudhurio/core/attendance"
)

type repository struct {
	db *DB
}

var _ attendance.Repository = (*repository)(nil) // interface compliance check

func NewRepository(db *DB) attendance.Repository {
	return &repository{db: db}
}

func (repo *repository) CheckCodeUniqueness(code string, excludedSubjects ...attendance.Subject) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	normalized := attendance.Subject{Code: code}.NormalizedCode()
	for _, sub := range repo.db.subjects {
		if sub.NormalizedCode() == normalized && !isExcluded(*sub, excludedSubjects) {
			return attendance.ErrCodeExists
		}
	}
	return nil
}

func (repo *repository) CreateSubject(sub attendance.Subject) (attendance.Subject, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.subjects[sub.ID] = &sub
	if err := repo.db.saveSubjects(); err != nil {
		delete(repo.db.subjects, sub.ID)
		return attendance.Subject{}, err
	}
	return sub, nil
}

func (repo *repository) QueryAllSubjects() ([]attendance.Subject, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	subjects := make([]attendance.Subject, 0, len(repo.db.subjects))
	for _, sub := range repo.db.subjects {
		subjects = append(subjects, *sub)
	}
	return subjects, nil
}

func (repo *repository) GetSubjectByID(id string) (attendance.Subject, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if sub, ok := repo.db.subjects[id]; ok {
		return *sub, nil
	}
	return attendance.Subject{}, attendance.ErrSubjectNotFound
}

func (repo *repository) UpdateSubject(sub attendance.Subject) (attendance.Subject, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.subjects[sub.ID]
	if !ok {
		return attendance.Subject{}, attendance.ErrSubjectNotFound
	}
	repo.db.subjects[sub.ID] = &sub
	if err := repo.db.saveSubjects(); err != nil {
		repo.db.subjects[sub.ID] = orig
		return attendance.Subject{}, err
	}
	return sub, nil
}

func (repo *repository) DeleteSubject(id string) (bool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.subjects[id]
	if !ok {
		return false, nil
	}
	delete(repo.db.subjects, id)
	if err := repo.db.saveSubjects(); err != nil {
		repo.db.subjects[id] = orig
		return false, err
	}
	return true, nil
}

func isExcluded(sub attendance.Subject, excludedSubjects []attendance.Subject) bool {
	for _, excl := range excludedSubjects {
		if excl.ID == sub.ID {
			return true
		}
	}
	return false
}
