package inmemdb

import (
	"github.com/trezcool/mahudhurio/core/attendance"
)

func (repo *repository) CreateLecture(lec attendance.Lecture) (attendance.Lecture, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.lectures[lec.ID] = &lec
	if err := repo.db.saveLectures(); err != nil {
		delete(repo.db.lectures, lec.ID)
		return attendance.Lecture{}, err
	}
	return lec, nil
}

func (repo *repository) QueryAllLectures() ([]attendance.Lecture, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	lectures := make([]attendance.Lecture, 0, len(repo.db.lectures))
	for _, lec := range repo.db.lectures {
		lectures = append(lectures, *lec)
	}
	return lectures, nil
}

func (repo *repository) GetLectureByID(id string) (attendance.Lecture, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if lec, ok := repo.db.lectures[id]; ok {
		return *lec, nil
	}
	return attendance.Lecture{}, attendance.ErrLectureNotFound
}

func (repo *repository) GetLecturesBySubject(subjectID string) ([]attendance.Lecture, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	lectures := make([]attendance.Lecture, 0)
	for _, lec := range repo.db.lectures {
		if lec.SubjectID == subjectID {
			lectures = append(lectures, *lec)
		}
	}
	return lectures, nil
}

func (repo *repository) UpdateLecture(lec attendance.Lecture) (attendance.Lecture, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.lectures[lec.ID]
	if !ok {
		return attendance.Lecture{}, attendance.ErrLectureNotFound
	}
	repo.db.lectures[lec.ID] = &lec
	if err := repo.db.saveLectures(); err != nil {
		repo.db.lectures[lec.ID] = orig
		return attendance.Lecture{}, err
	}
	return lec, nil
}

func (repo *repository) DeleteLecture(id string) (bool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.lectures[id]
	if !ok {
		return false, nil
	}
	delete(repo.db.lectures, id)
	if err := repo.db.saveLectures(); err != nil {
		repo.db.lectures[id] = orig
		return false, err
	}
	return true, nil
}

func (repo *repository) DeleteLecturesBySubject(subjectID string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	deleted := make(map[string]*attendance.Lecture)
	for id, lec := range repo.db.lectures {
		if lec.SubjectID == subjectID {
			deleted[id] = lec
			delete(repo.db.lectures, id)
		}
	}
	if len(deleted) == 0 {
		return nil
	}
	if err := repo.db.saveLectures(); err != nil {
		for id, lec := range deleted {
			repo.db.lectures[id] = lec
		}
		return err
	}
	return nil
}
