package attendance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/mahudhurio/core/attendance"
	testutil "github.com/trezcool/mahudhurio/tests"
)

func TestService_GenerateLectures(t *testing.T) {
	svc, repo := setup(t)
	math := testutil.CreateSubject(t, repo, "Mathematics", "MATH101")
	phy := testutil.CreateSubject(t, repo, "Physics", "PHY101")

	// Mondays and Wednesdays; 2026-01-05 is a Monday
	mathSch := testutil.CreateWeeklySchedule(t, repo, math.ID, 1, "08:00", "10:00", "Algebra")
	testutil.CreateWeeklySchedule(t, repo, phy.ID, 3, "10:00", "12:00", "Mechanics")

	created, err := svc.GenerateLectures("2026-01-05", "2026-01-18")
	if err != nil {
		t.Fatalf("GenerateLectures() failed: %v", err)
	}
	// 2 Mondays (Jan 5, 12) + 2 Wednesdays (Jan 7, 14)
	assert.Len(t, created, 4)

	var mondays []attendance.Lecture
	for _, lec := range created {
		if lec.SubjectID == math.ID {
			mondays = append(mondays, lec)
		}
	}
	if assert.Len(t, mondays, 2) {
		dates := []string{mondays[0].Date, mondays[1].Date}
		assert.ElementsMatch(t, []string{"2026-01-05", "2026-01-12"}, dates)
		for _, lec := range mondays {
			assert.Equal(t, "Algebra", lec.Title)
			assert.Equal(t, "08:00", lec.StartTime)
			assert.Equal(t, "10:00", lec.EndTime)
			if assert.NotNil(t, lec.ScheduleID) {
				assert.Equal(t, mathSch.ID, *lec.ScheduleID)
			}
			assert.Nil(t, lec.Status)
		}
	}

	t.Run("rerun over the same range creates nothing", func(t *testing.T) {
		created, err := svc.GenerateLectures("2026-01-05", "2026-01-18")
		if err != nil {
			t.Fatalf("GenerateLectures() failed: %v", err)
		}
		assert.Empty(t, created)

		lectures, err := svc.QueryAllLectures()
		if err != nil {
			t.Fatalf("QueryAllLectures() failed: %v", err)
		}
		assert.Len(t, lectures, 4)
	})

	t.Run("overlapping range only fills the gap", func(t *testing.T) {
		created, err := svc.GenerateLectures("2026-01-12", "2026-01-19")
		if err != nil {
			t.Fatalf("GenerateLectures() failed: %v", err)
		}
		// Jan 12 and 14 exist already; only Monday Jan 19 is new
		if assert.Len(t, created, 1) {
			assert.Equal(t, "2026-01-19", created[0].Date)
		}
	})
}

func TestService_GenerateLectures_Dedup(t *testing.T) {
	svc, repo := setup(t)
	math := testutil.CreateSubject(t, repo, "Mathematics", "MATH101")
	testutil.CreateWeeklySchedule(t, repo, math.ID, 1, "08:00", "10:00", "Algebra")

	// a manually created lecture with the same occurrence key blocks generation
	testutil.CreateLecture(t, repo, math.ID, "Algebra (manual)", "2026-01-05", "08:00", "10:00")
	// same date but different time slot does not
	testutil.CreateLecture(t, repo, math.ID, "Extra session", "2026-01-12", "14:00", "16:00")

	created, err := svc.GenerateLectures("2026-01-05", "2026-01-12")
	if err != nil {
		t.Fatalf("GenerateLectures() failed: %v", err)
	}
	if assert.Len(t, created, 1) {
		assert.Equal(t, "2026-01-12", created[0].Date)
		assert.Equal(t, "08:00", created[0].StartTime)
	}
}

func TestService_GenerateLectures_EdgeCases(t *testing.T) {
	svc, repo := setup(t)

	t.Run("no schedules", func(t *testing.T) {
		created, err := svc.GenerateLectures("2026-01-05", "2026-01-18")
		if err != nil {
			t.Fatalf("GenerateLectures() failed: %v", err)
		}
		assert.Empty(t, created)
	})

	math := testutil.CreateSubject(t, repo, "Mathematics", "MATH101")
	testutil.CreateWeeklySchedule(t, repo, math.ID, 1, "08:00", "10:00", "Algebra")

	t.Run("single day range matching the weekday", func(t *testing.T) {
		created, err := svc.GenerateLectures("2026-01-05", "2026-01-05")
		if err != nil {
			t.Fatalf("GenerateLectures() failed: %v", err)
		}
		assert.Len(t, created, 1)
	})

	t.Run("start after end yields nothing", func(t *testing.T) {
		created, err := svc.GenerateLectures("2026-01-18", "2026-01-05")
		if err != nil {
			t.Fatalf("GenerateLectures() failed: %v", err)
		}
		assert.Empty(t, created)
	})

	t.Run("malformed date", func(t *testing.T) {
		if _, err := svc.GenerateLectures("05/01/2026", "2026-01-18"); err == nil {
			t.Error("GenerateLectures() error = nil, want parse error")
		}
	})
}
