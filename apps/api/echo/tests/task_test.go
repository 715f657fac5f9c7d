package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/mahudhurio/core/attendance"
	testutil "github.com/trezcool/mahudhurio/tests"
)

func Test_taskApi_crud(t *testing.T) {
	app, repo := setup(t)

	math := testutil.CreateSubject(t, repo, "Mathematics", "MATH101")
	tsk := testutil.CreateTask(t, repo, "Problem set 3", "2026-01-10", math.ID)
	testutil.CreateTask(t, repo, "Buy notebook", "2026-01-11")

	t.Run("query filters by date and joins subject", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/tasks?date=2026-01-10", nil)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var res []struct {
			attendance.Task
			SubjectName *string `json:"subject_name"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if assert.Len(t, res, 1) {
			assert.Equal(t, tsk.ID, res[0].ID)
			if assert.NotNil(t, res[0].SubjectName) {
				assert.Equal(t, "Mathematics", *res[0].SubjectName)
			}
		}
	})

	tests := []httpTest{
		{
			name:     "create bad priority",
			method:   http.MethodPost,
			path:     "/v1/tasks",
			body:     []byte(`{"title": "X", "date": "2026-01-10", "priority": "urgent"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "create bad completed flag",
			method:   http.MethodPost,
			path:     "/v1/tasks",
			body:     []byte(`{"title": "X", "date": "2026-01-10", "completed": "done"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "retrieve not found",
			method:   http.MethodGet,
			path:     "/v1/tasks/nope",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "task not found"}),
		},
		{
			name:     "delete not found",
			method:   http.MethodDelete,
			path:     "/v1/tasks/nope",
			wantCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("create defaults completed", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/tasks", []byte(`{"title": "Revise notes", "date": "2026-01-12"}`))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var got attendance.Task
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		assert.Equal(t, "false", got.Completed)
	})

	t.Run("update completes the task", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, "/v1/tasks/"+tsk.ID, []byte(`{"completed": "true"}`))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var got attendance.Task
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		assert.Equal(t, "true", got.Completed)
	})
}

func Test_statisticsApi(t *testing.T) {
	app, repo := setup(t)

	t.Run("empty store", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/statistics", nil)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, attendance.Statistics{}),
		}, rec)
	})

	sub := testutil.CreateSubject(t, repo, "Mathematics", "MATH101")
	testutil.CreateLecture(t, repo, sub.ID, "L1", "2026-01-05", "08:00", "10:00", attendance.StatusPresent)
	testutil.CreateLecture(t, repo, sub.ID, "L2", "2026-01-06", "08:00", "10:00", attendance.StatusLate)
	testutil.CreateLecture(t, repo, sub.ID, "L3", "2026-01-07", "08:00", "10:00", attendance.StatusAbsent)

	t.Run("derived counts", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/statistics", nil)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, attendance.Statistics{
				TotalLectures:        3,
				AttendedLectures:     2,
				MissedLectures:       1,
				AttendancePercentage: 66.7,
				Breakdown:            attendance.StatusBreakdown{Present: 1, Absent: 1, Late: 1},
				Subjects:             1,
			}),
		}, rec)
	})
}
