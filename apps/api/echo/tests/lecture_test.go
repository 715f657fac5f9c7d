package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/mahudhurio/core/attendance"
	testutil "github.com/trezcool/mahudhurio/tests"
)

func Test_lectureApi_crud(t *testing.T) {
	app, repo := setup(t)

	math := testutil.CreateSubject(t, repo, "Mathematics", "MATH101")
	phy := testutil.CreateSubject(t, repo, "Physics", "PHY101")
	mathLec := testutil.CreateLecture(t, repo, math.ID, "Algebra", "2026-01-05", "08:00", "10:00")
	testutil.CreateLecture(t, repo, phy.ID, "Mechanics", "2026-01-06", "10:00", "12:00")

	t.Run("query joins subject fields", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/lectures", nil)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var res []struct {
			attendance.Lecture
			SubjectName *string `json:"subject_name"`
			SubjectCode *string `json:"subject_code"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if assert.Len(t, res, 2) {
			for _, lec := range res {
				if assert.NotNil(t, lec.SubjectName) && lec.ID == mathLec.ID {
					assert.Equal(t, "Mathematics", *lec.SubjectName)
					assert.Equal(t, "MATH101", *lec.SubjectCode)
				}
			}
		}
	})

	t.Run("query filters by subject", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/lectures?subject_id="+math.ID, nil)
		app.ServeHTTP(rec, req)

		var res []attendance.Lecture
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if assert.Len(t, res, 1) {
			assert.Equal(t, mathLec.ID, res[0].ID)
		}
	})

	tests := []httpTest{
		{
			name:     "create unknown subject",
			method:   http.MethodPost,
			path:     "/v1/lectures",
			body:     []byte(`{"subject_id": "nope", "title": "X", "date": "2026-01-05", "start_time": "08:00", "end_time": "10:00"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"subject_id": "subject not found"}),
		},
		{
			name:     "create malformed date",
			method:   http.MethodPost,
			path:     "/v1/lectures",
			body:     []byte(`{"subject_id": "x", "title": "X", "date": "05/01/2026", "start_time": "08:00", "end_time": "10:00"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"date": "must be a calendar date in YYYY-MM-DD format"}),
		},
		{
			name:     "create malformed time",
			method:   http.MethodPost,
			path:     "/v1/lectures",
			body:     []byte(`{"subject_id": "x", "title": "X", "date": "2026-01-05", "start_time": "8am", "end_time": "10:00"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"start_time": "must be a time of day in HH:MM format"}),
		},
		{
			name:     "delete not found",
			method:   http.MethodDelete,
			path:     "/v1/lectures/nope",
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

	t.Run("create and mark attendance", func(t *testing.T) {
		body := []byte(`{"subject_id": "` + math.ID + `", "title": "Calculus", "date": "2026-01-12", "start_time": "08:00", "end_time": "10:00"}`)
		req, rec := newRequest(http.MethodPost, "/v1/lectures", body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var lec attendance.Lecture
		if err := json.Unmarshal(rec.Body.Bytes(), &lec); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		assert.Nil(t, lec.Status)

		req, rec = newRequest(http.MethodPut, "/v1/lectures/"+lec.ID, []byte(`{"status": "present"}`))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &lec); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if assert.NotNil(t, lec.Status) {
			assert.Equal(t, attendance.StatusPresent, *lec.Status)
		}
	})
}

func Test_weeklyScheduleApi_generate(t *testing.T) {
	app, repo := setup(t)

	math := testutil.CreateSubject(t, repo, "Mathematics", "MATH101")
	testutil.CreateWeeklySchedule(t, repo, math.ID, 1, "08:00", "10:00", "Algebra")

	t.Run("generates over the range", func(t *testing.T) {
		body := []byte(`{"start_date": "2026-01-05", "end_date": "2026-01-18"}`)
		req, rec := newRequest(http.MethodPost, "/v1/weekly-schedules/generate", body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var res struct {
			Generated int                  `json:"generated"`
			Lectures  []attendance.Lecture `json:"lectures"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		assert.Equal(t, 2, res.Generated) // Mondays Jan 5 & 12
		assert.Len(t, res.Lectures, 2)
	})

	t.Run("rerun generates nothing", func(t *testing.T) {
		body := []byte(`{"start_date": "2026-01-05", "end_date": "2026-01-18"}`)
		req, rec := newRequest(http.MethodPost, "/v1/weekly-schedules/generate", body)
		app.ServeHTTP(rec, req)

		var res struct {
			Generated int `json:"generated"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		assert.Equal(t, 0, res.Generated)
	})

	tests := []httpTest{
		{
			name:     "inverted range",
			method:   http.MethodPost,
			path:     "/v1/weekly-schedules/generate",
			body:     []byte(`{"start_date": "2026-01-18", "end_date": "2026-01-05"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"end_date": "end date cannot be before start date"}),
		},
		{
			name:     "missing dates",
			method:   http.MethodPost,
			path:     "/v1/weekly-schedules/generate",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"start_date": "this field is required",
				"end_date":   "this field is required",
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
