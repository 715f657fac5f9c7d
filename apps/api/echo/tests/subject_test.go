package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/mahudhurio/core/attendance"
	testutil "github.com/trezcool/mahudhurio/tests"
)

func Test_subjectApi_crud(t *testing.T) {
	app, repo := setup(t)

	existing := testutil.CreateSubject(t, repo, "Physics", "PHY101", "Dr. Neema")

	tests := []httpTest{
		{
			name:     "query all",
			method:   http.MethodGet,
			path:     "/v1/subjects",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []attendance.Subject{existing}),
		},
		{
			name:     "retrieve",
			method:   http.MethodGet,
			path:     "/v1/subjects/" + existing.ID,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, existing),
		},
		{
			name:     "retrieve not found",
			method:   http.MethodGet,
			path:     "/v1/subjects/nope",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "subject not found"}),
		},
		{
			name:     "create missing fields",
			method:   http.MethodPost,
			path:     "/v1/subjects",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"name": "this field is required",
				"code": "this field is required",
			}),
		},
		{
			name:     "create duplicate code",
			method:   http.MethodPost,
			path:     "/v1/subjects",
			body:     []byte(`{"name": "Physics II", "code": " phy101 "}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"code": "a subject with this code already exists",
			}),
		},
		{
			name:     "delete not found",
			method:   http.MethodDelete,
			path:     "/v1/subjects/nope",
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

	t.Run("create", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/subjects", []byte(`{"name": " Mathematics ", "code": "MATH101"}`))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var sub attendance.Subject
		if err := json.Unmarshal(rec.Body.Bytes(), &sub); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		assert.NotEmpty(t, sub.ID)
		assert.Equal(t, "Mathematics", sub.Name)
		assert.Equal(t, attendance.DefaultSubjectColor, sub.Color)
		assert.Nil(t, sub.Teacher)
	})

	t.Run("update clears teacher with empty string", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, "/v1/subjects/"+existing.ID, []byte(`{"teacher": ""}`))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var sub attendance.Subject
		if err := json.Unmarshal(rec.Body.Bytes(), &sub); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		assert.Nil(t, sub.Teacher)
		assert.Equal(t, "Physics", sub.Name)
	})

	t.Run("delete", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, "/v1/subjects/"+existing.ID, nil)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		// gone now
		req, rec = newRequest(http.MethodDelete, "/v1/subjects/"+existing.ID, nil)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func Test_subjectApi_deleteCascades(t *testing.T) {
	app, repo := setup(t)

	sub := testutil.CreateSubject(t, repo, "Mathematics", "MATH101")
	lec := testutil.CreateLecture(t, repo, sub.ID, "Algebra", "2026-01-05", "08:00", "10:00")
	sch := testutil.CreateWeeklySchedule(t, repo, sub.ID, 1, "08:00", "10:00", "Algebra")
	tsk := testutil.CreateTask(t, repo, "Problem set 3", "2026-01-10", sub.ID)

	req, rec := newRequest(http.MethodDelete, "/v1/subjects/"+sub.ID, nil)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	for _, path := range []string{
		fmt.Sprintf("/v1/lectures/%s", lec.ID),
		fmt.Sprintf("/v1/weekly-schedules/%s", sch.ID),
	} {
		req, rec = newRequest(http.MethodGet, path, nil)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}

	// the task survives, detached
	req, rec = newRequest(http.MethodGet, "/v1/tasks/"+tsk.ID, nil)
	app.ServeHTTP(rec, req)
	if assert.Equal(t, http.StatusOK, rec.Code) {
		var got attendance.Task
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		assert.Nil(t, got.SubjectID)
	}
}
