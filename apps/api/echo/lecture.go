package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/mahudhurio/core/attendance"
)

type lectureApi struct {
	service  attendance.ServiceInterface
	validate *validator.Validate
}

func registerLectureAPI(g *echo.Group, svc attendance.ServiceInterface, validate *validator.Validate) {
	api := lectureApi{service: svc, validate: validate}

	lg := g.Group("/lectures")
	lg.GET("", api.lectureQuery)
	lg.POST("", api.lectureCreate)
	lg.GET("/:id", api.lectureRetrieve)
	lg.PUT("/:id", api.lectureUpdate)
	lg.DELETE("/:id", api.lectureDestroy)
}

// lectureResponse carries the lecture with its subject's display fields, the
// way list views consume it.
type lectureResponse struct {
	attendance.Lecture
	SubjectName  *string `json:"subject_name"`
	SubjectCode  *string `json:"subject_code"`
	SubjectColor *string `json:"subject_color"`
}

// subjectIndex maps subject IDs to subjects for response joins.
func subjectIndex(svc attendance.ServiceInterface) (map[string]attendance.Subject, error) {
	subjects, err := svc.QueryAllSubjects()
	if err != nil {
		return nil, err
	}
	idx := make(map[string]attendance.Subject, len(subjects))
	for _, sub := range subjects {
		idx[sub.ID] = sub
	}
	return idx, nil
}

func newLectureResponse(lec attendance.Lecture, idx map[string]attendance.Subject) lectureResponse {
	res := lectureResponse{Lecture: lec}
	if sub, ok := idx[lec.SubjectID]; ok {
		res.SubjectName = &sub.Name
		res.SubjectCode = &sub.Code
		res.SubjectColor = &sub.Color
	}
	return res
}

func (api *lectureApi) lectureQuery(ctx echo.Context) error {
	var lectures []attendance.Lecture
	var err error
	if subjectID := ctx.QueryParam("subject_id"); subjectID != "" {
		lectures, err = api.service.GetLecturesBySubject(subjectID)
	} else {
		lectures, err = api.service.QueryAllLectures()
	}
	if err != nil {
		return err
	}

	idx, err := subjectIndex(api.service)
	if err != nil {
		return err
	}
	res := make([]lectureResponse, 0, len(lectures))
	for _, lec := range lectures {
		res = append(res, newLectureResponse(lec, idx))
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *lectureApi) lectureCreate(ctx echo.Context) error {
	data := new(attendance.NewLecture)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate, api.service); err != nil {
		return err
	}

	lec, err := api.service.CreateLecture(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, lec)
}

func (api *lectureApi) lectureRetrieve(ctx echo.Context) error {
	lec, err := api.service.GetLecture(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, lec)
}

func (api *lectureApi) lectureUpdate(ctx echo.Context) error {
	data := new(attendance.UpdateLecture)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate, api.service); err != nil {
		return err
	}

	lec, err := api.service.UpdateLecture(ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, lec)
}

func (api *lectureApi) lectureDestroy(ctx echo.Context) error {
	deleted, err := api.service.DeleteLecture(ctx.Param("id"))
	if err != nil {
		return err
	}
	if !deleted {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}
