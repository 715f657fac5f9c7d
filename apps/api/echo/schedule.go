package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/mahudhurio/core/attendance"
)

type weeklyScheduleApi struct {
	service  attendance.ServiceInterface
	validate *validator.Validate
}

func registerWeeklyScheduleAPI(g *echo.Group, svc attendance.ServiceInterface, validate *validator.Validate) {
	api := weeklyScheduleApi{service: svc, validate: validate}

	wg := g.Group("/weekly-schedules")
	wg.GET("", api.scheduleQuery)
	wg.POST("", api.scheduleCreate)
	wg.POST("/generate", api.scheduleGenerate)
	wg.GET("/:id", api.scheduleRetrieve)
	wg.PUT("/:id", api.scheduleUpdate)
	wg.DELETE("/:id", api.scheduleDestroy)
}

type scheduleResponse struct {
	attendance.WeeklySchedule
	SubjectName  *string `json:"subject_name"`
	SubjectCode  *string `json:"subject_code"`
	SubjectColor *string `json:"subject_color"`
}

func newScheduleResponse(sch attendance.WeeklySchedule, idx map[string]attendance.Subject) scheduleResponse {
	res := scheduleResponse{WeeklySchedule: sch}
	if sub, ok := idx[sch.SubjectID]; ok {
		res.SubjectName = &sub.Name
		res.SubjectCode = &sub.Code
		res.SubjectColor = &sub.Color
	}
	return res
}

func (api *weeklyScheduleApi) scheduleQuery(ctx echo.Context) error {
	var schedules []attendance.WeeklySchedule
	var err error
	if subjectID := ctx.QueryParam("subject_id"); subjectID != "" {
		schedules, err = api.service.GetWeeklySchedulesBySubject(subjectID)
	} else {
		schedules, err = api.service.QueryAllWeeklySchedules()
	}
	if err != nil {
		return err
	}

	idx, err := subjectIndex(api.service)
	if err != nil {
		return err
	}
	res := make([]scheduleResponse, 0, len(schedules))
	for _, sch := range schedules {
		res = append(res, newScheduleResponse(sch, idx))
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *weeklyScheduleApi) scheduleCreate(ctx echo.Context) error {
	data := new(attendance.NewWeeklySchedule)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate, api.service); err != nil {
		return err
	}

	sch, err := api.service.CreateWeeklySchedule(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, sch)
}

func (api *weeklyScheduleApi) scheduleGenerate(ctx echo.Context) error {
	data := new(attendance.GenerateLecturesInput)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	lectures, err := api.service.GenerateLectures(data.StartDate, data.EndDate)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"generated": len(lectures),
		"lectures":  lectures,
	})
}

func (api *weeklyScheduleApi) scheduleRetrieve(ctx echo.Context) error {
	sch, err := api.service.GetWeeklySchedule(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sch)
}

func (api *weeklyScheduleApi) scheduleUpdate(ctx echo.Context) error {
	data := new(attendance.UpdateWeeklySchedule)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate, api.service); err != nil {
		return err
	}

	sch, err := api.service.UpdateWeeklySchedule(ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sch)
}

func (api *weeklyScheduleApi) scheduleDestroy(ctx echo.Context) error {
	deleted, err := api.service.DeleteWeeklySchedule(ctx.Param("id"))
	if err != nil {
		return err
	}
	if !deleted {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}
