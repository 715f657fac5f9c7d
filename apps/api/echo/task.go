package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/mahudhurio/core/attendance"
)

type taskApi struct {
	service  attendance.ServiceInterface
	validate *validator.Validate
}

func registerTaskAPI(g *echo.Group, svc attendance.ServiceInterface, validate *validator.Validate) {
	api := taskApi{service: svc, validate: validate}

	tg := g.Group("/tasks")
	tg.GET("", api.taskQuery)
	tg.POST("", api.taskCreate)
	tg.GET("/:id", api.taskRetrieve)
	tg.PUT("/:id", api.taskUpdate)
	tg.DELETE("/:id", api.taskDestroy)
}

type taskResponse struct {
	attendance.Task
	SubjectName  *string `json:"subject_name"`
	SubjectCode  *string `json:"subject_code"`
	SubjectColor *string `json:"subject_color"`
}

func newTaskResponse(tsk attendance.Task, idx map[string]attendance.Subject) taskResponse {
	res := taskResponse{Task: tsk}
	if tsk.SubjectID == nil {
		return res
	}
	if sub, ok := idx[*tsk.SubjectID]; ok {
		res.SubjectName = &sub.Name
		res.SubjectCode = &sub.Code
		res.SubjectColor = &sub.Color
	}
	return res
}

func (api *taskApi) taskQuery(ctx echo.Context) error {
	var tasks []attendance.Task
	var err error
	if date := ctx.QueryParam("date"); date != "" {
		tasks, err = api.service.GetTasksByDate(date)
	} else {
		tasks, err = api.service.QueryAllTasks()
	}
	if err != nil {
		return err
	}

	idx, err := subjectIndex(api.service)
	if err != nil {
		return err
	}
	res := make([]taskResponse, 0, len(tasks))
	for _, tsk := range tasks {
		res = append(res, newTaskResponse(tsk, idx))
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *taskApi) taskCreate(ctx echo.Context) error {
	data := new(attendance.NewTask)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate, api.service); err != nil {
		return err
	}

	tsk, err := api.service.CreateTask(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, tsk)
}

func (api *taskApi) taskRetrieve(ctx echo.Context) error {
	tsk, err := api.service.GetTask(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tsk)
}

func (api *taskApi) taskUpdate(ctx echo.Context) error {
	data := new(attendance.UpdateTask)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate, api.service); err != nil {
		return err
	}

	tsk, err := api.service.UpdateTask(ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tsk)
}

func (api *taskApi) taskDestroy(ctx echo.Context) error {
	deleted, err := api.service.DeleteTask(ctx.Param("id"))
	if err != nil {
		return err
	}
	if !deleted {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}
