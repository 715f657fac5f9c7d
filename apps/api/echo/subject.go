package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/mahudhurio/core/attendance"
)

type subjectApi struct {
	service  attendance.ServiceInterface
	validate *validator.Validate
}

func registerSubjectAPI(g *echo.Group, svc attendance.ServiceInterface, validate *validator.Validate) {
	api := subjectApi{service: svc, validate: validate}

	sg := g.Group("/subjects")
	sg.GET("", api.subjectQuery)
	sg.POST("", api.subjectCreate)
	sg.GET("/:id", api.subjectRetrieve)
	sg.PUT("/:id", api.subjectUpdate)
	sg.DELETE("/:id", api.subjectDestroy)
}

func (api *subjectApi) subjectQuery(ctx echo.Context) error {
	subjects, err := api.service.QueryAllSubjects()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *subjectApi) subjectCreate(ctx echo.Context) error {
	data := new(attendance.NewSubject)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate, api.service); err != nil {
		return err
	}

	sub, err := api.service.CreateSubject(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *subjectApi) subjectRetrieve(ctx echo.Context) error {
	sub, err := api.service.GetSubject(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *subjectApi) subjectUpdate(ctx echo.Context) error {
	sub, err := api.service.GetSubject(ctx.Param("id"))
	if err != nil {
		return err
	}

	data := new(attendance.UpdateSubject)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(sub, api.validate, api.service); err != nil {
		return err
	}

	sub, err = api.service.UpdateSubject(sub.ID, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *subjectApi) subjectDestroy(ctx echo.Context) error {
	deleted, err := api.service.DeleteSubject(ctx.Param("id"))
	if err != nil {
		return err
	}
	if !deleted {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}
