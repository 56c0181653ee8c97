package v1

import (
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"gdhotel.dev/backend/internal/pkg/apperr"
	"gdhotel.dev/backend/internal/pkg/middlewares"
	"gdhotel.dev/backend/internal/server/svr"
	"gdhotel.dev/backend/internal/service"
	"gdhotel.dev/backend/internal/util/rekuest"
)

type Activity struct {
	fx.In

	ActivityService *service.Activity
}

func RegisterActivity(v1 *svr.V1, c Activity) {
	v1.Get("/activities", c.List)
	v1.Post("/activities", c.Create)
	v1.Put("/activities/:id", c.Update)
	v1.Delete("/activities/:id", c.Delete)
}

//	@Summary	List Activities
//	@Tags		Activity
//	@Produce	json
//	@Success	200	{array}		model.ActivityDetail
//	@Failure	401	{object}	apperr.AppError
//	@Router		/api/v1/activities [GET]
func (c *Activity) List(ctx *fiber.Ctx) error {
	accountID, ok := middlewares.AccountID(ctx)
	if !ok {
		return apperr.ErrAuthRequired
	}

	details, err := c.ActivityService.List(ctx.UserContext(), accountID)
	if err != nil {
		return err
	}
	return ctx.JSON(details)
}

//	@Summary	Create Activity
//	@Tags		Activity
//	@Accept		mpfd
//	@Produce	json
//	@Success	200	{object}	model.ActivityDetail
//	@Failure	400	{object}	apperr.AppError	"invalid fields or malformed dates"
//	@Router		/api/v1/activities [POST]
func (c *Activity) Create(ctx *fiber.Ctx) error {
	accountID, ok := middlewares.AccountID(ctx)
	if !ok {
		return apperr.ErrAuthRequired
	}

	form, files, err := decodeSubmission(ctx)
	if err != nil {
		return err
	}

	detail, err := c.ActivityService.Create(ctx.UserContext(), accountID, form, files)
	if err != nil {
		return err
	}
	return ctx.JSON(detail)
}

//	@Summary	Update Activity
//	@Tags		Activity
//	@Accept		mpfd
//	@Produce	json
//	@Success	200	{object}	model.ActivityDetail
//	@Failure	404	{object}	apperr.AppError	"no activity with this id within the caller's scope"
//	@Router		/api/v1/activities/{id} [PUT]
func (c *Activity) Update(ctx *fiber.Ctx) error {
	accountID, ok := middlewares.AccountID(ctx)
	if !ok {
		return apperr.ErrAuthRequired
	}

	id, err := ctx.ParamsInt("id")
	if err != nil {
		return apperr.ErrInvalidReq.Msg("invalid request: activity id must be an integer")
	}

	form, files, err := decodeSubmission(ctx)
	if err != nil {
		return err
	}

	detail, err := c.ActivityService.Update(ctx.UserContext(), id, accountID, form, files)
	if err != nil {
		return err
	}
	return ctx.JSON(detail)
}

//	@Summary	Delete Activity
//	@Tags		Activity
//	@Produce	json
//	@Success	200	{object}	fiber.Map
//	@Failure	404	{object}	apperr.AppError	"no activity with this id within the caller's scope"
//	@Router		/api/v1/activities/{id} [DELETE]
func (c *Activity) Delete(ctx *fiber.Ctx) error {
	accountID, ok := middlewares.AccountID(ctx)
	if !ok {
		return apperr.ErrAuthRequired
	}

	id, err := ctx.ParamsInt("id")
	if err != nil {
		return apperr.ErrInvalidReq.Msg("invalid request: activity id must be an integer")
	}

	if err := c.ActivityService.Delete(ctx.UserContext(), id, accountID); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"message": "activity deleted",
	})
}

// decodeSubmission turns a multipart form into the service's typed inputs.
// File contents stay backed by fiber's already-parsed multipart buffers, so
// no explicit close is needed beyond the request lifetime.
func decodeSubmission(ctx *fiber.Ctx) (*service.ActivityForm, *service.UploadSet, error) {
	mpForm, err := ctx.MultipartForm()
	if err != nil {
		return nil, nil, apperr.ErrInvalidReq.Msg("invalid request: expected multipart form: %s", err)
	}

	form := &service.ActivityForm{
		Title:          formValue(mpForm, "title"),
		Section:        formValue(mpForm, "section"),
		AdditionalText: formValue(mpForm, "additional_text"),
		StartDate:      formValue(mpForm, "start_date"),
		EndDate:        formValue(mpForm, "end_date"),
	}

	for _, raw := range mpForm.Value["room_ids"] {
		roomID, err := strconv.Atoi(raw)
		if err != nil {
			return nil, nil, apperr.ErrInvalidReq.Msg("invalid request: room_ids must be integers")
		}
		form.RoomIDs = append(form.RoomIDs, roomID)
	}

	if err := rekuest.ValidStruct(ctx, form); err != nil {
		return nil, nil, err
	}

	files := &service.UploadSet{}
	if files.Logo, err = openAll(mpForm.File["logo"]); err != nil {
		return nil, nil, err
	}
	if files.Image, err = openAll(mpForm.File["image"]); err != nil {
		return nil, nil, err
	}
	if files.Video, err = openAll(mpForm.File["video"]); err != nil {
		return nil, nil, err
	}

	return form, files, nil
}

func formValue(form *multipart.Form, key string) string {
	values := form.Value[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func openAll(headers []*multipart.FileHeader) ([]service.Upload, error) {
	uploads := make([]service.Upload, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return nil, apperr.ErrInvalidReq.Msg("invalid request: unreadable upload %s", header.Filename)
		}
		uploads = append(uploads, service.Upload{
			Filename: header.Filename,
			Content:  f,
		})
	}
	return uploads, nil
}
