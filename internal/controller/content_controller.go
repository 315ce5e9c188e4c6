package controller

import (
	"content-platform-be/internal/dto"
	"content-platform-be/internal/pkg/serverutils"
	"content-platform-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IContentController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Edit(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Preview(ctx *fiber.Ctx) error
	Descriptors(ctx *fiber.Ctx) error
	Reindex(ctx *fiber.Ctx) error
	SaveDraft(ctx *fiber.Ctx) error
	LoadDraft(ctx *fiber.Ctx) error
	DiscardDraft(ctx *fiber.Ctx) error
}

type contentController struct {
	contentService service.IContentService
	draftService   service.IDraftService
}

func NewContentController(contentService service.IContentService, draftService service.IDraftService) IContentController {
	return &contentController{
		contentService: contentService,
		draftService:   draftService,
	}
}

func (c *contentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/content/v1")
	h.Post("preview", c.Preview)
	h.Post("reindex", c.Reindex)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id/blocks", c.Edit)
	h.Delete(":id", c.Delete)
	h.Get(":id/descriptors", c.Descriptors)
	h.Put(":id/draft/:session", c.SaveDraft)
	h.Get(":id/draft/:session", c.LoadDraft)
	h.Delete(":id/draft/:session", c.DiscardDraft)
}

func contentID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid content id")
	}
	return id, nil
}

func (c *contentController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateContentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.contentService.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create content", res))
}

func (c *contentController) List(ctx *fiber.Ctx) error {
	var req dto.ListContentRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.contentService.List(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list content", res))
}

func (c *contentController) Show(ctx *fiber.Ctx) error {
	id, err := contentID(ctx)
	if err != nil {
		return err
	}

	res, err := c.contentService.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show content", res))
}

func (c *contentController) Edit(ctx *fiber.Ctx) error {
	id, err := contentID(ctx)
	if err != nil {
		return err
	}

	var req dto.EditContentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.contentService.Edit(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success edit content", res))
}

func (c *contentController) Delete(ctx *fiber.Ctx) error {
	id, err := contentID(ctx)
	if err != nil {
		return err
	}

	if err := c.contentService.Delete(ctx.UserContext(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete content", nil))
}

func (c *contentController) Preview(ctx *fiber.Ctx) error {
	var req dto.PreviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.contentService.Preview(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success preview content", res))
}

func (c *contentController) Descriptors(ctx *fiber.Ctx) error {
	id, err := contentID(ctx)
	if err != nil {
		return err
	}

	res, err := c.contentService.Descriptors(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get descriptors", res))
}

func (c *contentController) Reindex(ctx *fiber.Ctx) error {
	res, err := c.contentService.Reindex(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success queue reindex", res))
}

func (c *contentController) SaveDraft(ctx *fiber.Ctx) error {
	id, err := contentID(ctx)
	if err != nil {
		return err
	}

	var req dto.SaveDraftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	req.ContentId = id
	req.SessionId = ctx.Params("session")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.draftService.Save(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save draft", res))
}

func (c *contentController) LoadDraft(ctx *fiber.Ctx) error {
	id, err := contentID(ctx)
	if err != nil {
		return err
	}

	res, err := c.draftService.Load(ctx.UserContext(), id, ctx.Params("session"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success load draft", res))
}

func (c *contentController) DiscardDraft(ctx *fiber.Ctx) error {
	id, err := contentID(ctx)
	if err != nil {
		return err
	}

	if err := c.draftService.Discard(ctx.UserContext(), id, ctx.Params("session")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success discard draft", nil))
}
