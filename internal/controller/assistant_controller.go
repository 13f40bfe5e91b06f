package controller

import (
	"nestquest-be/internal/dto"
	"nestquest-be/internal/pkg/serverutils"
	"nestquest-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	ClearSession(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
}

func NewAssistantController(assistantService service.IAssistantService) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	// Chat is open to visitors; a valid token upgrades the request to a
	// logged-in identity.
	h.Use(serverutils.OptionalJwtMiddleware)
	h.Post("chat", c.Chat)
	h.Delete("session/:id", c.ClearSession)
}

func (c *assistantController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	// The token identity wins over whatever the client claimed.
	if userId, ok := ctx.Locals("user_id").(float64); ok {
		req.Context.UserId = int64(userId)
	}

	// First message of a fresh conversation may arrive without a session id.
	if req.Context.SessionId == "" {
		req.Context.SessionId = uuid.NewString()
	}

	res, err := c.assistantService.GenerateResponse(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success chat", res))
}

func (c *assistantController) ClearSession(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")
	if sessionId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session id is required")
	}

	c.assistantService.ClearSession(sessionId)
	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear session", nil))
}
