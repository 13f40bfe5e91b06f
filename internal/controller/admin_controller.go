package controller

import (
	"strconv"
	"time"

	"nestquest-be/internal/dto"
	"nestquest-be/internal/pkg/serverutils"
	"nestquest-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
}

type adminController struct {
	assistantService service.IAssistantService
}

func NewAdminController(assistantService service.IAssistantService) IAdminController {
	return &adminController{
		assistantService: assistantService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/assistant/v1")
	h.Use(serverutils.JwtMiddleware)

	h.Get("faq", c.ListFAQ)
	h.Post("faq", c.AddFAQ)
	h.Put("faq/:id", c.UpdateFAQ)
	h.Delete("faq/:id", c.DeleteFAQ)

	h.Get("costs", c.CostLogs)
	h.Get("chats", c.ChatLogs)
	h.Get("stats", c.ChatStats)

	h.Get("rate-limit/:identity", c.RateLimitStatus)
	h.Delete("rate-limit/:identity", c.ResetRateLimit)
	h.Delete("cache/user/:id", c.InvalidateUserCache)
	h.Delete("cache/users", c.InvalidateAllUserCaches)
}

func (c *adminController) ListFAQ(ctx *fiber.Ctx) error {
	category := ctx.Query("category", "")
	limit := ctx.QueryInt("limit", 0)

	items := c.assistantService.GetFAQItems(category, limit)
	return ctx.JSON(serverutils.SuccessResponse("Success list faq", items))
}

func (c *adminController) AddFAQ(ctx *fiber.Ctx) error {
	var req dto.FAQItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	item := c.assistantService.AddFAQItem(&req)
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success add faq", item))
}

func (c *adminController) UpdateFAQ(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid faq id")
	}

	var req dto.FAQItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	item, err := c.assistantService.UpdateFAQItem(id, &req)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update faq", item))
}

func (c *adminController) DeleteFAQ(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid faq id")
	}

	if err := c.assistantService.DeleteFAQItem(id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete faq", nil))
}

func (c *adminController) CostLogs(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 100)

	res := dto.CostSummaryResponse{
		TotalCost: c.assistantService.GetTotalCost(),
		Entries:   c.assistantService.GetCostLogs(limit),
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list cost logs", res))
}

func (c *adminController) ChatLogs(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 100)

	logs := c.assistantService.GetChatLogs(limit)
	return ctx.JSON(serverutils.SuccessResponse("Success list chat logs", logs))
}

func (c *adminController) ChatStats(ctx *fiber.Ctx) error {
	stats := c.assistantService.GetChatStats()
	return ctx.JSON(serverutils.SuccessResponse("Success chat stats", stats))
}

func (c *adminController) RateLimitStatus(ctx *fiber.Ctx) error {
	identity := ctx.Params("identity")

	status, ok := c.assistantService.GetRateLimitStatus(identity)
	if !ok {
		return ctx.JSON(serverutils.SuccessResponse("No active window", dto.RateLimitStatusResponse{
			Identity: identity,
		}))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success rate limit status", dto.RateLimitStatusResponse{
		Identity:  status.Identity,
		Count:     status.Count,
		Limit:     status.Limit,
		Remaining: status.Remaining,
		ResetsIn:  int64(time.Until(status.ResetsAt).Seconds()),
	}))
}

func (c *adminController) ResetRateLimit(ctx *fiber.Ctx) error {
	identity := ctx.Params("identity")
	c.assistantService.ResetRateLimit(identity)
	return ctx.JSON(serverutils.SuccessResponse[any]("Success reset rate limit", nil))
}

func (c *adminController) InvalidateUserCache(ctx *fiber.Ctx) error {
	userId, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	c.assistantService.InvalidateUserCache(userId)
	return ctx.JSON(serverutils.SuccessResponse[any]("Success invalidate user cache", nil))
}

func (c *adminController) InvalidateAllUserCaches(ctx *fiber.Ctx) error {
	cleared := c.assistantService.InvalidateAllUserCaches()
	return ctx.JSON(serverutils.SuccessResponse("Success invalidate all user caches", fiber.Map{
		"entries_cleared": cleared,
	}))
}
