package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nexushub/internal/api/dto"
	"github.com/spec-kit/nexushub/internal/service"
	apperrors "github.com/spec-kit/nexushub/pkg/util/errorutil"
)

// ChatHandler serves the ephemeral chat with an employee.
type ChatHandler struct {
	sessions *service.SessionService
}

// NewChatHandler constructs handler.
func NewChatHandler(sessions *service.SessionService) *ChatHandler {
	return &ChatHandler{sessions: sessions}
}

// Open POST /boards/employees/:id/chat.
func (h *ChatHandler) Open(c *fiber.Ctx) error {
	ws, err := workspaceFor(c, h.sessions)
	if err != nil {
		return err
	}
	id := c.Params("id")
	view, ok := ws.OpenChat(id)
	if !ok {
		return apperrors.NewNotFound("employee", map[string]any{"id": id})
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": chatResponse(view.Snapshot())})
}

// Get GET /chat.
func (h *ChatHandler) Get(c *fiber.Ctx) error {
	view, err := h.openView(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": chatResponse(view.Snapshot())})
}

// Send POST /chat/messages. Blank text is ignored.
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	view, err := h.openView(c)
	if err != nil {
		return err
	}
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	msg, ok := view.Send(req.Text)
	if !ok {
		return c.JSON(fiber.Map{"data": nil, "applied": false})
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": chatMessageResponse(msg), "applied": true})
}

// SetInput PUT /chat/input.
func (h *ChatHandler) SetInput(c *fiber.Ctx) error {
	view, err := h.openView(c)
	if err != nil {
		return err
	}
	var req dto.ChatInputRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	view.SetInput(req.Input)
	return c.JSON(fiber.Map{"data": chatResponse(view.Snapshot())})
}

// Suggest POST /chat/suggest.
func (h *ChatHandler) Suggest(c *fiber.Ctx) error {
	ws, err := workspaceFor(c, h.sessions)
	if err != nil {
		return err
	}
	if _, ok := ws.Chat(); !ok {
		return apperrors.NewNotFound("chat", nil)
	}
	suggestion, ok := ws.SuggestChatReply(c.UserContext())
	return c.JSON(fiber.Map{"data": fiber.Map{"suggestion": suggestion}, "applied": ok})
}

// Close DELETE /chat.
func (h *ChatHandler) Close(c *fiber.Ctx) error {
	ws, err := workspaceFor(c, h.sessions)
	if err != nil {
		return err
	}
	ws.CloseChat()
	return c.SendStatus(http.StatusNoContent)
}

func (h *ChatHandler) openView(c *fiber.Ctx) (*service.ChatView, error) {
	ws, err := workspaceFor(c, h.sessions)
	if err != nil {
		return nil, err
	}
	view, ok := ws.Chat()
	if !ok {
		return nil, apperrors.NewNotFound("chat", nil)
	}
	return view, nil
}
