package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nexushub/internal/api/dto"
	"github.com/spec-kit/nexushub/internal/board"
	"github.com/spec-kit/nexushub/internal/domain"
	"github.com/spec-kit/nexushub/internal/service"
	apperrors "github.com/spec-kit/nexushub/pkg/util/errorutil"
)

// BoardsHandler serves the seven boards of the caller's workspace.
type BoardsHandler struct {
	sessions *service.SessionService
	boards   []mountable
}

// NewBoardsHandler constructs handler.
func NewBoardsHandler(sessions *service.SessionService) *BoardsHandler {
	h := &BoardsHandler{sessions: sessions}
	h.boards = []mountable{
		&boardEndpoints[domain.BulletinMessage, domain.BulletinDraft]{
			name:      service.BoardBulletin,
			sessions:  sessions,
			pick:      func(ws *service.Workspace) *board.Board[domain.BulletinMessage, domain.BulletinDraft] { return ws.Bulletin },
			record:    func(m domain.BulletinMessage) any { return bulletinResponse(m) },
			draft:     func(d domain.BulletinDraft) any { return bulletinDraftPayload(d) },
			decode:    func(c *fiber.Ctx) (domain.BulletinDraft, error) { return decodeInto(c, bulletinDraftFrom) },
			filter:    func(s string) bool { return domain.BulletinCategory(s).Valid() },
			canDelete: true,
		},
		&boardEndpoints[domain.CalendarEvent, domain.CalendarDraft]{
			name:     service.BoardCalendar,
			sessions: sessions,
			pick:     func(ws *service.Workspace) *board.Board[domain.CalendarEvent, domain.CalendarDraft] { return ws.Calendar },
			record:   func(e domain.CalendarEvent) any { return calendarEventResponse(e) },
			draft:    func(d domain.CalendarDraft) any { return calendarDraftPayload(d) },
			decode:   func(c *fiber.Ctx) (domain.CalendarDraft, error) { return decodeInto(c, calendarDraftFrom) },
			validate: func(d domain.CalendarDraft, ws *service.Workspace) error {
				if err := service.ValidateCalendarDraft(d, ws.Location()); err != nil {
					return apperrors.NewValidationError("date must be YYYY-MM-DD and times HH:mm", map[string]any{
						"date": d.Date, "start_time": d.StartTime, "end_time": d.EndTime,
					})
				}
				return nil
			},
		},
		&boardEndpoints[domain.Exchange, domain.ExchangeDraft]{
			name:     service.BoardExchanges,
			sessions: sessions,
			pick:     func(ws *service.Workspace) *board.Board[domain.Exchange, domain.ExchangeDraft] { return ws.Exchanges },
			record:   func(e domain.Exchange) any { return exchangeResponse(e) },
			draft:    func(d domain.ExchangeDraft) any { return exchangeDraftPayload(d) },
			decode:   func(c *fiber.Ctx) (domain.ExchangeDraft, error) { return decodeInto(c, exchangeDraftFrom) },
			filter:   func(s string) bool { return domain.ExchangeStatus(s).Valid() },
			status:   func(s string) bool { return domain.ExchangeStatus(s).Valid() },
		},
		&boardEndpoints[domain.ReturnItem, domain.ReturnDraft]{
			name:      service.BoardReturns,
			sessions:  sessions,
			pick:      func(ws *service.Workspace) *board.Board[domain.ReturnItem, domain.ReturnDraft] { return ws.Returns },
			record:    func(r domain.ReturnItem) any { return returnResponse(r) },
			draft:     func(d domain.ReturnDraft) any { return returnDraftPayload(d) },
			decode:    func(c *fiber.Ctx) (domain.ReturnDraft, error) { return decodeInto(c, returnDraftFrom) },
			filter:    func(s string) bool { return domain.ReturnStatus(s).Valid() },
			status:    func(s string) bool { return domain.ReturnStatus(s).Valid() },
			canDelete: true,
		},
		&boardEndpoints[domain.Reshipment, domain.ReshipmentDraft]{
			name:     service.BoardReshipments,
			sessions: sessions,
			pick:     func(ws *service.Workspace) *board.Board[domain.Reshipment, domain.ReshipmentDraft] { return ws.Reshipments },
			record:   func(r domain.Reshipment) any { return reshipmentResponse(r) },
			draft:    func(d domain.ReshipmentDraft) any { return reshipmentDraftPayload(d) },
			decode:   func(c *fiber.Ctx) (domain.ReshipmentDraft, error) { return decodeInto(c, reshipmentDraftFrom) },
			filter:   func(s string) bool { return domain.ReshipmentStatus(s).Valid() },
			status:   func(s string) bool { return domain.ReshipmentStatus(s).Valid() },
		},
		&boardEndpoints[domain.MissingProduct, domain.MissingDraft]{
			name:      service.BoardMissing,
			sessions:  sessions,
			pick:      func(ws *service.Workspace) *board.Board[domain.MissingProduct, domain.MissingDraft] { return ws.Missing },
			record:    func(m domain.MissingProduct) any { return missingResponse(m) },
			draft:     func(d domain.MissingDraft) any { return missingDraftPayload(d) },
			decode:    func(c *fiber.Ctx) (domain.MissingDraft, error) { return decodeInto(c, missingDraftFrom) },
			filter:    func(s string) bool { return domain.MissingStatus(s).Valid() },
			status:    func(s string) bool { return domain.MissingStatus(s).Valid() },
			canDelete: true,
		},
		&boardEndpoints[domain.Employee, domain.EmployeeDraft]{
			name:     service.BoardEmployees,
			sessions: sessions,
			pick:     func(ws *service.Workspace) *board.Board[domain.Employee, domain.EmployeeDraft] { return ws.Employees },
			record:   func(e domain.Employee) any { return employeeResponse(e) },
			draft:    func(d domain.EmployeeDraft) any { return employeeDraftPayload(d) },
			decode:   func(c *fiber.Ctx) (domain.EmployeeDraft, error) { return decodeInto(c, employeeDraftFrom) },
			filter:   func(s string) bool { return domain.Presence(s).Valid() },
		},
	}
	return h
}

// Mount registers the shared routes of every board under router.
func (h *BoardsHandler) Mount(router fiber.Router) {
	for _, b := range h.boards {
		b.mount(router)
	}
}

// TogglePin PATCH /boards/bulletin/:id/pin.
func (h *BoardsHandler) TogglePin(c *fiber.Ctx) error {
	ws, err := workspaceFor(c, h.sessions)
	if err != nil {
		return err
	}
	id := c.Params("id")
	current, exists := ws.Bulletin.Get(id)
	if !exists {
		return apperrors.NewNotFound("bulletin record", map[string]any{"id": id})
	}
	msg, ok := ws.TogglePin(id)
	if !ok {
		return c.JSON(fiber.Map{"data": bulletinResponse(current), "applied": false})
	}
	return c.JSON(fiber.Map{"data": bulletinResponse(msg), "applied": true})
}

// AssistBulletin POST /boards/bulletin/draft/assist. A non-empty text
// replaces the draft topic before generating.
func (h *BoardsHandler) AssistBulletin(c *fiber.Ctx) error {
	ws, err := workspaceFor(c, h.sessions)
	if err != nil {
		return err
	}
	var req dto.AssistTextRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	if topic := strings.TrimSpace(req.Text); topic != "" {
		ws.Bulletin.EditDraft(func(d *domain.BulletinDraft) { d.Topic = topic })
	}
	if strings.TrimSpace(ws.Bulletin.Draft().Topic) == "" {
		return apperrors.NewValidationError("topic required", nil)
	}

	generated, applied := ws.AssistBulletinDraft(c.UserContext(), req.Tone)
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"title":     generated.Title,
			"content":   generated.Content,
			"generated": generated.Generated,
		},
		"applied": applied,
		"draft":   bulletinDraftPayload(ws.Bulletin.Draft()),
	})
}

// Week GET /boards/calendar/week?offset=.
func (h *BoardsHandler) Week(c *fiber.Ctx) error {
	ws, err := workspaceFor(c, h.sessions)
	if err != nil {
		return err
	}
	offset := c.QueryInt("offset", 0)
	return c.JSON(fiber.Map{"data": weekResponse(ws.Week(offset))})
}

// SelectSlot POST /boards/calendar/slot.
func (h *BoardsHandler) SelectSlot(c *fiber.Ctx) error {
	ws, err := workspaceFor(c, h.sessions)
	if err != nil {
		return err
	}
	var req dto.SlotRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	date, err := time.ParseInLocation(dayLayout, req.Date, ws.Location())
	if err != nil {
		return apperrors.NewValidationError("date must be YYYY-MM-DD", map[string]any{"date": req.Date})
	}
	if req.Hour < service.FirstGridHour || req.Hour > service.LastGridHour {
		return apperrors.NewValidationError("hour outside the grid", map[string]any{
			"hour": req.Hour, "min": service.FirstGridHour, "max": service.LastGridHour,
		})
	}
	draft := ws.SelectSlot(date, req.Hour)
	return c.JSON(fiber.Map{"data": calendarDraftPayload(draft), "form_open": true})
}

// AssistCalendar POST /boards/calendar/draft/assist.
func (h *BoardsHandler) AssistCalendar(c *fiber.Ctx) error {
	ws, err := workspaceFor(c, h.sessions)
	if err != nil {
		return err
	}
	var req dto.AssistTextRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Text) == "" {
		return apperrors.NewValidationError("text required", nil)
	}
	draft, applied := ws.AssistCalendarDraft(c.UserContext(), req.Text)
	return c.JSON(fiber.Map{"data": calendarDraftPayload(draft), "applied": applied})
}

// ReshipmentEmail POST /boards/reshipments/:id/email-draft.
func (h *BoardsHandler) ReshipmentEmail(c *fiber.Ctx) error {
	ws, err := workspaceFor(c, h.sessions)
	if err != nil {
		return err
	}
	id := c.Params("id")
	email, ok := ws.ReshipmentEmail(c.UserContext(), id)
	if !ok {
		return apperrors.NewNotFound("reshipments record", map[string]any{"id": id})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"reshipment_id": id, "email": email}})
}

func bulletinDraftFrom(p dto.BulletinDraftPayload) (domain.BulletinDraft, error) {
	if p.Category == "" {
		p.Category = domain.CategoryGeneral
	}
	if !p.Category.Valid() {
		return domain.BulletinDraft{}, invalidEnum("category", string(p.Category))
	}
	return domain.BulletinDraft{Title: p.Title, Content: p.Content, Category: p.Category, IsPinned: p.IsPinned, Topic: p.Topic}, nil
}

func calendarDraftFrom(p dto.CalendarDraftPayload) (domain.CalendarDraft, error) {
	if p.Color == "" {
		p.Color = domain.ColorIndigo
	}
	if !p.Color.Valid() {
		return domain.CalendarDraft{}, invalidEnum("color", string(p.Color))
	}
	return domain.CalendarDraft{
		Title:       p.Title,
		Date:        p.Date,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		Description: p.Description,
		Color:       p.Color,
	}, nil
}

func exchangeDraftFrom(p dto.ExchangeDraftPayload) (domain.ExchangeDraft, error) {
	if p.Status == "" {
		p.Status = domain.ExchangePending
	}
	if !p.Status.Valid() {
		return domain.ExchangeDraft{}, invalidEnum("status", string(p.Status))
	}
	return domain.ExchangeDraft{CustomerName: p.CustomerName, Items: p.Items, TrackingNumber: p.TrackingNumber, Status: p.Status, Notes: p.Notes}, nil
}

func returnDraftFrom(p dto.ReturnDraftPayload) (domain.ReturnDraft, error) {
	if p.Status == "" {
		p.Status = domain.ReturnRequested
	}
	if !p.Status.Valid() {
		return domain.ReturnDraft{}, invalidEnum("status", string(p.Status))
	}
	return domain.ReturnDraft{CustomerName: p.CustomerName, OrderNumber: p.OrderNumber, Reason: p.Reason, Status: p.Status}, nil
}

func reshipmentDraftFrom(p dto.ReshipmentDraftPayload) (domain.ReshipmentDraft, error) {
	if p.Status == "" {
		p.Status = domain.ReshipmentProcessing
	}
	if !p.Status.Valid() {
		return domain.ReshipmentDraft{}, invalidEnum("status", string(p.Status))
	}
	return domain.ReshipmentDraft{
		CustomerName:     p.CustomerName,
		OriginalOrderRef: p.OriginalOrderRef,
		Reason:           p.Reason,
		TrackingNumber:   p.TrackingNumber,
		Status:           p.Status,
	}, nil
}

func missingDraftFrom(p dto.MissingDraftPayload) (domain.MissingDraft, error) {
	if p.Status == "" {
		p.Status = domain.MissingSearching
	}
	if !p.Status.Valid() {
		return domain.MissingDraft{}, invalidEnum("status", string(p.Status))
	}
	return domain.MissingDraft{ProductName: p.ProductName, ExpectedLocation: p.ExpectedLocation, Status: p.Status, Notes: p.Notes}, nil
}

func employeeDraftFrom(p dto.EmployeeDraftPayload) (domain.EmployeeDraft, error) {
	return domain.EmployeeDraft{Name: p.Name, RoleLabel: p.RoleLabel, Email: p.Email}, nil
}

func invalidEnum(field, value string) error {
	return apperrors.NewValidationError("invalid "+field, map[string]any{field: value})
}
