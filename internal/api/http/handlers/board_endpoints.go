package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nexushub/internal/api/dto"
	"github.com/spec-kit/nexushub/internal/auth"
	"github.com/spec-kit/nexushub/internal/board"
	"github.com/spec-kit/nexushub/internal/service"
	apperrors "github.com/spec-kit/nexushub/pkg/util/errorutil"
)

const dayLayout = "2006-01-02"

// boardEndpoints serves the routes every board shares.
type boardEndpoints[R any, D any] struct {
	name     string
	sessions *service.SessionService
	pick     func(*service.Workspace) *board.Board[R, D]
	record   func(R) any
	draft    func(D) any
	decode   func(c *fiber.Ctx) (D, error)
	// validate runs before create, on submitted and stored drafts alike.
	validate func(D, *service.Workspace) error
	// filter accepts values of the status query; nil rejects any.
	filter func(string) bool
	// status accepts values of the status endpoint; nil hides the endpoint.
	status    func(string) bool
	canDelete bool
}

type mountable interface {
	mount(router fiber.Router)
}

func (e *boardEndpoints[R, D]) mount(router fiber.Router) {
	group := router.Group("/" + e.name)
	group.Get("", e.list)
	group.Post("", e.create)
	group.Get("/draft", e.getDraft)
	group.Put("/draft", e.putDraft)
	group.Post("/form/open", e.openForm)
	group.Post("/form/close", e.closeForm)
	if e.status != nil {
		group.Patch("/:id/status", e.setStatus)
	}
	if e.canDelete {
		group.Delete("/:id", e.remove)
	}
}

func (e *boardEndpoints[R, D]) resolve(c *fiber.Ctx) (*service.Workspace, *board.Board[R, D], error) {
	ws, err := workspaceFor(c, e.sessions)
	if err != nil {
		return nil, nil, err
	}
	return ws, e.pick(ws), nil
}

// list GET /boards/:board.
func (e *boardEndpoints[R, D]) list(c *fiber.Ctx) error {
	_, b, err := e.resolve(c)
	if err != nil {
		return err
	}
	criteria := board.Criteria{
		Search: strings.TrimSpace(c.Query("q")),
		Status: strings.TrimSpace(c.Query("status")),
		Day:    strings.TrimSpace(c.Query("date")),
	}
	if criteria.HasStatus() && (e.filter == nil || !e.filter(criteria.Status)) {
		return apperrors.NewValidationError("unknown status filter", map[string]any{"status": criteria.Status})
	}
	if criteria.Day != "" {
		if _, err := time.Parse(dayLayout, criteria.Day); err != nil {
			return apperrors.NewValidationError("date must be YYYY-MM-DD", map[string]any{"date": criteria.Day})
		}
	}
	b.SetCriteria(criteria)

	view := b.View()
	items := make([]any, 0, len(view))
	for _, rec := range view {
		items = append(items, e.record(rec))
	}
	return c.JSON(fiber.Map{
		"data":      items,
		"criteria":  dto.CriteriaResponse{Search: criteria.Search, Status: criteria.Status, Day: criteria.Day},
		"form_open": b.FormOpen(),
		"total":     b.Len(),
	})
}

// create POST /boards/:board. An empty body submits the stored draft.
func (e *boardEndpoints[R, D]) create(c *fiber.Ctx) error {
	ws, b, err := e.resolve(c)
	if err != nil {
		return err
	}
	draft := b.Draft()
	if len(c.Body()) > 0 {
		if draft, err = e.decode(c); err != nil {
			return err
		}
	}
	if e.validate != nil {
		if err := e.validate(draft, ws); err != nil {
			return err
		}
	}

	rec, ok := b.Create(draft)
	if !ok {
		return c.JSON(fiber.Map{"data": nil, "applied": false})
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": e.record(rec), "applied": true})
}

// getDraft GET /boards/:board/draft.
func (e *boardEndpoints[R, D]) getDraft(c *fiber.Ctx) error {
	_, b, err := e.resolve(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": e.draft(b.Draft()), "form_open": b.FormOpen()})
}

// putDraft PUT /boards/:board/draft.
func (e *boardEndpoints[R, D]) putDraft(c *fiber.Ctx) error {
	_, b, err := e.resolve(c)
	if err != nil {
		return err
	}
	draft, err := e.decode(c)
	if err != nil {
		return err
	}
	b.SetDraft(draft)
	return c.JSON(fiber.Map{"data": e.draft(draft), "form_open": b.FormOpen()})
}

// openForm POST /boards/:board/form/open.
func (e *boardEndpoints[R, D]) openForm(c *fiber.Ctx) error {
	_, b, err := e.resolve(c)
	if err != nil {
		return err
	}
	b.OpenForm()
	return c.JSON(fiber.Map{"form_open": true})
}

// closeForm POST /boards/:board/form/close.
func (e *boardEndpoints[R, D]) closeForm(c *fiber.Ctx) error {
	_, b, err := e.resolve(c)
	if err != nil {
		return err
	}
	b.CloseForm()
	return c.JSON(fiber.Map{"form_open": false})
}

// setStatus PATCH /boards/:board/:id/status.
func (e *boardEndpoints[R, D]) setStatus(c *fiber.Ctx) error {
	_, b, err := e.resolve(c)
	if err != nil {
		return err
	}
	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if !e.status(req.Status) {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": req.Status})
	}

	id := c.Params("id")
	current, exists := b.Get(id)
	if !exists {
		return apperrors.NewNotFound(e.name+" record", map[string]any{"id": id})
	}
	rec, ok := b.SetStatus(id, req.Status)
	if !ok {
		return c.JSON(fiber.Map{"data": e.record(current), "applied": false})
	}
	return c.JSON(fiber.Map{"data": e.record(rec), "applied": true})
}

// remove DELETE /boards/:board/:id. Non-admin callers get deleted=false.
func (e *boardEndpoints[R, D]) remove(c *fiber.Ctx) error {
	_, b, err := e.resolve(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	if _, exists := b.Get(id); !exists {
		return apperrors.NewNotFound(e.name+" record", map[string]any{"id": id})
	}
	return c.JSON(fiber.Map{"deleted": b.Delete(id)})
}

func workspaceFor(c *fiber.Ctx, sessions *service.SessionService) (*service.Workspace, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("session required")
	}
	ws, ok := sessions.Workspace(c.UserContext(), principal.SessionID, principal.Identity)
	if !ok {
		return nil, apperrors.NewUnauthorized("session ended")
	}
	return ws, nil
}

func decodeInto[P any, D any](c *fiber.Ctx, convert func(P) (D, error)) (D, error) {
	var payload P
	if err := c.BodyParser(&payload); err != nil {
		var zero D
		return zero, apperrors.NewValidationError("invalid payload", nil)
	}
	return convert(payload)
}
