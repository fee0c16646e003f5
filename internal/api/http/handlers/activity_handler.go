package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nexushub/internal/api/dto"
	"github.com/spec-kit/nexushub/internal/service"
)

// ActivityHandler lists the audit trail.
type ActivityHandler struct {
	activity *service.ActivityService
}

// NewActivityHandler constructs handler.
func NewActivityHandler(activity *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// List GET /activity?limit=.
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	entries, err := h.activity.Recent(c.UserContext(), c.QueryInt("limit", 50))
	if err != nil {
		return err
	}
	items := make([]dto.ActivityEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, activityResponse(entry))
	}
	return c.JSON(fiber.Map{"data": items, "persistent": h.activity.Persistent()})
}
