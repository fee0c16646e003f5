package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nexushub/internal/api/dto"
	"github.com/spec-kit/nexushub/internal/auth"
	"github.com/spec-kit/nexushub/internal/domain"
	"github.com/spec-kit/nexushub/internal/service"
	apperrors "github.com/spec-kit/nexushub/pkg/util/errorutil"
)

// TabOverview is the only tab without a board behind it.
const TabOverview = "overview"

var tabLabels = map[string]string{
	TabOverview:              "Overview",
	service.BoardBulletin:    "Bulletin board",
	service.BoardCalendar:    "Calendar",
	service.BoardExchanges:   "Exchanges",
	service.BoardReturns:     "Returns",
	service.BoardReshipments: "Reshipments",
	service.BoardMissing:     "Missing products",
	service.BoardEmployees:   "Employees",
}

// DashboardHandler serves the dashboard shell.
type DashboardHandler struct{}

// NewDashboardHandler constructs handler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Dashboard GET /dashboard.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	caps := make(map[string]bool)
	for action, allowed := range domain.Capabilities(principal.Identity) {
		caps[string(action)] = allowed
	}
	return c.JSON(fiber.Map{"data": dto.DashboardResponse{
		Identity:     identityResponse(principal.Identity),
		Tabs:         dashboardTabs(),
		Capabilities: caps,
	}})
}

// Tab GET /dashboard/tabs/:tab. Board tabs point at their board routes;
// other tabs render a placeholder.
func (h *DashboardHandler) Tab(c *fiber.Ctx) error {
	tab := c.Params("tab")
	label, ok := tabLabels[tab]
	if !ok {
		return apperrors.NewNotFound("tab", map[string]any{"tab": tab})
	}
	if tab == TabOverview {
		return c.JSON(fiber.Map{"data": fiber.Map{
			"id":          tab,
			"label":       label,
			"placeholder": true,
			"message":     "This section is under construction.",
		}})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"id":          tab,
		"label":       label,
		"placeholder": false,
		"href":        "/boards/" + tab,
	}})
}

func dashboardTabs() []dto.TabResponse {
	tabs := []dto.TabResponse{{ID: TabOverview, Label: tabLabels[TabOverview]}}
	for _, name := range service.BoardNames() {
		tabs = append(tabs, dto.TabResponse{ID: name, Label: tabLabels[name], Board: true})
	}
	return tabs
}
