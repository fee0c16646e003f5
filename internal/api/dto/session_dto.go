package dto

import (
	"time"

	"github.com/spec-kit/nexushub/internal/domain"
)

// LoginRequest payload. Email is optional.
type LoginRequest struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// IdentityResponse describes the logged-in user.
type IdentityResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	AvatarURL string      `json:"avatar"`
}

// LoginResponse returns the bearer token for the new session.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Identity  IdentityResponse `json:"identity"`
}

// TabResponse is one dashboard tab.
type TabResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Board bool   `json:"board"`
}

// DashboardResponse is the shell of the dashboard.
type DashboardResponse struct {
	Identity     IdentityResponse `json:"identity"`
	Tabs         []TabResponse    `json:"tabs"`
	Capabilities map[string]bool  `json:"capabilities"`
}

// ActivityEntryResponse is one audit log line.
type ActivityEntryResponse struct {
	ID        string         `json:"id"`
	Board     string         `json:"board"`
	Action    string         `json:"action"`
	RecordID  string         `json:"record_id"`
	ActorID   string         `json:"actor_id"`
	ActorName string         `json:"actor_name"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}
