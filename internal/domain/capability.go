package domain

import "sort"

// Action names a mutating control on one of the boards.
type Action string

const (
	ActionBulletinCreate   Action = "bulletin.create"
	ActionBulletinPin      Action = "bulletin.pin"
	ActionBulletinDelete   Action = "bulletin.delete"
	ActionCalendarCreate   Action = "calendar.create"
	ActionExchangeCreate   Action = "exchanges.create"
	ActionExchangeStatus   Action = "exchanges.status"
	ActionReturnCreate     Action = "returns.create"
	ActionReturnStatus     Action = "returns.status"
	ActionReturnDelete     Action = "returns.delete"
	ActionReshipmentCreate Action = "reshipments.create"
	ActionReshipmentStatus Action = "reshipments.status"
	ActionMissingCreate    Action = "missing.create"
	ActionMissingStatus    Action = "missing.status"
	ActionMissingDelete    Action = "missing.delete"
	ActionEmployeeCreate   Action = "employees.create"
)

// minimumRole maps every known action to the least privileged role allowed to perform it.
var minimumRole = map[Action]Role{
	ActionBulletinCreate:   RoleStandard,
	ActionBulletinPin:      RoleAdmin,
	ActionBulletinDelete:   RoleAdmin,
	ActionCalendarCreate:   RoleStandard,
	ActionExchangeCreate:   RoleStandard,
	ActionExchangeStatus:   RoleStandard,
	ActionReturnCreate:     RoleStandard,
	ActionReturnStatus:     RoleStandard,
	ActionReturnDelete:     RoleAdmin,
	ActionReshipmentCreate: RoleStandard,
	ActionReshipmentStatus: RoleStandard,
	ActionMissingCreate:    RoleStandard,
	ActionMissingStatus:    RoleStandard,
	ActionMissingDelete:    RoleAdmin,
	ActionEmployeeCreate:   RoleAdmin,
}

// CanMutate is the single capability check for every mutating control.
// Unknown actions and anonymous identities are always denied.
func CanMutate(identity Identity, action Action) bool {
	if identity.ID == "" || !identity.Role.Valid() {
		return false
	}
	required, ok := minimumRole[action]
	if !ok {
		return false
	}
	if required == RoleAdmin {
		return identity.IsAdmin()
	}
	return true
}

// Actions lists every known action in a stable order.
func Actions() []Action {
	actions := make([]Action, 0, len(minimumRole))
	for action := range minimumRole {
		actions = append(actions, action)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })
	return actions
}

// Capabilities evaluates every action for the identity.
func Capabilities(identity Identity) map[Action]bool {
	caps := make(map[Action]bool, len(minimumRole))
	for action := range minimumRole {
		caps[action] = CanMutate(identity, action)
	}
	return caps
}
