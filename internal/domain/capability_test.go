package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanMutate(t *testing.T) {
	admin := Identity{ID: "a", Role: RoleAdmin}
	standard := Identity{ID: "s", Role: RoleStandard}

	adminOnly := map[Action]bool{
		ActionBulletinPin:    true,
		ActionBulletinDelete: true,
		ActionReturnDelete:   true,
		ActionMissingDelete:  true,
		ActionEmployeeCreate: true,
	}
	for _, action := range Actions() {
		assert.True(t, CanMutate(admin, action), action)
		assert.Equal(t, !adminOnly[action], CanMutate(standard, action), action)
	}
}

func TestCanMutate_DeniesUnknown(t *testing.T) {
	assert.False(t, CanMutate(Identity{}, ActionBulletinCreate))
	assert.False(t, CanMutate(Identity{ID: "x", Role: "guest"}, ActionBulletinCreate))
	assert.False(t, CanMutate(Identity{ID: "a", Role: RoleAdmin}, Action("tickets.create")))
}

func TestCapabilities_CoversEveryAction(t *testing.T) {
	caps := Capabilities(Identity{ID: "s", Role: RoleStandard})
	assert.Len(t, caps, len(Actions()))
	assert.True(t, caps[ActionExchangeStatus])
	assert.False(t, caps[ActionEmployeeCreate])
}
