package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/sampark_kvk/internal/model"
)

func TestFor_EveryRole(t *testing.T) {
	for _, role := range model.Roles {
		t.Run(string(role), func(t *testing.T) {
			items := For(role)
			require.NotEmpty(t, items)
			assert.Equal(t, ViewDashboard, items[0].View)

			for _, it := range items {
				_, err := ParseView(string(it.View))
				assert.NoError(t, err)
				assert.NotEmpty(t, it.Label)
			}

			assert.Equal(t, items, For(role))
		})
	}
}

func TestFor_ReturnsCopy(t *testing.T) {
	items := For(model.RoleAdmin)
	items[0].Label = "changed"

	assert.Equal(t, "Overview", For(model.RoleAdmin)[0].Label)
}

func TestFor_UnknownRole(t *testing.T) {
	assert.Nil(t, For(model.Role("owner")))
}

func TestAllows(t *testing.T) {
	tests := []struct {
		role model.Role
		view ViewState
		want bool
	}{
		{model.RoleAdmin, ViewAdminUsers, true},
		{model.RoleAdmin, ViewAttendance, false},
		{model.RoleTeacher, ViewAttendance, true},
		{model.RoleTeacher, ViewSchedule, false},
		{model.RoleParent, ViewSchedule, true},
		{model.RoleParent, ViewAdminUsers, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.view), func(t *testing.T) {
			assert.Equal(t, tt.want, Allows(tt.role, tt.view))
		})
	}
}

func TestParseView(t *testing.T) {
	v, err := ParseView("AI_ASSISTANT")
	require.NoError(t, err)
	assert.Equal(t, ViewAIAssistant, v)

	_, err = ParseView("dashboard")
	assert.ErrorIs(t, err, ErrUnknownView)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Lesson Planner", Label(model.RoleTeacher, ViewAIAssistant))
	assert.Equal(t, "Study Helper", Label(model.RoleParent, ViewAIAssistant))
	assert.Equal(t, "ADMIN_USERS", Label(model.RoleParent, ViewAdminUsers))
}
