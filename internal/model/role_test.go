package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Role
		wantErr bool
	}{
		{name: "admin", in: "admin", want: RoleAdmin},
		{name: "teacher upper", in: " Teacher ", want: RoleTeacher},
		{name: "parent", in: "parent", want: RoleParent},
		{name: "student is not a role", in: "student", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceRoleFailsClosed(t *testing.T) {
	assert.Equal(t, RoleTeacher, CoerceRole("superuser"))
	assert.Equal(t, RoleTeacher, CoerceRole(""))
	assert.Equal(t, RoleAdmin, CoerceRole("admin"))
}

func TestRoleTitle(t *testing.T) {
	assert.Equal(t, "Parent", RoleParent.Title())
	assert.Equal(t, "", Role("").Title())
}
