package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role   Role
		module Module
		action Action
		want   bool
	}{
		{RoleAdmin, ModuleUsers, ActionDelete, true},
		{RoleAdmin, ModuleReports, ActionExport, true},
		{RoleAdmin, ModuleCalculator, ActionDelete, false},
		{RoleEditor, ModuleUsers, ActionRead, false},
		{RoleEditor, ModuleProducts, ActionUpdate, true},
		{RoleEditor, ModuleProducts, ActionDelete, false},
		{RoleEditor, ModuleConstants, ActionCreate, false},
		{RoleEditor, ModuleConstants, ActionUpdate, true},
		{RoleViewer, ModuleRates, ActionRead, true},
		{RoleViewer, ModuleRates, ActionUpdate, false},
		{RoleViewer, ModuleCalculator, ActionCalculate, true},
		{RoleViewer, ModuleReports, ActionExport, false},
		{RoleViewer, ModuleDemo, ActionRead, true},
		{Role("ghost"), ModuleDemo, ActionRead, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.module)+"/"+string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(tt.role, tt.module, tt.action))
		})
	}
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole(" Editor ")
	require.NoError(t, err)
	assert.Equal(t, RoleEditor, role)

	_, err = ParseRole("root")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestPermissionCodes(t *testing.T) {
	codes := PermissionCodes(RoleViewer)
	assert.Equal(t, []string{
		"calculator:calculate",
		"calculator:read",
		"constants:read",
		"demo:read",
		"products:read",
		"rates:read",
		"reports:read",
	}, codes)

	assert.Len(t, PermissionCodes(RoleAdmin), 16+2+2+1)
	assert.Empty(t, PermissionCodes(Role("ghost")))
}
