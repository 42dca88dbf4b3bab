package identity

import (
	"sort"
	"strings"

	"github.com/shrimpcfr/backend/internal/domain/shared"
)

// Role is a fixed user role
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// ErrInvalidRole is returned for roles outside the fixed set
var ErrInvalidRole = shared.NewDomainError("INVALID_ROLE", "Role must be one of admin, editor, viewer")

// IsValid reports whether the role is known
func (r Role) IsValid() bool {
	_, ok := RolePermissions[r]
	return ok
}

// ParseRole parses a role name, case insensitive
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// Module is a permission scope
type Module string

const (
	ModuleUsers      Module = "users"
	ModuleProducts   Module = "products"
	ModuleRates      Module = "rates"
	ModuleConstants  Module = "constants"
	ModuleCalculator Module = "calculator"
	ModuleReports    Module = "reports"
	ModuleDemo       Module = "demo"
)

// Action is an operation within a module
type Action string

const (
	ActionCreate    Action = "create"
	ActionRead      Action = "read"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionCalculate Action = "calculate"
	ActionExport    Action = "export"
)

var crud = []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}

// RolePermissions maps each role to the actions it may perform per module
var RolePermissions = map[Role]map[Module][]Action{
	RoleAdmin: {
		ModuleUsers:      crud,
		ModuleProducts:   crud,
		ModuleRates:      crud,
		ModuleConstants:  crud,
		ModuleCalculator: {ActionRead, ActionCalculate},
		ModuleReports:    {ActionRead, ActionExport},
		ModuleDemo:       {ActionRead},
	},
	RoleEditor: {
		ModuleProducts:   {ActionCreate, ActionRead, ActionUpdate},
		ModuleRates:      {ActionCreate, ActionRead, ActionUpdate},
		ModuleConstants:  {ActionRead, ActionUpdate},
		ModuleCalculator: {ActionRead, ActionCalculate},
		ModuleReports:    {ActionRead, ActionExport},
		ModuleDemo:       {ActionRead},
	},
	RoleViewer: {
		ModuleProducts:   {ActionRead},
		ModuleRates:      {ActionRead},
		ModuleConstants:  {ActionRead},
		ModuleCalculator: {ActionRead, ActionCalculate},
		ModuleReports:    {ActionRead},
		ModuleDemo:       {ActionRead},
	},
}

// HasPermission reports whether role may perform action on module
func HasPermission(role Role, module Module, action Action) bool {
	for _, a := range RolePermissions[role][module] {
		if a == action {
			return true
		}
	}
	return false
}

// PermissionCode formats a permission as "module:action"
func PermissionCode(module Module, action Action) string {
	return string(module) + ":" + string(action)
}

// PermissionCodes returns the sorted "module:action" codes granted to role
func PermissionCodes(role Role) []string {
	codes := make([]string, 0)
	for module, actions := range RolePermissions[role] {
		for _, action := range actions {
			codes = append(codes, PermissionCode(module, action))
		}
	}
	sort.Strings(codes)
	return codes
}
