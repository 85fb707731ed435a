package auth

import "souqeats/internal/domain"

// Action is a named mutation or restricted view.
type Action string

const (
	ActionManageCatalog Action = "manage_catalog"
	ActionAdvanceOrder  Action = "advance_order"
	ActionToggleOpen    Action = "toggle_open"
	ActionViewOrders    Action = "view_orders"
	ActionViewAdmin     Action = "view_admin"
	ActionViewOwner     Action = "view_owner"
)

// Roles are checked as explicit allowed-sets per action; admin and owner
// capabilities are not nested.
var allowed = map[Action][]domain.Role{
	ActionManageCatalog: {domain.RoleAdmin},
	ActionAdvanceOrder:  {domain.RoleAdmin, domain.RoleOwner},
	ActionToggleOpen:    {domain.RoleAdmin, domain.RoleOwner},
	ActionViewOrders:    {domain.RoleAdmin, domain.RoleOwner},
	ActionViewAdmin:     {domain.RoleAdmin},
	ActionViewOwner:     {domain.RoleAdmin, domain.RoleOwner},
}

// Can reports whether the role may perform the action. Every mutating
// handler and restricted view goes through this single check.
func Can(role domain.Role, action Action) bool {
	for _, r := range allowed[action] {
		if r == role {
			return true
		}
	}
	return false
}
