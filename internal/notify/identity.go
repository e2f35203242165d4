package notify

import "studio-notify/internal/event"

// Identity is the authenticated user viewing the dashboard. It is read-only
// input to the routing and presentation layers.
type Identity struct {
	UserID int64
	Name   string
	Roles  []string
}

// HasRole reports whether the identity holds the given role.
func (id Identity) HasRole(role string) bool {
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Capability names an action the policy layer can grant. The same checks back
// both the notification routing policy and the dashboard screens, so the two
// cannot drift apart.
type Capability string

const (
	CapManageOrders   Capability = "manage_orders"
	CapManageTasks    Capability = "manage_tasks"
	CapViewFinance    Capability = "view_finance"
	CapManageSettings Capability = "manage_settings"
)

var capabilityRoles = map[Capability][]string{
	CapManageOrders:   {event.RoleClientManager},
	CapManageTasks:    {event.RoleClientManager},
	CapViewFinance:    {event.RoleFinance, event.RoleClientManager},
	CapManageSettings: {},
}

// Can reports whether the identity may perform the given capability.
// Administrators can do everything.
func Can(id Identity, cap Capability) bool {
	if id.HasRole(event.RoleAdmin) {
		return true
	}
	for _, role := range capabilityRoles[cap] {
		if id.HasRole(role) {
			return true
		}
	}
	return false
}
