package permissions

// Principal is the authenticated identity supplied by the auth middleware
// to every mutating operation.
type Principal struct {
	ID       string
	Username string
	IsAdmin  bool
}

// Action names what the principal wants to do with a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource carries the ownership facts the capability check composes with
// the principal's role. AdminOnly marks resources whose mutation is
// reserved to administrators regardless of ownership (categories).
type Resource struct {
	OwnerID   string
	AdminOnly bool
}

// Allowed reports whether the principal may perform the action on the
// resource. Reads are always allowed; mutation requires ownership or the
// admin role, and admin-only resources require the admin role.
func Allowed(p Principal, action Action, res Resource) bool {
	if action == ActionRead {
		return true
	}
	if p.IsAdmin {
		return true
	}
	if res.AdminOnly {
		return false
	}
	return res.OwnerID != "" && res.OwnerID == p.ID
}
