// Package policy is the single place where the role/ownership permission
// matrix lives. Every decision is a pure function of the actor and the
// resource; callers act on the verdict, the package itself has no side
// effects and no dependencies beyond the domain types.
package policy

import "hotelhub/internal/domain"

type Action string

const (
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Reason tags a denial so the boundary layer can map it to a response code.
type Reason string

const (
	ReasonNotOwner      Reason = "not_owner"
	ReasonRoleForbidden Reason = "role_forbidden"
	ReasonLastAdmin     Reason = "last_admin"
)

// Actor is the authenticated caller. The credential layer has already
// verified the (ID, Role) pair before the core is invoked.
type Actor struct {
	ID   int64
	Role domain.UserRole
}

type Verdict struct {
	Allowed bool
	Reason  Reason
}

func allow() Verdict          { return Verdict{Allowed: true} }
func deny(r Reason) Verdict   { return Verdict{Reason: r} }
func (v Verdict) Denied() bool { return !v.Allowed }

// AuthorizeHotel decides hotel operations. Reads are open to everyone,
// mutations are admin-only.
func AuthorizeHotel(actor Actor, action Action) Verdict {
	switch action {
	case ActionList, ActionRead:
		return allow()
	case ActionCreate, ActionUpdate, ActionDelete:
		if actor.Role == domain.RoleAdmin {
			return allow()
		}
		return deny(ReasonRoleForbidden)
	}
	return deny(ReasonRoleForbidden)
}

// AuthorizeBooking decides booking operations against the booking's owner.
// For ActionCreate ownerID is the id the booking will belong to: every role
// may book, but only for itself.
func AuthorizeBooking(actor Actor, action Action, ownerID int64) Verdict {
	switch action {
	case ActionCreate:
		if actor.ID == ownerID {
			return allow()
		}
		return deny(ReasonNotOwner)
	case ActionList, ActionRead, ActionUpdate, ActionDelete:
		if actor.Role.IsStaff() || actor.ID == ownerID {
			return allow()
		}
		return deny(ReasonNotOwner)
	}
	return deny(ReasonRoleForbidden)
}

// AuthorizeUser decides user-account operations against the target account.
func AuthorizeUser(actor Actor, action Action, targetID int64) Verdict {
	switch action {
	case ActionList:
		if actor.Role.IsStaff() {
			return allow()
		}
		return deny(ReasonRoleForbidden)
	case ActionCreate:
		if actor.Role.IsStaff() {
			return allow()
		}
		return deny(ReasonRoleForbidden)
	case ActionRead:
		if actor.Role.IsStaff() || actor.ID == targetID {
			return allow()
		}
		return deny(ReasonNotOwner)
	case ActionUpdate:
		if actor.Role == domain.RoleAdmin || actor.ID == targetID {
			return allow()
		}
		return deny(ReasonNotOwner)
	case ActionDelete:
		// Employees may not delete accounts, not even their own.
		if actor.Role == domain.RoleAdmin {
			return allow()
		}
		if actor.Role == domain.RoleUser && actor.ID == targetID {
			return allow()
		}
		return deny(ReasonRoleForbidden)
	}
	return deny(ReasonRoleForbidden)
}

// CanChangeRole reports whether the actor may assign roles to accounts.
func CanChangeRole(actor Actor) bool {
	return actor.Role == domain.RoleAdmin
}

// AssignableRole resolves the role a new account gets. Only admins may mint
// privileged accounts; anyone else gets the request silently downgraded.
func AssignableRole(actor Actor, requested domain.UserRole) domain.UserRole {
	if actor.Role == domain.RoleAdmin && requested.Valid() {
		return requested
	}
	return domain.RoleUser
}

// CanSetBookingStatus reports whether the actor may edit a booking's status
// directly. Status edits are a staff operation; owners go through cancel.
func CanSetBookingStatus(actor Actor) bool {
	return actor.Role.IsStaff()
}

// CanBypassCancellationWindow reports whether the actor is exempt from the
// 48-hour cancellation notice.
func CanBypassCancellationWindow(actor Actor) bool {
	return actor.Role.IsStaff()
}

// CheckAdminDeletion enforces the last-admin invariant: the system must
// never end up without a single admin. otherAdmins is the count of live
// admin accounts excluding the deletion target, taken at the moment of
// deletion inside the same transaction.
func CheckAdminDeletion(target *domain.User, otherAdmins int64) Verdict {
	if target.Role == domain.RoleAdmin && otherAdmins == 0 {
		return deny(ReasonLastAdmin)
	}
	return allow()
}
