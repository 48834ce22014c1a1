package policy

import (
	"testing"

	"hotelhub/internal/domain"

	"github.com/stretchr/testify/assert"
)

var (
	guest    = Actor{ID: 1, Role: domain.RoleUser}
	employee = Actor{ID: 2, Role: domain.RoleEmployee}
	admin    = Actor{ID: 3, Role: domain.RoleAdmin}
)

func TestAuthorizeHotel_ReadsOpenToEveryone(t *testing.T) {
	for _, actor := range []Actor{guest, employee, admin} {
		assert.True(t, AuthorizeHotel(actor, ActionList).Allowed)
		assert.True(t, AuthorizeHotel(actor, ActionRead).Allowed)
	}
}

func TestAuthorizeHotel_MutationsAdminOnly(t *testing.T) {
	for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
		v := AuthorizeHotel(employee, action)
		assert.True(t, v.Denied())
		assert.Equal(t, ReasonRoleForbidden, v.Reason)

		v = AuthorizeHotel(guest, action)
		assert.True(t, v.Denied())

		assert.True(t, AuthorizeHotel(admin, action).Allowed)
	}
}

func TestAuthorizeBooking_CreateOnlyForSelf(t *testing.T) {
	assert.True(t, AuthorizeBooking(guest, ActionCreate, guest.ID).Allowed)

	v := AuthorizeBooking(guest, ActionCreate, 99)
	assert.True(t, v.Denied())
	assert.Equal(t, ReasonNotOwner, v.Reason)
}

func TestAuthorizeBooking_OwnershipOrStaff(t *testing.T) {
	ownerID := guest.ID

	assert.True(t, AuthorizeBooking(guest, ActionRead, ownerID).Allowed)
	assert.True(t, AuthorizeBooking(employee, ActionRead, ownerID).Allowed)
	assert.True(t, AuthorizeBooking(admin, ActionDelete, ownerID).Allowed)

	stranger := Actor{ID: 77, Role: domain.RoleUser}
	v := AuthorizeBooking(stranger, ActionDelete, ownerID)
	assert.True(t, v.Denied())
	assert.Equal(t, ReasonNotOwner, v.Reason)
}

func TestAuthorizeUser_ListStaffOnly(t *testing.T) {
	assert.True(t, AuthorizeUser(employee, ActionList, 0).Allowed)
	assert.True(t, AuthorizeUser(admin, ActionList, 0).Allowed)

	v := AuthorizeUser(guest, ActionList, 0)
	assert.True(t, v.Denied())
	assert.Equal(t, ReasonRoleForbidden, v.Reason)
}

func TestAuthorizeUser_ReadSelfOrStaff(t *testing.T) {
	assert.True(t, AuthorizeUser(guest, ActionRead, guest.ID).Allowed)
	assert.True(t, AuthorizeUser(employee, ActionRead, guest.ID).Allowed)
	assert.True(t, AuthorizeUser(guest, ActionRead, 99).Denied())
}

func TestAuthorizeUser_DeleteEmployeeDenied(t *testing.T) {
	assert.True(t, AuthorizeUser(guest, ActionDelete, guest.ID).Allowed)
	assert.True(t, AuthorizeUser(admin, ActionDelete, guest.ID).Allowed)

	v := AuthorizeUser(employee, ActionDelete, employee.ID)
	assert.True(t, v.Denied())
	assert.Equal(t, ReasonRoleForbidden, v.Reason)
}

func TestAssignableRole_DowngradedForNonAdmins(t *testing.T) {
	assert.Equal(t, domain.RoleUser, AssignableRole(employee, domain.RoleAdmin))
	assert.Equal(t, domain.RoleUser, AssignableRole(employee, domain.RoleEmployee))
	assert.Equal(t, domain.RoleEmployee, AssignableRole(admin, domain.RoleEmployee))
	assert.Equal(t, domain.RoleAdmin, AssignableRole(admin, domain.RoleAdmin))
	assert.Equal(t, domain.RoleUser, AssignableRole(admin, domain.UserRole("superuser")))
}

func TestCanSetBookingStatus(t *testing.T) {
	assert.False(t, CanSetBookingStatus(guest))
	assert.True(t, CanSetBookingStatus(employee))
	assert.True(t, CanSetBookingStatus(admin))
}

func TestCheckAdminDeletion_LastAdminBlocked(t *testing.T) {
	target := &domain.User{ID: 3, Role: domain.RoleAdmin}

	v := CheckAdminDeletion(target, 0)
	assert.True(t, v.Denied())
	assert.Equal(t, ReasonLastAdmin, v.Reason)

	assert.True(t, CheckAdminDeletion(target, 1).Allowed)
}

func TestCheckAdminDeletion_NonAdminUnaffected(t *testing.T) {
	target := &domain.User{ID: 1, Role: domain.RoleUser}
	assert.True(t, CheckAdminDeletion(target, 0).Allowed)
}
