package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaffOnly(t *testing.T) {
	assert.False(t, StaffOnly(nil))
	assert.False(t, StaffOnly(&Principal{ID: 1, IsActive: true}))
	assert.False(t, StaffOnly(&Principal{ID: 1, IsStaff: true, IsActive: false}))
	assert.True(t, StaffOnly(&Principal{ID: 1, IsStaff: true, IsActive: true}))
}

func TestStaffOrReadOnly(t *testing.T) {
	staff := &Principal{ID: 1, IsStaff: true, IsActive: true}
	customer := &Principal{ID: 2, IsActive: true}

	assert.True(t, StaffOrReadOnly(nil, http.MethodGet))
	assert.True(t, StaffOrReadOnly(customer, http.MethodHead))
	assert.True(t, StaffOrReadOnly(nil, http.MethodOptions))

	assert.False(t, StaffOrReadOnly(nil, http.MethodPut))
	assert.False(t, StaffOrReadOnly(customer, http.MethodDelete))
	assert.True(t, StaffOrReadOnly(staff, http.MethodPost))
}

type ownedThing struct{ owner int }

func (o ownedThing) OwnerID() int { return o.owner }

func TestOwnerOrStaff(t *testing.T) {
	staff := &Principal{ID: 1, IsStaff: true, IsActive: true}
	owner := &Principal{ID: 7, IsActive: true}
	other := &Principal{ID: 8, IsActive: true}

	resource := ownedThing{owner: 7}

	assert.True(t, OwnerOrStaff(staff, resource))
	assert.True(t, OwnerOrStaff(owner, resource))
	assert.False(t, OwnerOrStaff(other, resource))
	assert.False(t, OwnerOrStaff(nil, resource))

	// Resources without ownership are denied to non-staff.
	assert.False(t, OwnerOrStaff(owner, struct{}{}))
	assert.True(t, OwnerOrStaff(staff, struct{}{}))
}

func TestUserImplementsOwned(t *testing.T) {
	u := &User{ID: 3}
	assert.True(t, OwnerOrStaff(&Principal{ID: 3, IsActive: true}, u))
	assert.False(t, OwnerOrStaff(&Principal{ID: 4, IsActive: true}, u))
}
