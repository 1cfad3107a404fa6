package auth

import "net/http"

// Principal is the authenticated identity passed explicitly into every
// protected handler. A nil principal means the request is anonymous.
type Principal struct {
	ID       int
	Email    string
	Name     string
	IsStaff  bool
	IsActive bool
}

// Owned is the shape a resource exposes so OwnerOrStaff can match it
// against the requester.
type Owned interface {
	OwnerID() int
}

func principalFromUser(u *User) *Principal {
	return &Principal{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		IsStaff:  u.IsStaff,
		IsActive: u.IsActive,
	}
}

// StaffOnly allows any operation only to an authenticated staff principal.
func StaffOnly(p *Principal) bool {
	return p != nil && p.IsActive && p.IsStaff
}

// StaffOrReadOnly lets anyone read; mutations require staff.
func StaffOrReadOnly(p *Principal, method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return StaffOnly(p)
}

// OwnerOrStaff allows staff, or the owner of the resource. Resources that
// do not expose ownership are denied.
func OwnerOrStaff(p *Principal, resource interface{}) bool {
	if StaffOnly(p) {
		return true
	}
	if p == nil {
		return false
	}
	owned, ok := resource.(Owned)
	if !ok {
		return false
	}
	return owned.OwnerID() == p.ID
}
