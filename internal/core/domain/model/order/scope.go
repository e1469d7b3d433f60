package order

import "ordering/internal/core/domain/model/kernel"

// Scope is a visibility filter over orders. The zero value matches every
// order.
type Scope struct {
	region  kernel.Region
	ownerID string
}

// Unrestricted matches all orders.
func Unrestricted() Scope {
	return Scope{}
}

// InRegion matches orders placed in region.
func InRegion(region kernel.Region) Scope {
	return Scope{region: region}
}

// OwnedBy matches orders placed by userID.
func OwnedBy(userID string) Scope {
	return Scope{ownerID: userID}
}

// Region returns the region constraint, if any.
func (s Scope) Region() (kernel.Region, bool) {
	return s.region, s.region != ""
}

// OwnerID returns the owner constraint, if any.
func (s Scope) OwnerID() (string, bool) {
	return s.ownerID, s.ownerID != ""
}

func (s Scope) IsUnrestricted() bool {
	return s.region == "" && s.ownerID == ""
}

// Matches evaluates the filter in memory. Repositories translate the same
// constraints into WHERE clauses.
func (s Scope) Matches(o *Order) bool {
	if o == nil {
		return false
	}
	if s.region != "" && o.Region() != s.region {
		return false
	}
	if s.ownerID != "" && o.UserID() != s.ownerID {
		return false
	}
	return true
}
