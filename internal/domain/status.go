package domain

type (
	// ShipmentStatus represents the lifecycle label of a shipment.
	ShipmentStatus string
	// BranchStatus represents whether a branch is operating.
	BranchStatus string
	// UserStatus represents whether a staff account is enabled.
	UserStatus string
	// Role represents a staff role.
	Role string
)

// List of possible shipment statuses
const (
	ShipmentPending   ShipmentStatus = "pending"
	ShipmentInTransit ShipmentStatus = "in_transit"
	ShipmentDelivered ShipmentStatus = "delivered"
	ShipmentCancelled ShipmentStatus = "cancelled"
)

// List of possible branch statuses
const (
	BranchActive   BranchStatus = "active"
	BranchInactive BranchStatus = "inactive"
)

// List of possible user statuses
const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

// List of staff roles
const (
	RoleSuperAdmin   Role = "super_admin"
	RoleBranchAdmin  Role = "branch_admin"
	RoleDeliveryUser Role = "delivery_user"
)

var allowedShipmentStatuses = [...]ShipmentStatus{
	ShipmentPending, ShipmentInTransit, ShipmentDelivered, ShipmentCancelled,
}

var allowedRoles = [...]Role{
	RoleSuperAdmin, RoleBranchAdmin, RoleDeliveryUser,
}

// Valid checks if the ShipmentStatus is valid
func (s ShipmentStatus) Valid() bool {
	for _, v := range allowedShipmentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the BranchStatus is valid
func (s BranchStatus) Valid() bool {
	return s == BranchActive || s == BranchInactive
}

// Valid checks if the UserStatus is valid
func (s UserStatus) Valid() bool {
	return s == UserActive || s == UserInactive
}

// Valid checks if the Role is valid
func (r Role) Valid() bool {
	for _, v := range allowedRoles {
		if r == v {
			return true
		}
	}
	return false
}

// RequiresBranch reports whether users with this role must belong to a branch.
func (r Role) RequiresBranch() bool {
	return r == RoleBranchAdmin || r == RoleDeliveryUser
}
