package domain

import "time"

// Branch is a physical business location owning shipments and staff.
type Branch struct {
	ID        int64
	Name      string
	Code      string
	Address   string
	Phone     string
	Email     string
	Status    BranchStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
