package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"courier-admin/internal/domain"
)

func TestShipmentStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range []domain.ShipmentStatus{"pending", "in_transit", "delivered", "cancelled"} {
		require.Truef(t, s.Valid(), "status %q must be valid", s)
	}
	for _, s := range []domain.ShipmentStatus{"", "IN_TRANSIT", "lost"} {
		require.Falsef(t, s.Valid(), "status %q must be invalid", s)
	}
}

func TestRole_RequiresBranch(t *testing.T) {
	t.Parallel()

	require.False(t, domain.RoleSuperAdmin.RequiresBranch())
	require.True(t, domain.RoleBranchAdmin.RequiresBranch())
	require.True(t, domain.RoleDeliveryUser.RequiresBranch())
	require.False(t, domain.Role("courier").Valid())
}

func TestActor_CanAccessBranch(t *testing.T) {
	t.Parallel()

	branch := int64(3)
	super := domain.Actor{UserID: 1, Role: domain.RoleSuperAdmin}
	admin := domain.Actor{UserID: 2, Role: domain.RoleBranchAdmin, BranchID: &branch}
	orphan := domain.Actor{UserID: 3, Role: domain.RoleBranchAdmin}

	require.True(t, super.CanAccessBranch(99))
	require.True(t, admin.CanAccessBranch(3))
	require.False(t, admin.CanAccessBranch(4))
	require.False(t, orphan.CanAccessBranch(3))
	require.True(t, admin.IsAdmin())
	require.False(t, domain.Actor{Role: domain.RoleDeliveryUser}.IsAdmin())
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	require.True(t, domain.ValidateEmail("ops@branch.example"))
	require.False(t, domain.ValidateEmail("not-an-email"))
	require.False(t, domain.ValidateEmail("a b@c.d"))
}
