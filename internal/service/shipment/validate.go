package shipment

import (
	"fmt"

	"courier-admin/internal/apperr"
	"courier-admin/internal/domain"
)

var statusChoices = fmt.Sprintf("must be one of %s, %s, %s, %s",
	domain.ShipmentPending, domain.ShipmentInTransit, domain.ShipmentDelivered, domain.ShipmentCancelled)

// validateUpdate checks the request fields that do not need storage.
func validateUpdate(in domain.StatusUpdate) error {
	verr := apperr.NewValidationError()

	switch {
	case in.Status == "":
		verr.Add("status", "is required")
	case !in.Status.Valid():
		verr.Add("status", statusChoices)
	}

	switch {
	case in.DeliveryUserID != nil && *in.DeliveryUserID <= 0:
		verr.Add("delivery_user_id", "must be a positive id")
	case in.Status == domain.ShipmentInTransit && in.DeliveryUserID == nil:
		verr.Add("delivery_user_id", "is required when status is in_transit")
	}

	return verr.OrNil()
}

// deliveryUserProblem explains why u cannot be assigned to a shipment of branchID, or returns "".
func deliveryUserProblem(u *domain.User, branchID int64) string {
	switch {
	case u.Role != domain.RoleDeliveryUser:
		return "user is not a delivery user"
	case u.Status != domain.UserActive:
		return "delivery user is not active"
	case u.BranchID == nil || *u.BranchID != branchID:
		return "delivery user belongs to another branch"
	}
	return ""
}
