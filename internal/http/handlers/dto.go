package handlers

import (
	"time"

	"courier-admin/internal/domain"
)

type shipmentDTO struct {
	ID               int64                 `json:"id"`
	TrackingNumber   string                `json:"tracking_number"`
	BranchID         int64                 `json:"branch_id"`
	SenderName       string                `json:"sender_name"`
	SenderPhone      string                `json:"sender_phone"`
	SenderAddress    string                `json:"sender_address"`
	RecipientName    string                `json:"recipient_name"`
	RecipientPhone   string                `json:"recipient_phone"`
	RecipientAddress string                `json:"recipient_address"`
	Status           domain.ShipmentStatus `json:"status"`
	DeliveryUserID   *int64                `json:"delivery_user_id"`
	Notes            string                `json:"notes"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

type shipmentDetailsDTO struct {
	Shipment     shipmentDTO `json:"shipment"`
	Branch       *branchDTO  `json:"branch"`
	DeliveryUser *userDTO    `json:"delivery_user"`
}

type trackingDTO struct {
	ID         int64                 `json:"id"`
	ShipmentID int64                 `json:"shipment_id"`
	Status     domain.ShipmentStatus `json:"status"`
	Remarks    string                `json:"remarks"`
	CreatedBy  int64                 `json:"created_by"`
	CreatedAt  time.Time             `json:"created_at"`
}

type updateStatusRequest struct {
	Status         domain.ShipmentStatus `json:"status"`
	DeliveryUserID *int64                `json:"delivery_user_id"`
	Notes          string                `json:"notes"`
}

type updateStatusResponse struct {
	Shipment shipmentDTO `json:"shipment"`
	Tracking trackingDTO `json:"tracking"`
}

type branchDTO struct {
	ID      int64               `json:"id"`
	Name    string              `json:"name"`
	Code    string              `json:"code"`
	Address string              `json:"address"`
	Phone   string              `json:"phone"`
	Email   string              `json:"email"`
	Status  domain.BranchStatus `json:"status"`
}

type createBranchRequest struct {
	Name    string              `json:"name"`
	Code    string              `json:"code"`
	Address string              `json:"address"`
	Phone   string              `json:"phone"`
	Email   string              `json:"email"`
	Status  domain.BranchStatus `json:"status"`
}

type setBranchStatusRequest struct {
	Status domain.BranchStatus `json:"status"`
}

// userDTO never carries the password hash.
type userDTO struct {
	ID       int64             `json:"id"`
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Phone    string            `json:"phone"`
	Role     domain.Role       `json:"role"`
	BranchID *int64            `json:"branch_id"`
	Status   domain.UserStatus `json:"status"`
}

type createUserRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Role     domain.Role `json:"role"`
	BranchID *int64      `json:"branch_id"`
	Password string      `json:"password"`
}
