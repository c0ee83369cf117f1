package domain

import "time"

// Shipment is a trackable delivery record.
type Shipment struct {
	ID               int64
	TrackingNumber   string
	BranchID         int64
	SenderName       string
	SenderPhone      string
	SenderAddress    string
	RecipientName    string
	RecipientPhone   string
	RecipientAddress string
	Status           ShipmentStatus
	DeliveryUserID   *int64
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ShipmentDetails bundles a shipment with the rows the status form shows next to it.
type ShipmentDetails struct {
	Shipment     Shipment
	Branch       *Branch
	DeliveryUser *User
}

// TrackingEntry is an immutable audit row written on every status update.
type TrackingEntry struct {
	ID         int64
	ShipmentID int64
	Status     ShipmentStatus
	Remarks    string
	CreatedBy  int64
	CreatedAt  time.Time
}

// StatusUpdate carries a requested status change.
// A nil DeliveryUserID clears the assignment.
type StatusUpdate struct {
	ShipmentID     int64
	Status         ShipmentStatus
	DeliveryUserID *int64
	Notes          string
}

// StatusUpdateResult is returned after a committed status update.
type StatusUpdateResult struct {
	Shipment Shipment
	Entry    TrackingEntry
}
