package kafka

import (
	"strings"
	"time"

	"courier-admin/internal/service/ingest"
)

// ShipmentCreatedDTO is the wire form of a shipment-created event
type ShipmentCreatedDTO struct {
	TrackingNumber   string    `json:"tracking_number"`
	BranchID         int64     `json:"branch_id"`
	SenderName       string    `json:"sender_name"`
	SenderPhone      string    `json:"sender_phone"`
	SenderAddress    string    `json:"sender_address"`
	RecipientName    string    `json:"recipient_name"`
	RecipientPhone   string    `json:"recipient_phone"`
	RecipientAddress string    `json:"recipient_address"`
	Notes            string    `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToDomain converts ShipmentCreatedDTO to ingest.Event
func ToDomain(dto ShipmentCreatedDTO) ingest.Event {
	return ingest.Event{
		TrackingNumber:   strings.TrimSpace(dto.TrackingNumber),
		BranchID:         dto.BranchID,
		SenderName:       dto.SenderName,
		SenderPhone:      dto.SenderPhone,
		SenderAddress:    dto.SenderAddress,
		RecipientName:    dto.RecipientName,
		RecipientPhone:   dto.RecipientPhone,
		RecipientAddress: dto.RecipientAddress,
		Notes:            dto.Notes,
		CreatedAt:        dto.CreatedAt,
	}
}
