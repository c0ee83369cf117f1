package ingest

import "time"

// Event announces a shipment created outside this service.
type Event struct {
	TrackingNumber   string
	BranchID         int64
	SenderName       string
	SenderPhone      string
	SenderAddress    string
	RecipientName    string
	RecipientPhone   string
	RecipientAddress string
	Notes            string
	CreatedAt        time.Time
}
