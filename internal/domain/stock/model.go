package stock

import "time"

type DeliveryStatus string

const (
	StatusActive   DeliveryStatus = "active"
	StatusReversed DeliveryStatus = "reversed"
)

// Record is the ledger entry for one equipment type. QuantityOnHand is never
// negative; ReceivedTotal is the lifetime inbound quantity the delivery log is
// replayed against.
type Record struct {
	EquipmentID    int64 `json:"equipment_id"`
	QuantityOnHand int64 `json:"quantity_on_hand"`
	ReceivedTotal  int64 `json:"received_total"`
}

// Delivery is one issuance event. A delivery is only ever Active → Reversed;
// corrections are modeled as reverse + fresh delivery, never edited in place.
type Delivery struct {
	ID          string         `json:"id"`
	EquipmentID int64          `json:"equipment_id"`
	EmployeeID  int64          `json:"employee_id"`
	Quantity    int64          `json:"quantity"`
	DeliveredAt time.Time      `json:"delivered_at"`
	Status      DeliveryStatus `json:"status"`
}

// DeliveryRequest is one line of a kit issuance (bulk delivery).
type DeliveryRequest struct {
	EquipmentID int64 `json:"equipment_id"`
	EmployeeID  int64 `json:"employee_id"`
	Quantity    int64 `json:"quantity"`
}
