package accidents

import "time"

// Accident is one workplace accident/absence record. DaysLost covers the
// resulting leave; CID is the medical classification code when reported.
type Accident struct {
	ID          int64     `json:"id"`
	EmployeeID  int64     `json:"employee_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	DaysLost    int64     `json:"days_lost"`
	CID         string    `json:"cid"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
