package equipment

import "time"

// Equipment is one trackable PPE type. CACode/CAExpiresAt hold the regulatory
// certification when the equipment has one.
type Equipment struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	CACode      string     `json:"ca_code"`
	CAExpiresAt *time.Time `json:"ca_expires_at"`
	MinStock    int64      `json:"min_stock"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
}
