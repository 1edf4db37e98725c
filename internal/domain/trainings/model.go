package trainings

import "time"

// Training is one completed safety training for an employee. ExpiresAt is set
// for recurrent trainings (NR refreshers) and nil for one-off ones.
type Training struct {
	ID          int64      `json:"id"`
	EmployeeID  int64      `json:"employee_id"`
	Name        string     `json:"name"`
	CompletedAt time.Time  `json:"completed_at"`
	ExpiresAt   *time.Time `json:"expires_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
