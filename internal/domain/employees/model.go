package employees

import "time"

type Employee struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	CPF        string     `json:"cpf"`
	Position   string     `json:"position"`
	Department string     `json:"department"`
	HiredAt    *time.Time `json:"hired_at"`
	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"created_at"`
}
