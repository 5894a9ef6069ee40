package entity

import "time"

// Company representa un tenant del sistema. Todos los registros de inventario
// se escopan por CompanyID.
type Company struct {
	ID        string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Address   string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
