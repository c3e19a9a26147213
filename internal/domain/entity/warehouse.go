package entity

import "time"

// Warehouse representa una bodega central desde la que se despacha a las droguerías.
type Warehouse struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
