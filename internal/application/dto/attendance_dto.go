package dto

import "time"

// CheckInRequest body de POST /api/attendance. Date vacío usa el día actual.
type CheckInRequest struct {
	ShopID string `json:"shop_id" validate:"omitempty,uuid"`
	Date   string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status string `json:"status" validate:"omitempty,oneof=present absent leave half_day"`
	Notes  string `json:"notes" validate:"max=500"`
}

// AttendanceResponse salida de un registro de asistencia con los nombres
// resueltos.
type AttendanceResponse struct {
	ID        string     `json:"id"`
	CompanyID string     `json:"company_id"`
	UserID    string     `json:"user_id"`
	UserName  string     `json:"user_name"`
	ShopID    string     `json:"shop_id,omitempty"`
	ShopName  string     `json:"shop_name,omitempty"`
	Date      string     `json:"date"`
	CheckIn   time.Time  `json:"check_in"`
	CheckOut  *time.Time `json:"check_out,omitempty"`
	Status    string     `json:"status"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AttendanceListResponse lista paginada de asistencia.
type AttendanceListResponse struct {
	Items []AttendanceResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
