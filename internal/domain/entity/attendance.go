package entity

import "time"

// Estados de un registro de asistencia.
const (
	AttendanceStatusPresent = "present"
	AttendanceStatusAbsent  = "absent"
	AttendanceStatusLeave   = "leave"
	AttendanceStatusHalfDay = "half_day"
)

// Attendance es el registro de asistencia de un usuario para un día.
// WorkDate se guarda como fecha (sin hora); a lo sumo un registro por
// usuario y día.
type Attendance struct {
	ID        string
	CompanyID string
	UserID    string
	ShopID    string // vacío cuando el turno no se asocia a una droguería
	WorkDate  time.Time
	CheckIn   time.Time
	CheckOut  *time.Time // nil mientras el turno siga abierto
	Status    string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidAttendanceStatus informa si s es un estado conocido.
func ValidAttendanceStatus(s string) bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent,
		AttendanceStatusLeave, AttendanceStatusHalfDay:
		return true
	}
	return false
}
