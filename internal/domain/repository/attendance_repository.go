package repository

import (
	"time"

	"github.com/jdruizm/Botica-api/internal/domain/entity"
)

// AttendanceFilter filtra el listado de asistencia. Fechas nil y campos
// vacíos no filtran.
type AttendanceFilter struct {
	From   *time.Time
	To     *time.Time
	ShopID string
	UserID string
	Limit  int
	Offset int
}

// AttendanceRepository define el puerto de persistencia para Attendance (DIP).
type AttendanceRepository interface {
	Create(att *entity.Attendance) error
	GetByID(id string) (*entity.Attendance, error)
	// GetByUserAndDate respalda la regla de un registro por usuario y día.
	GetByUserAndDate(userID string, date time.Time) (*entity.Attendance, error)
	Update(att *entity.Attendance) error
	ListByCompany(companyID string, filter AttendanceFilter) ([]*entity.Attendance, error)
	Delete(id string) error
}
