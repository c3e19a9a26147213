package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jdruizm/Botica-api/internal/domain"
	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
)

var _ repository.AttendanceRepository = (*AttendanceRepo)(nil)

// AttendanceRepo implementación de AttendanceRepository sobre PostgreSQL.
type AttendanceRepo struct {
	q Querier
}

// NewAttendanceRepository construye el adaptador de asistencia.
func NewAttendanceRepository(q Querier) *AttendanceRepo {
	return &AttendanceRepo{q: q}
}

const selectAttendance = `
	SELECT id, company_id, user_id, shop_id, work_date, check_in, check_out,
	       status, notes, created_at, updated_at
	FROM attendance`

// Create persiste un registro de asistencia. La restricción única
// (user_id, work_date) respalda la regla de un registro por usuario y día.
func (r *AttendanceRepo) Create(att *entity.Attendance) error {
	if att.ID == "" {
		att.ID = uuid.New().String()
	}
	query := `
		INSERT INTO attendance (id, company_id, user_id, shop_id, work_date,
			check_in, check_out, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query,
		att.ID, att.CompanyID, att.UserID, nullIfEmpty(att.ShopID), att.WorkDate,
		att.CheckIn, att.CheckOut, att.Status, att.Notes,
	).Scan(&att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

// GetByID busca un registro por id. Sin fila devuelve (nil, nil).
func (r *AttendanceRepo) GetByID(id string) (*entity.Attendance, error) {
	query := selectAttendance + ` WHERE id = $1`
	att, err := scanAttendance(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	return att, nil
}

// GetByUserAndDate busca el registro de un usuario para un día concreto.
func (r *AttendanceRepo) GetByUserAndDate(userID string, date time.Time) (*entity.Attendance, error) {
	query := selectAttendance + ` WHERE user_id = $1 AND work_date = $2`
	att, err := scanAttendance(r.q.QueryRow(context.Background(), query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attendance by user and date: %w", err)
	}
	return att, nil
}

// Update persiste los campos mutables del registro (check_out incluido).
func (r *AttendanceRepo) Update(att *entity.Attendance) error {
	query := `
		UPDATE attendance
		SET shop_id = $2, check_out = $3, status = $4, notes = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err := r.q.QueryRow(context.Background(), query,
		att.ID, nullIfEmpty(att.ShopID), att.CheckOut, att.Status, att.Notes,
	).Scan(&att.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	return nil
}

// ListByCompany lista la asistencia de la empresa, día más reciente primero.
// Fechas nil y campos vacíos del filtro no filtran; Limit <= 0 no limita.
func (r *AttendanceRepo) ListByCompany(companyID string, filter repository.AttendanceFilter) ([]*entity.Attendance, error) {
	query := selectAttendance + ` WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if filter.From != nil {
		query += fmt.Sprintf(" AND work_date >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND work_date <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	if filter.ShopID != "" {
		query += fmt.Sprintf(" AND shop_id = $%d", pos)
		args = append(args, filter.ShopID)
		pos++
	}
	if filter.UserID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", pos)
		args = append(args, filter.UserID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY work_date DESC, check_in DESC LIMIT NULLIF($%d, 0) OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()
	var list []*entity.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		list = append(list, att)
	}
	return list, rows.Err()
}

// Delete elimina un registro de asistencia.
func (r *AttendanceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return nil
}

func scanAttendance(row pgx.Row) (*entity.Attendance, error) {
	var att entity.Attendance
	var shopID *string
	err := row.Scan(
		&att.ID, &att.CompanyID, &att.UserID, &shopID, &att.WorkDate,
		&att.CheckIn, &att.CheckOut, &att.Status, &att.Notes,
		&att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	att.ShopID = orEmpty(shopID)
	return &att, nil
}
