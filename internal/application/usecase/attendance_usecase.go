package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/domain"
	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
	"github.com/jdruizm/Botica-api/pkg/lookup"
)

// workDateLayout formato de fecha de los registros de asistencia.
const workDateLayout = "2006-01-02"

// AttendanceUseCase maneja la asistencia del personal: un registro por
// usuario y día, con check-in al crear y check-out posterior.
type AttendanceUseCase struct {
	repo     repository.AttendanceRepository
	userRepo repository.UserRepository
	shopRepo repository.ShopRepository
}

// NewAttendanceUseCase construye el caso de uso.
func NewAttendanceUseCase(repo repository.AttendanceRepository, userRepo repository.UserRepository, shopRepo repository.ShopRepository) *AttendanceUseCase {
	return &AttendanceUseCase{repo: repo, userRepo: userRepo, shopRepo: shopRepo}
}

// CheckIn registra la asistencia del usuario autenticado para un día.
// Un segundo registro para el mismo día devuelve ErrDuplicate.
func (uc *AttendanceUseCase) CheckIn(companyID, userID string, in dto.CheckInRequest) (*dto.AttendanceResponse, error) {
	now := time.Now()
	workDate := now
	if in.Date != "" {
		parsed, err := time.Parse(workDateLayout, in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		workDate = parsed
	}
	workDate = truncateToDay(workDate)

	if in.ShopID != "" {
		shop, err := uc.shopRepo.GetByID(in.ShopID)
		if err != nil {
			return nil, err
		}
		if shop == nil || shop.CompanyID != companyID {
			return nil, domain.ErrInvalidInput
		}
	}

	existing, err := uc.repo.GetByUserAndDate(userID, workDate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	status := in.Status
	if status == "" {
		status = entity.AttendanceStatusPresent
	}
	if !entity.ValidAttendanceStatus(status) {
		return nil, domain.ErrInvalidInput
	}

	att := &entity.Attendance{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		UserID:    userID,
		ShopID:    in.ShopID,
		WorkDate:  workDate,
		CheckIn:   now,
		Status:    status,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(att); err != nil {
		return nil, err
	}
	return uc.toResponse(att)
}

// CheckOut cierra el turno de un registro de asistencia. Un registro ya
// cerrado devuelve ErrConflict.
func (uc *AttendanceUseCase) CheckOut(companyID, id string) (*dto.AttendanceResponse, error) {
	att, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if att == nil || att.CompanyID != companyID {
		return nil, nil
	}
	if att.CheckOut != nil {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	att.CheckOut = &now
	att.UpdatedAt = now
	if err := uc.repo.Update(att); err != nil {
		return nil, err
	}
	return uc.toResponse(att)
}

// GetByID obtiene un registro de asistencia de la empresa.
func (uc *AttendanceUseCase) GetByID(companyID, id string) (*dto.AttendanceResponse, error) {
	att, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if att == nil || att.CompanyID != companyID {
		return nil, nil
	}
	return uc.toResponse(att)
}

// List lista asistencia filtrada por rango de fechas, droguería o usuario,
// con los nombres resueltos.
func (uc *AttendanceUseCase) List(companyID string, filter repository.AttendanceFilter) (*dto.AttendanceListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, filter)
	if err != nil {
		return nil, err
	}

	userNames, shopNames, err := uc.nameIndexes(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AttendanceResponse, 0, len(list))
	for _, att := range list {
		items = append(items, *buildAttendanceResponse(att, userNames, shopNames))
	}
	return &dto.AttendanceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// Delete elimina un registro de asistencia (solo admin, vía middleware).
func (uc *AttendanceUseCase) Delete(companyID, id string) error {
	att, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if att == nil || att.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (uc *AttendanceUseCase) nameIndexes(companyID string) (users, shops map[string]string, err error) {
	userList, err := uc.userRepo.ListByCompany(companyID, 0, 0)
	if err != nil {
		return nil, nil, err
	}
	shopList, err := uc.shopRepo.ListByCompany(companyID, 0, 0)
	if err != nil {
		return nil, nil, err
	}
	users = make(map[string]string, len(userList))
	for _, u := range userList {
		users[u.ID] = u.Name
	}
	shops = make(map[string]string, len(shopList))
	for _, s := range shopList {
		shops[s.ID] = s.Name
	}
	return users, shops, nil
}

func (uc *AttendanceUseCase) toResponse(att *entity.Attendance) (*dto.AttendanceResponse, error) {
	userNames, shopNames, err := uc.nameIndexes(att.CompanyID)
	if err != nil {
		return nil, err
	}
	return buildAttendanceResponse(att, userNames, shopNames), nil
}

func buildAttendanceResponse(att *entity.Attendance, userNames, shopNames map[string]string) *dto.AttendanceResponse {
	if att == nil {
		return nil
	}
	return &dto.AttendanceResponse{
		ID:        att.ID,
		CompanyID: att.CompanyID,
		UserID:    att.UserID,
		UserName:  lookup.Name(userNames, att.UserID),
		ShopID:    att.ShopID,
		ShopName:  lookup.Name(shopNames, att.ShopID),
		Date:      att.WorkDate.Format(workDateLayout),
		CheckIn:   att.CheckIn,
		CheckOut:  att.CheckOut,
		Status:    att.Status,
		Notes:     att.Notes,
		CreatedAt: att.CreatedAt,
		UpdatedAt: att.UpdatedAt,
	}
}
