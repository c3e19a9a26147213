package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/domain"
	"github.com/jdruizm/Botica-api/internal/domain/entity"
	domaininv "github.com/jdruizm/Botica-api/internal/domain/inventory"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
)

// MovementUseCase registra movimientos de inventario de forma transaccional
// (IN, OUT, ADJUSTMENT, TRANSFER) con bloqueo de fila (SELECT FOR UPDATE) y
// Commit/Rollback. Es el único camino por el que cambia la tabla stock.
type MovementUseCase struct {
	txRunner      TxRunner
	medicineRepo  repository.MedicineRepository
	warehouseRepo repository.WarehouseRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	medicineRepo repository.MedicineRepository,
	warehouseRepo repository.WarehouseRepository,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:      txRunner,
		medicineRepo:  medicineRepo,
		warehouseRepo: warehouseRepo,
	}
}

// MovementInput entrada para registrar un movimiento.
// IN/OUT/ADJUSTMENT: MedicineID, WarehouseID, Type, Quantity; UnitCost
// obligatorio en IN. TRANSFER: MedicineID, FromWarehouseID, ToWarehouseID,
// Quantity positiva.
type MovementInput struct {
	CompanyID       string
	UserID          string
	MedicineID      string
	WarehouseID     string
	FromWarehouseID string
	ToWarehouseID   string
	Type            string
	Quantity        decimal.Decimal
	UnitCost        *decimal.Decimal
	Reference       string
	Notes           string
}

// RegisterFromRequest adapta el request HTTP a RegisterMovement.
func (uc *MovementUseCase) RegisterFromRequest(ctx context.Context, companyID, userID string, in dto.RegisterMovementRequest) error {
	return uc.RegisterMovement(ctx, MovementInput{
		CompanyID:       companyID,
		UserID:          userID,
		MedicineID:      in.MedicineID,
		WarehouseID:     in.WarehouseID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Type:            in.Type,
		Quantity:        in.Quantity,
		UnitCost:        in.UnitCost,
		Reference:       in.Reference,
		Notes:           in.Notes,
	})
}

// RegisterMovement valida la entrada, inicia una transacción, bloquea la fila
// de stock y aplica la lógica según el tipo.
func (uc *MovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) error {
	switch input.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeADJUSTMENT:
		if input.MedicineID == "" || input.WarehouseID == "" {
			return domain.ErrInvalidInput
		}
		if input.Quantity.IsZero() {
			return domain.ErrInvalidInput
		}
		if input.Type == entity.MovementTypeIN && (input.UnitCost == nil || input.UnitCost.LessThan(decimal.Zero)) {
			return domain.ErrInvalidInput
		}
		if input.Type != entity.MovementTypeADJUSTMENT && input.Quantity.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeTRANSFER:
		if input.MedicineID == "" || input.FromWarehouseID == "" || input.ToWarehouseID == "" {
			return domain.ErrInvalidInput
		}
		if input.FromWarehouseID == input.ToWarehouseID || !input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}

	medicine, err := uc.medicineRepo.GetByID(input.MedicineID)
	if err != nil || medicine == nil {
		return domain.ErrNotFound
	}
	if medicine.CompanyID != input.CompanyID {
		return domain.ErrForbidden
	}

	if input.Type == entity.MovementTypeTRANSFER {
		from, _ := uc.warehouseRepo.GetByID(input.FromWarehouseID)
		to, _ := uc.warehouseRepo.GetByID(input.ToWarehouseID)
		if from == nil || to == nil || from.CompanyID != input.CompanyID || to.CompanyID != input.CompanyID {
			return domain.ErrNotFound
		}
	} else {
		wh, _ := uc.warehouseRepo.GetByID(input.WarehouseID)
		if wh == nil || wh.CompanyID != input.CompanyID {
			return domain.ErrNotFound
		}
	}

	now := time.Now()
	txID := uuid.New().String()

	return uc.txRunner.Run(ctx, func(r TxRepos) error {
		switch input.Type {
		case entity.MovementTypeIN:
			return uc.doIN(r, medicine, input, now, txID)
		case entity.MovementTypeOUT:
			return uc.doOUT(r, medicine, input, now, txID)
		case entity.MovementTypeADJUSTMENT:
			return uc.doADJUSTMENT(r, medicine, input, now, txID)
		case entity.MovementTypeTRANSFER:
			return uc.doTRANSFER(r, medicine, input, now, txID)
		}
		return domain.ErrInvalidInput
	})
}

// RegisterINInTx ejecuta una entrada usando los repositorios del caller
// (misma transacción). Lo usa la aceptación de devoluciones para reingresar
// stock al costo promedio vigente del medicamento.
func (uc *MovementUseCase) RegisterINInTx(
	r TxRepos,
	medicine *entity.Medicine,
	warehouseID, userID string,
	quantity, unitCost decimal.Decimal,
	now time.Time,
	transactionID, reference string,
) error {
	stock, err := r.Stock.GetForUpdate(medicine.ID, warehouseID)
	if err != nil {
		return err
	}
	newCost := domaininv.WeightedAverageCost(stock.Quantity, medicine.Cost, quantity, unitCost)
	if err := r.Medicines.UpdateCost(medicine.ID, newCost); err != nil {
		return err
	}
	stock.Quantity = stock.Quantity.Add(quantity)
	stock.UpdatedAt = now
	if err := r.Stock.Upsert(stock); err != nil {
		return err
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		CompanyID:     medicine.CompanyID,
		TransactionID: transactionID,
		MedicineID:    medicine.ID,
		WarehouseID:   warehouseID,
		Type:          entity.MovementTypeIN,
		Quantity:      quantity,
		UnitCost:      unitCost,
		TotalCost:     quantity.Mul(unitCost),
		Reference:     reference,
		CreatedBy:     userID,
		CreatedAt:     now,
	}
	return r.Movements.Create(mov)
}

// RegisterOUTInTx ejecuta una salida usando los repositorios del caller
// (misma transacción). Lo usa el despacho de solicitudes: una llamada por
// línea, todas dentro de la transacción del despacho.
func (uc *MovementUseCase) RegisterOUTInTx(
	r TxRepos,
	medicine *entity.Medicine,
	warehouseID, userID string,
	quantity decimal.Decimal,
	now time.Time,
	transactionID, reference string,
) error {
	stock, err := r.Stock.GetForUpdate(medicine.ID, warehouseID)
	if err != nil {
		return err
	}
	if stock.Quantity.LessThan(quantity) {
		return domain.ErrInsufficientStock
	}
	stock.Quantity = stock.Quantity.Sub(quantity)
	stock.UpdatedAt = now
	if err := r.Stock.Upsert(stock); err != nil {
		return err
	}
	unitCost := medicine.Cost
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		CompanyID:     medicine.CompanyID,
		TransactionID: transactionID,
		MedicineID:    medicine.ID,
		WarehouseID:   warehouseID,
		Type:          entity.MovementTypeOUT,
		Quantity:      quantity.Neg(),
		UnitCost:      unitCost,
		TotalCost:     quantity.Neg().Mul(unitCost),
		Reference:     reference,
		CreatedBy:     userID,
		CreatedAt:     now,
	}
	return r.Movements.Create(mov)
}

// doIN: bloquea fila, recalcula costo promedio, suma stock, guarda movimiento.
func (uc *MovementUseCase) doIN(r TxRepos, medicine *entity.Medicine, input MovementInput, now time.Time, txID string) error {
	stock, err := r.Stock.GetForUpdate(input.MedicineID, input.WarehouseID)
	if err != nil {
		return err
	}
	unitCost := *input.UnitCost
	newCost := domaininv.WeightedAverageCost(stock.Quantity, medicine.Cost, input.Quantity, unitCost)
	if err := r.Medicines.UpdateCost(input.MedicineID, newCost); err != nil {
		return err
	}
	stock.Quantity = stock.Quantity.Add(input.Quantity)
	stock.UpdatedAt = now
	if err := r.Stock.Upsert(stock); err != nil {
		return err
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		CompanyID:     input.CompanyID,
		TransactionID: txID,
		MedicineID:    input.MedicineID,
		WarehouseID:   input.WarehouseID,
		Type:          entity.MovementTypeIN,
		Quantity:      input.Quantity,
		UnitCost:      unitCost,
		TotalCost:     input.Quantity.Mul(unitCost),
		Reference:     input.Reference,
		Notes:         input.Notes,
		CreatedBy:     input.UserID,
		CreatedAt:     now,
	}
	return r.Movements.Create(mov)
}

// doOUT: bloquea fila, verifica stock suficiente, resta y guarda el
// movimiento al costo promedio vigente.
func (uc *MovementUseCase) doOUT(r TxRepos, medicine *entity.Medicine, input MovementInput, now time.Time, txID string) error {
	stock, err := r.Stock.GetForUpdate(input.MedicineID, input.WarehouseID)
	if err != nil {
		return err
	}
	if stock.Quantity.LessThan(input.Quantity) {
		return domain.ErrInsufficientStock
	}
	stock.Quantity = stock.Quantity.Sub(input.Quantity)
	stock.UpdatedAt = now
	if err := r.Stock.Upsert(stock); err != nil {
		return err
	}
	unitCost := medicine.Cost
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		CompanyID:     input.CompanyID,
		TransactionID: txID,
		MedicineID:    input.MedicineID,
		WarehouseID:   input.WarehouseID,
		Type:          entity.MovementTypeOUT,
		Quantity:      input.Quantity.Neg(),
		UnitCost:      unitCost,
		TotalCost:     input.Quantity.Neg().Mul(unitCost),
		Reference:     input.Reference,
		Notes:         input.Notes,
		CreatedBy:     input.UserID,
		CreatedAt:     now,
	}
	return r.Movements.Create(mov)
}

// doADJUSTMENT: positivo se trata como IN, negativo como OUT.
func (uc *MovementUseCase) doADJUSTMENT(r TxRepos, medicine *entity.Medicine, input MovementInput, now time.Time, txID string) error {
	if input.Quantity.GreaterThan(decimal.Zero) {
		unitCost := decimal.Zero
		if input.UnitCost != nil {
			unitCost = *input.UnitCost
		}
		input.UnitCost = &unitCost
		return uc.doIN(r, medicine, input, now, txID)
	}
	adjOut := input
	adjOut.Quantity = input.Quantity.Neg()
	return uc.doOUT(r, medicine, adjOut, now, txID)
}

// doTRANSFER: resta en origen, suma en destino y guarda dos movimientos con
// el mismo TransactionID, todo en la misma transacción.
func (uc *MovementUseCase) doTRANSFER(r TxRepos, medicine *entity.Medicine, input MovementInput, now time.Time, txID string) error {
	origin, err := r.Stock.GetForUpdate(input.MedicineID, input.FromWarehouseID)
	if err != nil {
		return err
	}
	if origin.Quantity.LessThan(input.Quantity) {
		return domain.ErrInsufficientStock
	}
	dest, err := r.Stock.GetForUpdate(input.MedicineID, input.ToWarehouseID)
	if err != nil {
		return err
	}
	origin.Quantity = origin.Quantity.Sub(input.Quantity)
	dest.Quantity = dest.Quantity.Add(input.Quantity)
	origin.UpdatedAt = now
	dest.UpdatedAt = now
	if err := r.Stock.Upsert(origin); err != nil {
		return err
	}
	if err := r.Stock.Upsert(dest); err != nil {
		return err
	}
	unitCost := medicine.Cost
	outMov := &entity.StockMovement{
		ID:            uuid.New().String(),
		CompanyID:     input.CompanyID,
		TransactionID: txID,
		MedicineID:    input.MedicineID,
		WarehouseID:   input.FromWarehouseID,
		Type:          entity.MovementTypeTRANSFER,
		Quantity:      input.Quantity.Neg(),
		UnitCost:      unitCost,
		TotalCost:     input.Quantity.Neg().Mul(unitCost),
		Reference:     input.Reference,
		Notes:         input.Notes,
		CreatedBy:     input.UserID,
		CreatedAt:     now,
	}
	if err := r.Movements.Create(outMov); err != nil {
		return err
	}
	inMov := &entity.StockMovement{
		ID:            uuid.New().String(),
		CompanyID:     input.CompanyID,
		TransactionID: txID,
		MedicineID:    input.MedicineID,
		WarehouseID:   input.ToWarehouseID,
		Type:          entity.MovementTypeTRANSFER,
		Quantity:      input.Quantity,
		UnitCost:      unitCost,
		TotalCost:     input.Quantity.Mul(unitCost),
		Reference:     input.Reference,
		Notes:         input.Notes,
		CreatedBy:     input.UserID,
		CreatedAt:     now,
	}
	return r.Movements.Create(inMov)
}
