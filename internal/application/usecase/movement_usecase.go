package usecase

import (
	"time"
	"unicode/utf8"

	"github.com/mybodega/productos-api/internal/application/dto"
	"github.com/mybodega/productos-api/internal/domain"
	"github.com/mybodega/productos-api/internal/domain/entity"
	"github.com/mybodega/productos-api/internal/domain/repository"
)

// RecentMovementsLimit número de movimientos en /recientes.
const RecentMovementsLimit = 50

// MovementUseCase consultas y estadísticas sobre el historial de
// movimientos, más el registro manual. Los movimientos que acompañan
// mutaciones de productos los escribe el motor de inventario, no este
// caso de uso.
type MovementUseCase struct {
	repo repository.MovementRepository
	now  func() time.Time // inyectable en tests para fijar las ventanas
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(repo repository.MovementRepository) *MovementUseCase {
	return &MovementUseCase{repo: repo, now: time.Now}
}

// List devuelve todo el historial, más reciente primero.
func (uc *MovementUseCase) List() ([]dto.MovementResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	return dto.NewMovementListResponse(list), nil
}

// GetByID obtiene un movimiento por ID.
func (uc *MovementUseCase) GetByID(id int64) (*dto.MovementResponse, error) {
	mov, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewMovementResponse(mov), nil
}

// Create registra un movimiento manual. El tipo debe pertenecer al
// vocabulario conocido; se rechaza cualquier otro valor.
func (uc *MovementUseCase) Create(in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	movType := entity.MovementType(in.Type)
	if !movType.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if in.ProductName == "" || utf8.RuneCountInString(in.ProductName) > entity.ProductNameMaxLen {
		return nil, domain.ErrInvalidInput
	}
	if in.Details != nil && utf8.RuneCountInString(*in.Details) > entity.MovementDetailsMaxLen {
		return nil, domain.ErrInvalidInput
	}
	mov := &entity.Movement{
		Type:           movType,
		ProductName:    in.ProductName,
		ProductID:      in.ProductID,
		QuantityBefore: in.QuantityBefore,
		QuantityAfter:  in.QuantityAfter,
		Date:           uc.now(),
		Details:        in.Details,
	}
	if err := uc.repo.Create(mov); err != nil {
		return nil, err
	}
	return dto.NewMovementResponse(mov), nil
}

// ListByType filtra por tipo de movimiento.
func (uc *MovementUseCase) ListByType(movType string) ([]dto.MovementResponse, error) {
	t := entity.MovementType(movType)
	if !t.Valid() {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListByType(t)
	if err != nil {
		return nil, err
	}
	return dto.NewMovementListResponse(list), nil
}

// ListByProductID devuelve el historial de un producto. Funciona también
// para productos ya eliminados: los movimientos conservan el snapshot.
func (uc *MovementUseCase) ListByProductID(productID string) ([]dto.MovementResponse, error) {
	list, err := uc.repo.ListByProductID(productID)
	if err != nil {
		return nil, err
	}
	return dto.NewMovementListResponse(list), nil
}

// ListRecent últimos movimientos (tope RecentMovementsLimit).
func (uc *MovementUseCase) ListRecent() ([]dto.MovementResponse, error) {
	list, err := uc.repo.ListTopN(RecentMovementsLimit)
	if err != nil {
		return nil, err
	}
	return dto.NewMovementListResponse(list), nil
}

// ListToday movimientos desde las 00:00 de hoy.
func (uc *MovementUseCase) ListToday() ([]dto.MovementResponse, error) {
	now := uc.now()
	start := startOfDay(now)
	list, err := uc.repo.ListBetween(start, now)
	if err != nil {
		return nil, err
	}
	return dto.NewMovementListResponse(list), nil
}

// ListWeek movimientos de los últimos 7 días.
func (uc *MovementUseCase) ListWeek() ([]dto.MovementResponse, error) {
	now := uc.now()
	list, err := uc.repo.ListBetween(now.AddDate(0, 0, -7), now)
	if err != nil {
		return nil, err
	}
	return dto.NewMovementListResponse(list), nil
}

// ListBetween movimientos en el rango [from, to].
func (uc *MovementUseCase) ListBetween(from, to time.Time) ([]dto.MovementResponse, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListBetween(from, to)
	if err != nil {
		return nil, err
	}
	return dto.NewMovementListResponse(list), nil
}

// Stats calcula las estadísticas del historial al momento de la llamada:
// total, por tipo, de hoy, de los últimos 7 días y del último mes
// calendario. Sin caché: cada llamada lee el ledger.
func (uc *MovementUseCase) Stats() (*dto.MovementStatsResponse, error) {
	total, err := uc.repo.Count()
	if err != nil {
		return nil, err
	}
	byType, err := uc.repo.CountByType()
	if err != nil {
		return nil, err
	}
	now := uc.now()
	today, err := uc.repo.CountSince(startOfDay(now))
	if err != nil {
		return nil, err
	}
	week, err := uc.repo.CountSince(now.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	month, err := uc.repo.CountSince(minusMonths(now, 1))
	if err != nil {
		return nil, err
	}

	byTypeOut := make(map[string]int64, len(byType))
	for t, c := range byType {
		byTypeOut[string(t)] = c
	}
	return &dto.MovementStatsResponse{
		Total:     total,
		ByType:    byTypeOut,
		Today:     today,
		ThisWeek:  week,
		ThisMonth: month,
	}, nil
}

// ClearAll borra todo el historial.
func (uc *MovementUseCase) ClearAll() error {
	return uc.repo.DeleteAll()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// minusMonths resta meses de calendario ajustando el día al último día del
// mes destino (31 de marzo - 1 mes = 28 o 29 de febrero). time.AddDate
// normalizaría hacia adelante, que no es la semántica de calendario que
// usa la ventana mensual.
func minusMonths(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month()-time.Month(months), 1,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := time.Date(firstOfTarget.Year(), firstOfTarget.Month()+1, 0,
		0, 0, 0, 0, t.Location()).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
