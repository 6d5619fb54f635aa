package serial

import (
	"time"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// AllocatorUseCase administra el ciclo de vida de las unidades serializadas.
// Opera siempre con repositorios atados a la transacción del caller: la asignación
// de seriales y la reserva de inventario ocurren juntas para que los contadores
// nunca diverjan.
type AllocatorUseCase struct{}

// NewAllocatorUseCase construye el caso de uso.
func NewAllocatorUseCase() *AllocatorUseCase {
	return &AllocatorUseCase{}
}

// AllocateInTx devuelve exactamente qty seriales AVAILABLE de la variante, bloqueados.
// Si requestedSerial viene y está AVAILABLE, se incluye primero; el resto se toma en
// orden ascendente de creación (determinista). Falla con ErrNotFound si no hay qty
// seriales disponibles.
func (uc *AllocatorUseCase) AllocateInTx(
	serialRepo repository.SerialRepository,
	variantID, requestedSerial string,
	qty int,
) ([]*entity.Serial, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var picked []*entity.Serial
	if requestedSerial != "" {
		s, err := serialRepo.GetBySerialNumberForUpdate(variantID, requestedSerial)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, domain.ErrNotFound
		}
		if s.Status != entity.SerialStatusAvailable {
			return nil, domain.ErrInvalidTransition
		}
		picked = append(picked, s)
	}

	remaining := qty - len(picked)
	if remaining > 0 {
		// Se piden de más por si la lista incluye el serial ya elegido
		candidates, err := serialRepo.ListAvailableForUpdate(variantID, remaining+len(picked))
		if err != nil {
			return nil, err
		}
		for _, c := range candidates {
			if remaining == 0 {
				break
			}
			if requestedSerial != "" && c.SerialNumber == requestedSerial {
				continue
			}
			picked = append(picked, c)
			remaining--
		}
	}
	if len(picked) < qty {
		return nil, domain.ErrNotFound
	}
	return picked, nil
}

// MarkSoldInTx pasa un serial AVAILABLE a SOLD, lo liga a la orden y estampa SoldDate.
// Cualquier otro estado de origen falla con ErrInvalidTransition.
func (uc *AllocatorUseCase) MarkSoldInTx(serialRepo repository.SerialRepository, s *entity.Serial, orderID string) error {
	if s.Status != entity.SerialStatusAvailable {
		return domain.ErrInvalidTransition
	}
	now := time.Now()
	s.Status = entity.SerialStatusSold
	s.OrderID = orderID
	s.SoldDate = &now
	s.UpdatedAt = now
	return serialRepo.Update(s)
}

// ReleaseInTx devuelve un serial no terminal a AVAILABLE y limpia su vínculo con la orden.
func (uc *AllocatorUseCase) ReleaseInTx(serialRepo repository.SerialRepository, serialID string) error {
	s, err := serialRepo.GetForUpdate(serialID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	if !s.CanRelease() {
		return domain.ErrInvalidTransition
	}
	s.Status = entity.SerialStatusAvailable
	s.OrderID = ""
	s.SoldDate = nil
	s.UpdatedAt = time.Now()
	return serialRepo.Update(s)
}
