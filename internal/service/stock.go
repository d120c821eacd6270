package service

import (
	"github.com/Alexistodj124/CoprodaBackEnd/internal/domain"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"

	"github.com/shopspring/decimal"
)

// Stock ledger primitives. They mutate an in-memory *model.Stock; the
// caller persists the row inside its transaction. Every floor is a clamp
// to zero, never an error: releasing more than is reserved leaves zero.

// ReservarStock claims cantidad from the available balance (actual −
// reservado) and fails with InsufficientStockError naming the resource
// when it does not fit.
func ReservarStock(s *model.Stock, recurso string, cantidad decimal.Decimal) error {
	disponible := s.Disponible()
	if disponible.LessThan(cantidad) {
		return &domain.InsufficientStockError{
			Recurso:    recurso,
			Disponible: disponible,
			Requerido:  cantidad,
		}
	}
	s.StockReservado = s.StockReservado.Add(cantidad)
	return nil
}

// LiberarStock returns cantidad of reservation, clamped so the reserved
// balance never goes negative.
func LiberarStock(s *model.Stock, cantidad decimal.Decimal) {
	s.StockReservado = s.StockReservado.Sub(cantidad)
	if s.StockReservado.IsNegative() {
		s.StockReservado = decimal.Zero
	}
}

// RetirarStock posts an actual draw against on-hand. On-hand never goes
// negative: a draw larger than the recorded stock aborts the enclosing
// operation.
func RetirarStock(s *model.Stock, recurso string, cantidad decimal.Decimal) error {
	if s.StockActual.LessThan(cantidad) {
		return &domain.InsufficientStockError{
			Recurso:    recurso,
			Disponible: s.StockActual,
			Requerido:  cantidad,
		}
	}
	s.StockActual = s.StockActual.Sub(cantidad)
	return nil
}

// DepositarStock adds finished or returned quantity to on-hand.
func DepositarStock(s *model.Stock, cantidad decimal.Decimal) {
	s.StockActual = s.StockActual.Add(cantidad)
}

// CalcularTeorico is the theoretical draw of one BOM line at a batch size:
// (necesaria + merma) * cantidad.
func CalcularTeorico(necesaria, merma, cantidad decimal.Decimal) decimal.Decimal {
	return necesaria.Add(merma).Mul(cantidad)
}

// ReservadoRestante derives the outstanding reservation of one input on an
// order from its consumption rows: Σteorico − Σreal, floored at zero.
func ReservadoRestante(teoricos, reales decimal.Decimal) decimal.Decimal {
	restante := teoricos.Sub(reales)
	if restante.IsNegative() {
		return decimal.Zero
	}
	return restante
}
