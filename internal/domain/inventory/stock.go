package inventory

import (
	"fmt"
	"math"

	"github.com/jhoicas/sweetshop-api/internal/domain"
)

// Reglas de stock (servicio de dominio). No tocan la DB: el llamador aplica
// el resultado dentro de la misma transacción en que leyó la cantidad.

const (
	// UnitsPerPurchase unidades que descuenta cada compra.
	UnitsPerPurchase = 1
	// MaxQuantity tope de existencias de un dulce (columna INTEGER).
	MaxQuantity = math.MaxInt32
)

// Purchase devuelve la cantidad tras vender una unidad.
// ErrOutOfStock si no hay existencias; la cantidad nunca queda negativa.
func Purchase(quantity int) (int, error) {
	if quantity < UnitsPerPurchase {
		return quantity, domain.ErrOutOfStock
	}
	return quantity - UnitsPerPurchase, nil
}

// Restock devuelve la cantidad tras reponer amount unidades (amount > 0).
// El total no puede superar MaxQuantity.
func Restock(quantity, amount int) (int, error) {
	if amount <= 0 {
		return quantity, fmt.Errorf("%w: amount debe ser mayor que 0", domain.ErrInvalidInput)
	}
	if amount > MaxQuantity-quantity {
		return quantity, fmt.Errorf("%w: la reposición supera el máximo de %d unidades", domain.ErrInvalidInput, MaxQuantity)
	}
	return quantity + amount, nil
}
